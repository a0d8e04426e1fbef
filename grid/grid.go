// Package grid samples the parameter domain of a surface and evaluates every
// sample each frame.
package grid

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/morphgraph/surface"
)

// ErrInvalidParameter is returned for a resolution below one.
var ErrInvalidParameter = errors.New("invalid parameter")

// Source supplies the function pair and blend factor for a frame.
// *schedule.Scheduler implements it.
type Source interface {
	Current() surface.Name
	Previous() surface.Name
	Blending() bool
	EasedProgress() float64
}

// Grid is a cell-centered sampling of [-1,1)×[-1,1) at a fixed resolution.
// Sample i has u-index i/resolution and v-index i%resolution.
type Grid struct {
	resolution int
	step       float64
	coords     []float64 // shared by both axes

	scratch []float32 // second operand for packed morphs
}

// Build precomputes the sample coordinates for resolution.
func Build(resolution int) (*Grid, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("%w: resolution %d", ErrInvalidParameter, resolution)
	}
	step := 2.0 / float64(resolution)
	coords := make([]float64, resolution)
	for i := range coords {
		coords[i] = (float64(i)+0.5)*step - 1
	}
	return &Grid{
		resolution: resolution,
		step:       step,
		coords:     coords,
	}, nil
}

// Resolution returns the number of samples along each axis.
func (g *Grid) Resolution() int { return g.resolution }

// Step returns the spacing between neighbouring samples, also the edge length
// of one cell.
func (g *Grid) Step() float64 { return g.step }

// Len returns the total number of samples.
func (g *Grid) Len() int { return g.resolution * g.resolution }

// Coord returns the coordinate of the i-th sample along either axis.
func (g *Grid) Coord(i int) float64 { return g.coords[i] }

// At returns the (u, v) pair of sample i. ok is false when i is outside
// [0, Len()) or the grid has been released.
func (g *Grid) At(i int) (u, v float64, ok bool) {
	if i < 0 || i >= g.Len() || g.coords == nil {
		return 0, 0, false
	}
	return g.Coord(i / g.resolution), g.Coord(i % g.resolution), true
}

// Evaluate writes one position per sample into dst, growing it if needed, and
// returns the filled slice. When src is stable the current function is
// evaluated directly; otherwise every sample goes through surface.Morph.
func (g *Grid) Evaluate(src Source, t float64, dst []surface.Point3) []surface.Point3 {
	n := g.Len()
	if cap(dst) < n {
		dst = make([]surface.Point3, n)
	}
	dst = dst[:n]

	if src.Blending() {
		to := surface.Lookup(src.Current())
		from := surface.Lookup(src.Previous())
		p := src.EasedProgress()
		for i, u := 0, 0; u < g.resolution; u++ {
			for v := 0; v < g.resolution; i, v = i+1, v+1 {
				dst[i] = surface.Morph(g.coords[u], g.coords[v], t, to, from, p)
			}
		}
		return dst
	}

	f := surface.Lookup(src.Current())
	for i, u := 0, 0; u < g.resolution; u++ {
		for v := 0; v < g.resolution; i, v = i+1, v+1 {
			dst[i] = f(g.coords[u], g.coords[v], t)
		}
	}
	return dst
}

// Uniforms are the per-frame parameters a compute stage needs alongside the
// packed position buffer.
type Uniforms struct {
	Resolution int
	Step       float32
	Time       float32
	Progress   float32
	Kernel     int
}

// EvaluatePacked fills dst with interleaved float32 xyz triples in sample order,
// the layout expected by a GPU position buffer. Morphs are evaluated as two
// full passes blended with BLAS, the way a morph kernel would run them.
func (g *Grid) EvaluatePacked(src Source, t float64, dst []float32) ([]float32, Uniforms) {
	n := 3 * g.Len()
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]

	uni := Uniforms{
		Resolution: g.resolution,
		Step:       float32(g.step),
		Time:       float32(t),
		Kernel:     surface.KernelIndex(src.Current(), src.Previous(), src.Blending()),
	}

	if !src.Blending() {
		g.pack(surface.Lookup(src.Current()), t, dst)
		return dst, uni
	}

	if cap(g.scratch) < n {
		g.scratch = make([]float32, n)
	}
	scratch := g.scratch[:n]

	p := float32(src.EasedProgress())
	uni.Progress = p

	g.pack(surface.Lookup(src.Previous()), t, dst)
	g.pack(surface.Lookup(src.Current()), t, scratch)

	from := blas32.Vector{N: n, Inc: 1, Data: dst}
	delta := blas32.Vector{N: n, Inc: 1, Data: scratch}
	blas32.Axpy(-1, from, delta) // delta = to - from
	blas32.Axpy(p, delta, from)  // from += p * delta
	return dst, uni
}

func (g *Grid) pack(f surface.Func, t float64, dst []float32) {
	for i, u := 0, 0; u < g.resolution; u++ {
		for v := 0; v < g.resolution; i, v = i+3, v+1 {
			p := f(g.coords[u], g.coords[v], t)
			dst[i] = float32(p.X)
			dst[i+1] = float32(p.Y)
			dst[i+2] = float32(p.Z)
		}
	}
}

// Release drops the grid's buffers. The grid must not be used afterwards.
func (g *Grid) Release() {
	g.coords = nil
	g.scratch = nil
}
