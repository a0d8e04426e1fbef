// Package surface provides the parametric surface functions evaluated by the graph.
//
// Every function maps a point (u, v) of the parameter domain and a time t to a
// position in 3D space. Functions are pure and total over all finite inputs.
package surface

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Point3 is a position in 3D space.
type Point3 struct {
	X, Y, Z float64
}

// Func evaluates a surface at (u, v) for time t.
type Func func(u, v, t float64) Point3

// Name identifies a surface function. Ordinals are contiguous from zero and the
// order is significant for cycling and kernel indexing.
type Name uint8

const (
	Wave Name = iota
	MultiWave
	Ripple
	ScalingSphere
	TwistingSphere
	Torus

	numNames
)

var names = [numNames]string{
	Wave:           "wave",
	MultiWave:      "multi_wave",
	Ripple:         "ripple",
	ScalingSphere:  "scaling_sphere",
	TwistingSphere: "twisting_sphere",
	Torus:          "torus",
}

var funcs = [numNames]Func{
	Wave:           wave,
	MultiWave:      multiWave,
	Ripple:         ripple,
	ScalingSphere:  scalingSphere,
	TwistingSphere: twistingSphere,
	Torus:          torus,
}

// String returns the snake_case name used in config files and logs.
func (n Name) String() string {
	if n < numNames {
		return names[n]
	}
	return fmt.Sprintf("name(%d)", uint8(n))
}

// Title returns a human-readable label for UI display.
func (n Name) Title() string {
	switch n {
	case Wave:
		return "Wave"
	case MultiWave:
		return "Multi Wave"
	case Ripple:
		return "Ripple"
	case ScalingSphere:
		return "Scaling Sphere"
	case TwistingSphere:
		return "Twisting Sphere"
	case Torus:
		return "Torus"
	}
	return n.String()
}

// Valid reports whether n is one of the known functions.
func (n Name) Valid() bool {
	return n < numNames
}

// ParseName converts a config/CLI name (case-insensitive, "-" or "_" separated)
// into a Name.
func ParseName(s string) (Name, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, n := range names {
		if n == key || strings.ReplaceAll(n, "_", "") == key {
			return Name(i), nil
		}
	}
	return 0, fmt.Errorf("unknown surface function %q", s)
}

// MarshalText implements encoding.TextMarshaler so names round-trip through YAML.
func (n Name) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("invalid surface function %d", uint8(n))
	}
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Names returns all function names in ordinal order.
func Names() []Name {
	out := make([]Name, numNames)
	for i := range out {
		out[i] = Name(i)
	}
	return out
}

// Count returns the number of registered functions.
func Count() int {
	return int(numNames)
}

// Lookup returns the function registered under name. Out-of-range names wrap
// into the valid range so lookup never fails.
func Lookup(name Name) Func {
	return funcs[int(name)%int(numNames)]
}

// Next returns the function after name, wrapping from the last to the first.
func Next(name Name) Name {
	if int(name) >= int(numNames)-1 {
		return 0
	}
	return name + 1
}

// Random draws uniformly over all functions.
func Random(rng *rand.Rand) Name {
	return Name(rng.Intn(int(numNames)))
}

// RandomExcluding draws uniformly from ordinals 1..count-1 and falls back to
// ordinal 0 when the draw equals current. The result is biased toward ordinal 0
// and is never equal to current.
func RandomExcluding(rng *rand.Rand, current Name) Name {
	next := Name(1 + rng.Intn(int(numNames)-1))
	if next == current {
		return 0
	}
	return next
}

// KernelIndex maps a function pair to the compute kernel that evaluates it.
// Kernels 0..count-1 evaluate a single function; the count*count kernels after
// them morph from previous to current.
func KernelIndex(current, previous Name, transitioning bool) int {
	if !transitioning {
		return int(current)
	}
	n := Count()
	return n + int(current) + int(previous)*n
}

func wave(u, v, t float64) Point3 {
	return Point3{
		X: u,
		Y: math.Sin(math.Pi * (u + v + t)),
		Z: v,
	}
}

func multiWave(u, v, t float64) Point3 {
	y := math.Sin(math.Pi * (u + 0.5*t))
	y += 0.5 * math.Sin(2*math.Pi*(v+t))
	y += math.Sin(math.Pi * (u + v + 0.25*t))
	return Point3{X: u, Y: y * 0.4, Z: v}
}

func ripple(u, v, t float64) Point3 {
	d := math.Sqrt(u*u + v*v)
	y := math.Sin(math.Pi*(4*d-t)) / (1 + 10*d)
	return Point3{X: u, Y: y, Z: v}
}

func scalingSphere(u, v, t float64) Point3 {
	r := 0.5 + 0.5*math.Sin(math.Pi*t)
	return sphere(u, v, r)
}

func twistingSphere(u, v, t float64) Point3 {
	r := 0.9 + 0.1*math.Sin(math.Pi*(6*u+4*v+t))
	return sphere(u, v, r)
}

// sphere places (u, v) on a sphere of radius r, u as longitude and v as latitude.
func sphere(u, v, r float64) Point3 {
	s := r * math.Cos(0.5*math.Pi*v)
	return Point3{
		X: s * math.Sin(math.Pi*u),
		Y: r * math.Sin(0.5*math.Pi*v),
		Z: s * math.Cos(math.Pi*u),
	}
}

func torus(u, v, t float64) Point3 {
	r1 := 0.7 + 0.1*math.Sin(math.Pi*(6*u+0.5*t))
	r2 := 0.15 + 0.05*math.Sin(math.Pi*(8*u+4*v+2*t))
	s := r1 + r2*math.Cos(math.Pi*v)
	return Point3{
		X: s * math.Sin(math.Pi*u),
		Y: r2 * math.Sin(math.Pi*v),
		Z: s * math.Cos(math.Pi*u),
	}
}
