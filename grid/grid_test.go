package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/morphgraph/surface"
)

// fixedSource is a Source with explicit state.
type fixedSource struct {
	current, previous surface.Name
	blending          bool
	progress          float64
}

func (s fixedSource) Current() surface.Name { return s.current }
func (s fixedSource) Previous() surface.Name { return s.previous }
func (s fixedSource) Blending() bool { return s.blending }
func (s fixedSource) EasedProgress() float64 { return s.progress }

func TestBuildCoordinates(t *testing.T) {
	g, err := Build(10)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Len() != 100 {
		t.Errorf("Len = %d, want 100", g.Len())
	}
	if math.Abs(g.Step()-0.2) > 1e-12 {
		t.Errorf("Step = %v, want 0.2", g.Step())
	}
	if math.Abs(g.Coord(0)+0.9) > 1e-12 {
		t.Errorf("Coord(0) = %v, want -0.9", g.Coord(0))
	}
	if math.Abs(g.Coord(9)-0.9) > 1e-12 {
		t.Errorf("Coord(9) = %v, want 0.9", g.Coord(9))
	}
	for i := 1; i < 10; i++ {
		if d := g.Coord(i) - g.Coord(i-1); math.Abs(d-0.2) > 1e-12 {
			t.Errorf("spacing %d = %v, want 0.2", i, d)
		}
	}
}

func TestBuildRejectsBadResolution(t *testing.T) {
	for _, res := range []int{0, -1, -100} {
		if _, err := Build(res); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Build(%d) err = %v, want ErrInvalidParameter", res, err)
		}
	}
}

func TestSingleCell(t *testing.T) {
	g, err := Build(1)
	if err != nil {
		t.Fatalf("Build(1): %v", err)
	}
	if u, v, ok := g.At(0); !ok || u != 0 || v != 0 {
		t.Errorf("At(0) = (%v, %v, %v), want (0, 0, true)", u, v, ok)
	}
}

func TestAtIsRowMajor(t *testing.T) {
	g, _ := Build(4)
	for ui := 0; ui < 4; ui++ {
		for vi := 0; vi < 4; vi++ {
			u, v, ok := g.At(ui*4 + vi)
			if !ok || u != g.Coord(ui) || v != g.Coord(vi) {
				t.Errorf("At(%d) = (%v, %v), want (%v, %v)", ui*4+vi, u, v, g.Coord(ui), g.Coord(vi))
			}
		}
	}
}

func TestAtOutOfRange(t *testing.T) {
	g, _ := Build(4)
	for _, i := range []int{-1, 16, 100} {
		if _, _, ok := g.At(i); ok {
			t.Errorf("At(%d) reported ok on a 4x4 grid", i)
		}
	}

	g.Release()
	if _, _, ok := g.At(0); ok {
		t.Error("At(0) reported ok after Release")
	}
}

func TestEvaluateWaveEndToEnd(t *testing.T) {
	g, _ := Build(4)
	out := g.Evaluate(fixedSource{current: surface.Wave, previous: surface.Wave}, 0, nil)

	if len(out) != 16 {
		t.Fatalf("len = %d, want 16", len(out))
	}
	p := out[0]
	if math.Abs(p.X+0.75) > 1e-12 || math.Abs(p.Z+0.75) > 1e-12 {
		t.Errorf("sample 0 at (%v, %v), want (-0.75, -0.75)", p.X, p.Z)
	}
	if math.Abs(p.Y-1) > 1e-9 {
		t.Errorf("sample 0 height = %v, want 1", p.Y)
	}

	// index = u_index*resolution + v_index
	q := out[1*4+2]
	if q.X != g.Coord(1) || q.Z != g.Coord(2) {
		t.Errorf("sample 6 at (%v, %v), want (%v, %v)", q.X, q.Z, g.Coord(1), g.Coord(2))
	}
}

func TestEvaluateReusesBuffer(t *testing.T) {
	g, _ := Build(8)
	buf := make([]surface.Point3, 0, 64)
	out := g.Evaluate(fixedSource{current: surface.Ripple, previous: surface.Ripple}, 1, buf)
	if &out[0] != &buf[:1][0] {
		t.Error("Evaluate allocated despite sufficient capacity")
	}
}

func TestStablePathMatchesDegenerateMorph(t *testing.T) {
	g, _ := Build(16)
	for _, name := range surface.Names() {
		direct := g.Evaluate(fixedSource{current: name, previous: name}, 1.3, nil)
		for _, p := range []float64{0, 0.4, 1} {
			blended := g.Evaluate(fixedSource{current: name, previous: name, blending: true, progress: p}, 1.3, nil)
			for i := range direct {
				if direct[i] != blended[i] {
					t.Fatalf("%s p=%v sample %d: direct %+v, blended %+v", name, p, i, direct[i], blended[i])
				}
			}
		}
	}
}

func TestMorphPathAtZeroProgressMatchesPrevious(t *testing.T) {
	g, _ := Build(12)
	from := g.Evaluate(fixedSource{current: surface.Torus, previous: surface.Torus}, 0.7, nil)
	blended := g.Evaluate(fixedSource{current: surface.Wave, previous: surface.Torus, blending: true}, 0.7, nil)
	for i := range from {
		if from[i] != blended[i] {
			t.Fatalf("sample %d: %+v vs %+v", i, from[i], blended[i])
		}
	}
}

func TestEvaluatePackedMatchesEvaluate(t *testing.T) {
	g, _ := Build(20)
	sources := []fixedSource{
		{current: surface.MultiWave, previous: surface.MultiWave},
		{current: surface.ScalingSphere, previous: surface.Ripple, blending: true, progress: 0.35},
		{current: surface.Torus, previous: surface.TwistingSphere, blending: true, progress: 1},
	}
	for _, src := range sources {
		want := g.Evaluate(src, 2.25, nil)
		got, uni := g.EvaluatePacked(src, 2.25, nil)

		if len(got) != 3*len(want) {
			t.Fatalf("packed len = %d, want %d", len(got), 3*len(want))
		}
		for i, p := range want {
			for c, w := range []float64{p.X, p.Y, p.Z} {
				if math.Abs(float64(got[3*i+c])-w) > 1e-5 {
					t.Fatalf("%+v sample %d component %d: packed %v, want %v", src, i, c, got[3*i+c], w)
				}
			}
		}
		if uni.Resolution != 20 || uni.Kernel != surface.KernelIndex(src.current, src.previous, src.blending) {
			t.Errorf("uniforms = %+v", uni)
		}
	}
}

func BenchmarkEvaluateStable(b *testing.B) {
	g, _ := Build(200)
	src := fixedSource{current: surface.Torus, previous: surface.Torus}
	buf := g.Evaluate(src, 0, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = g.Evaluate(src, float64(i)*0.016, buf)
	}
}

func BenchmarkEvaluateMorph(b *testing.B) {
	g, _ := Build(200)
	src := fixedSource{current: surface.Torus, previous: surface.Ripple, blending: true, progress: 0.5}
	buf := g.Evaluate(src, 0, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = g.Evaluate(src, float64(i)*0.016, buf)
	}
}

func BenchmarkEvaluatePackedMorph(b *testing.B) {
	g, _ := Build(200)
	src := fixedSource{current: surface.Torus, previous: surface.Ripple, blending: true, progress: 0.5}
	buf, _ := g.EvaluatePacked(src, 0, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf, _ = g.EvaluatePacked(src, float64(i)*0.016, buf)
	}
}
