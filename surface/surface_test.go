package surface

import (
	"math"
	"math/rand"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func nearPoint(a, b Point3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func finite(p Point3) bool {
	for _, c := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func TestFunctionsAreFinite(t *testing.T) {
	inputs := []float64{-1e6, -3.7, -1, -0.5, 0, 0.25, 1, 2.5, 1e6}
	for _, name := range Names() {
		f := Lookup(name)
		for _, u := range inputs {
			for _, v := range inputs {
				for _, tm := range inputs {
					if p := f(u, v, tm); !finite(p) {
						t.Fatalf("%s(%v, %v, %v) = %+v, want finite", name, u, v, tm, p)
					}
				}
			}
		}
	}
}

func TestKnownValues(t *testing.T) {
	tests := []struct {
		name    Name
		u, v, t float64
		want    Point3
	}{
		{Wave, -0.75, -0.75, 0, Point3{X: -0.75, Y: 1, Z: -0.75}},
		{Wave, 0, 0, 0.5, Point3{X: 0, Y: 1, Z: 0}},
		{MultiWave, 0, 0, 0, Point3{X: 0, Y: 0, Z: 0}},
		{Ripple, 0, 0, -0.5, Point3{X: 0, Y: 1, Z: 0}},
		{ScalingSphere, 0, 0, 0.5, Point3{X: 0, Y: 0, Z: 1}},
		{ScalingSphere, 0, 1, 0.5, Point3{X: 0, Y: 1, Z: 0}},
		{ScalingSphere, 0, 0, 1.5, Point3{X: 0, Y: 0, Z: 0}},
		{TwistingSphere, 0, 0, 0, Point3{X: 0, Y: 0, Z: 0.9}},
		{Torus, 0, 0, 0, Point3{X: 0, Y: 0, Z: 0.85}},
		{Torus, 0.5, 0, 0, Point3{X: 0.85, Y: 0, Z: 0}},
	}

	for _, tt := range tests {
		got := Lookup(tt.name)(tt.u, tt.v, tt.t)
		if !nearPoint(got, tt.want) {
			t.Errorf("%s(%v, %v, %v) = %+v, want %+v", tt.name, tt.u, tt.v, tt.t, got, tt.want)
		}
	}
}

func TestSpheresStayOnRadius(t *testing.T) {
	for _, tm := range []float64{0, 0.3, 1.7} {
		r := 0.5 + 0.5*math.Sin(math.Pi*tm)
		for _, u := range []float64{-0.9, -0.1, 0.6} {
			for _, v := range []float64{-0.8, 0, 0.4} {
				p := Lookup(ScalingSphere)(u, v, tm)
				got := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
				if math.Abs(got-r) > 1e-9 {
					t.Errorf("scaling sphere radius at (%v,%v,%v) = %v, want %v", u, v, tm, got, r)
				}
			}
		}
	}
}

func TestNextWraps(t *testing.T) {
	if got := Next(Torus); got != Wave {
		t.Errorf("Next(Torus) = %s, want %s", got, Wave)
	}
	if got := Next(Wave); got != MultiWave {
		t.Errorf("Next(Wave) = %s, want %s", got, MultiWave)
	}

	for _, start := range Names() {
		n := start
		for i := 0; i < Count(); i++ {
			n = Next(n)
		}
		if n != start {
			t.Errorf("Next applied %d times from %s = %s", Count(), start, n)
		}
	}
}

func TestRandomCoversAll(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[Name]int)
	for i := 0; i < 6000; i++ {
		n := Random(rng)
		if !n.Valid() {
			t.Fatalf("Random returned invalid name %d", n)
		}
		seen[n]++
	}
	for _, n := range Names() {
		if seen[n] < 800 {
			t.Errorf("Random drew %s only %d times out of 6000", n, seen[n])
		}
	}
}

func TestRandomExcludingBias(t *testing.T) {
	const current = Ripple
	rng := rand.New(rand.NewSource(7))
	replay := rand.New(rand.NewSource(7))

	zeros := 0
	for i := 0; i < 1000; i++ {
		got := RandomExcluding(rng, current)
		raw := Name(1 + replay.Intn(Count()-1))

		if got == current {
			t.Fatalf("draw %d returned current function %s", i, current)
		}
		want := raw
		if raw == current {
			want = 0
		}
		if got != want {
			t.Fatalf("draw %d = %s, want %s (raw draw %s)", i, got, want, raw)
		}
		if got == 0 {
			zeros++
		}
	}

	// Ordinal 0 is only reachable through the fallback, so it appears about
	// as often as any single raw ordinal (1 in count-1).
	if zeros < 120 || zeros > 290 {
		t.Errorf("fallback to ordinal 0 happened %d times, want roughly 200", zeros)
	}
}

func TestRandomExcludingFromZero(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		if got := RandomExcluding(rng, Wave); got == Wave {
			t.Fatalf("RandomExcluding(Wave) returned Wave")
		}
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		in   string
		want Name
		ok   bool
	}{
		{"wave", Wave, true},
		{"MultiWave", MultiWave, true},
		{"multi-wave", MultiWave, true},
		{" twisting_sphere ", TwistingSphere, true},
		{"TORUS", Torus, true},
		{"cube", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseName(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseName(%q) = %s, %v; want %s", tt.in, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseName(%q) succeeded, want error", tt.in)
		}
	}
}

func TestNameTextRoundTrip(t *testing.T) {
	for _, n := range Names() {
		text, err := n.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s): %v", n, err)
		}
		var back Name
		if err := back.UnmarshalText(text); err != nil || back != n {
			t.Errorf("round trip %s -> %q -> %s (%v)", n, text, back, err)
		}
	}
	if _, err := Name(42).MarshalText(); err == nil {
		t.Error("expected error marshaling out-of-range name")
	}
}

func TestKernelIndex(t *testing.T) {
	n := Count()
	if got := KernelIndex(Torus, Wave, false); got != int(Torus) {
		t.Errorf("stable kernel = %d, want %d", got, Torus)
	}
	if got := KernelIndex(Ripple, MultiWave, true); got != n+int(Ripple)+int(MultiWave)*n {
		t.Errorf("morph kernel = %d", got)
	}

	seen := make(map[int]bool)
	for _, cur := range Names() {
		for _, prev := range Names() {
			k := KernelIndex(cur, prev, true)
			if k < n || k >= n+n*n {
				t.Fatalf("morph kernel %d out of range", k)
			}
			if seen[k] {
				t.Fatalf("duplicate morph kernel %d", k)
			}
			seen[k] = true
		}
	}
}
