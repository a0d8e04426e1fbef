package surface

import "testing"

func TestMorphEndpoints(t *testing.T) {
	samples := [][3]float64{{-0.75, -0.75, 0}, {0.3, -0.2, 1.25}, {0.9, 0.9, 17.5}}
	for _, from := range Names() {
		for _, to := range Names() {
			f, g := Lookup(from), Lookup(to)
			for _, s := range samples {
				u, v, tm := s[0], s[1], s[2]
				if got, want := Morph(u, v, tm, g, f, 0), f(u, v, tm); got != want {
					t.Errorf("Morph(%s->%s, 0) = %+v, want %+v", from, to, got, want)
				}
				if got, want := Morph(u, v, tm, g, f, 1), g(u, v, tm); got != want {
					t.Errorf("Morph(%s->%s, 1) = %+v, want %+v", from, to, got, want)
				}
			}
		}
	}
}

func TestMorphDegenerate(t *testing.T) {
	for _, name := range Names() {
		f := Lookup(name)
		for _, p := range []float64{0, 0.1, 0.5, 0.77, 1} {
			if got, want := Morph(0.4, -0.6, 2.2, f, f, p), f(0.4, -0.6, 2.2); got != want {
				t.Errorf("Morph(%s, %s, %v) = %+v, want %+v", name, name, p, got, want)
			}
		}
	}
}

func TestMorphMidpoint(t *testing.T) {
	a := Point3{X: 0, Y: -1, Z: 2}
	b := Point3{X: 1, Y: 1, Z: 4}
	got := Lerp(a, b, 0.5)
	want := Point3{X: 0.5, Y: 0, Z: 3}
	if !nearPoint(got, want) {
		t.Errorf("Lerp midpoint = %+v, want %+v", got, want)
	}

	// Unclamped: progress past 1 extrapolates.
	got = Lerp(a, b, 2)
	want = Point3{X: 2, Y: 3, Z: 6}
	if !nearPoint(got, want) {
		t.Errorf("Lerp(2) = %+v, want %+v", got, want)
	}
}
