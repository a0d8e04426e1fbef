package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/morphgraph/surface"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		p        float64
		expected float64
	}{
		{0.0, 1},
		{0.5, 5.5},
		{1.0, 10},
		{0.1, 1.9},
		{0.9, 9.1},
		{-1, 1},
		{2, 10},
	}

	for _, tc := range tests {
		got := Percentile(sorted, tc.p)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Percentile(%v) = %v, expected %v", tc.p, got, tc.expected)
		}
	}
}

func TestPercentileEmpty(t *testing.T) {
	if got := Percentile(nil, 0.5); got != 0 {
		t.Errorf("Percentile(nil) = %v, expected 0", got)
	}
}

func TestComputeHeightStats(t *testing.T) {
	positions := []surface.Point3{
		{Y: 0.5}, {Y: -1}, {Y: 1}, {Y: 0}, {Y: -0.5},
	}

	s := ComputeHeightStats(positions)

	if s.Samples != 5 {
		t.Errorf("Samples = %d, want 5", s.Samples)
	}
	if s.Min != -1 || s.Max != 1 {
		t.Errorf("range = [%v, %v], want [-1, 1]", s.Min, s.Max)
	}
	if math.Abs(s.Mean) > 1e-12 {
		t.Errorf("Mean = %v, want 0", s.Mean)
	}
	if s.P50 != 0 {
		t.Errorf("P50 = %v, want 0", s.P50)
	}
	if math.Abs(s.P10-(-0.8)) > 1e-12 {
		t.Errorf("P10 = %v, want -0.8", s.P10)
	}

	// Input order is left untouched
	if positions[0].Y != 0.5 {
		t.Error("ComputeHeightStats reordered its input")
	}
}

func TestComputeHeightStatsEmpty(t *testing.T) {
	if s := ComputeHeightStats(nil); s != (HeightStats{}) {
		t.Errorf("empty stats = %+v", s)
	}
}
