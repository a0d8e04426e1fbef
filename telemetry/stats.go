package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/morphgraph/surface"
)

// HeightStats summarizes the y coordinates of one sampled frame.
type HeightStats struct {
	Samples int     `json:"samples" csv:"samples"`
	Min     float64 `json:"min" csv:"y_min"`
	Mean    float64 `json:"mean" csv:"y_mean"`
	P10     float64 `json:"p10" csv:"y_p10"`
	P50     float64 `json:"p50" csv:"y_p50"`
	P90     float64 `json:"p90" csv:"y_p90"`
	Max     float64 `json:"max" csv:"y_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeHeightStats calculates range, mean and percentiles of the sample
// heights.
func ComputeHeightStats(positions []surface.Point3) HeightStats {
	n := len(positions)
	if n == 0 {
		return HeightStats{}
	}

	heights := make([]float64, n)
	for i, p := range positions {
		heights[i] = p.Y
	}
	sort.Float64s(heights)

	return HeightStats{
		Samples: n,
		Min:     heights[0],
		Mean:    floats.Sum(heights) / float64(n),
		P10:     Percentile(heights, 0.10),
		P50:     Percentile(heights, 0.50),
		P90:     Percentile(heights, 0.90),
		Max:     heights[n-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s HeightStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("samples", s.Samples),
		slog.Float64("min", s.Min),
		slog.Float64("mean", s.Mean),
		slog.Float64("p50", s.P50),
		slog.Float64("max", s.Max),
	)
}
