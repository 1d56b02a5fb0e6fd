package model

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"flaggingd/pkg/types"
)

// rainSeries extracts the hourly rainfall column for windowed sums.
func rainSeries(samples []types.Sample) []float64 {
	rain := make([]float64, len(samples))
	for i, s := range samples {
		rain[i] = s.RainIn
	}
	return rain
}

// featureVector builds the regressor inputs for the sample at index i,
// ordered to match Coefficients.Weights.
func featureVector(samples []types.Sample, rain []float64, i int) []float64 {
	s := samples[i]
	return []float64{
		math.Log(math.Max(s.FlowCFS, 1e-6)),
		windowSum(samples, rain, i, 24*time.Hour),
		windowSum(samples, rain, i, 48*time.Hour),
		s.PAR,
		s.WaterTempC,
	}
}

// windowSum sums vals over the trailing wall-clock window ending at sample i.
// Gaps in the gauge record shrink the window rather than stretch it.
func windowSum(samples []types.Sample, vals []float64, i int, window time.Duration) float64 {
	cutoff := samples[i].Time.Add(-window)
	lo := i
	for lo > 0 && samples[lo-1].Time.After(cutoff) {
		lo--
	}
	return floats.Sum(vals[lo : i+1])
}
