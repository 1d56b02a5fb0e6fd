package model

import (
	"math"
	"time"

	"flaggingd/pkg/types"
)

// maxWindow caps how many trailing samples a snapshot keeps per reach.
const maxWindow = 48

// Prediction is one scored sample for one reach.
type Prediction struct {
	Time        time.Time
	LogOdds     float64
	Probability float64
	Safe        bool
}

// Logistic maps a logit-scale value to a probability in (0,1).
func Logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// predict scores the trailing samples for every reach in coeffs. A sample is
// safe when the exceedance probability stays below threshold.
func predict(samples []types.Sample, coeffs map[int]Coefficients, threshold float64) map[int][]Prediction {
	start := 0
	if len(samples) > maxWindow {
		start = len(samples) - maxWindow
	}
	rain := rainSeries(samples)
	out := make(map[int][]Prediction, len(coeffs))
	for reach, c := range coeffs {
		preds := make([]Prediction, 0, len(samples)-start)
		for i := start; i < len(samples); i++ {
			lo := c.LogOdds(featureVector(samples, rain, i))
			p := Logistic(lo)
			preds = append(preds, Prediction{
				Time:        samples[i].Time,
				LogOdds:     lo,
				Probability: p,
				Safe:        p < threshold,
			})
		}
		out[reach] = preds
	}
	return out
}
