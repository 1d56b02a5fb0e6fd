package model

import (
	"math"
	"testing"
	"time"

	"flaggingd/pkg/types"
)

// synthSamples builds n hourly samples ending at end. rainAt maps sample
// index to rainfall inches; unlisted indexes are dry.
func synthSamples(n int, end time.Time, rainAt map[int]float64) []types.Sample {
	samples := make([]types.Sample, n)
	for i := range samples {
		samples[i] = types.Sample{
			Time:       end.Add(-time.Duration(n-1-i) * time.Hour),
			FlowCFS:    50,
			RainIn:     rainAt[i],
			PAR:        500,
			WaterTempC: 10,
		}
	}
	return samples
}

func TestLogistic(t *testing.T) {
	if got := Logistic(0); got != 0.5 {
		t.Fatalf("Logistic(0)=%v", got)
	}
	if got := Logistic(10); got < 0.999 {
		t.Fatalf("Logistic(10)=%v", got)
	}
	if got := Logistic(-10); got > 0.001 {
		t.Fatalf("Logistic(-10)=%v", got)
	}
}

func TestCoefficientsFor(t *testing.T) {
	cs, err := CoefficientsFor("2020")
	if err != nil {
		t.Fatalf("CoefficientsFor: %v", err)
	}
	for _, r := range Reaches {
		if _, ok := cs[r]; !ok {
			t.Fatalf("missing reach %d", r)
		}
	}
	if _, err := CoefficientsFor("1999"); !IsUnknownVersion(err) {
		t.Fatalf("expected unknown version, got %v", err)
	}
}

func TestPredictParallelAndBounded(t *testing.T) {
	end := time.Date(2020, 7, 11, 14, 0, 0, 0, time.UTC)
	samples := synthSamples(60, end, nil)
	coeffs, _ := CoefficientsFor("2020")
	preds := predict(samples, coeffs, DefaultSafeThreshold)
	for reach, ps := range preds {
		if len(ps) != maxWindow {
			t.Fatalf("reach %d: len=%d want %d", reach, len(ps), maxWindow)
		}
		for _, p := range ps {
			if p.Probability < 0 || p.Probability > 1 {
				t.Fatalf("reach %d: probability out of range: %v", reach, p.Probability)
			}
			if math.Abs(Logistic(p.LogOdds)-p.Probability) > 1e-12 {
				t.Fatalf("reach %d: probability does not match log-odds", reach)
			}
			if p.Safe != (p.Probability < DefaultSafeThreshold) {
				t.Fatalf("reach %d: safe flag inconsistent with threshold", reach)
			}
		}
	}
}

func TestPredictDrySafeStormUnsafe(t *testing.T) {
	end := time.Date(2020, 7, 11, 14, 0, 0, 0, time.UTC)
	coeffs, _ := CoefficientsFor("2020")

	dry := predict(synthSamples(48, end, nil), coeffs, DefaultSafeThreshold)
	for reach, ps := range dry {
		last := ps[len(ps)-1]
		if !last.Safe {
			t.Fatalf("reach %d: dry conditions flagged unsafe (p=%v)", reach, last.Probability)
		}
	}

	// 5 inches in the final hour.
	storm := predict(synthSamples(48, end, map[int]float64{47: 5.0}), coeffs, DefaultSafeThreshold)
	for reach, ps := range storm {
		last := ps[len(ps)-1]
		if last.Safe {
			t.Fatalf("reach %d: storm conditions flagged safe (p=%v)", reach, last.Probability)
		}
	}
}

func TestWindowSumRespectsGaps(t *testing.T) {
	end := time.Date(2020, 7, 11, 14, 0, 0, 0, time.UTC)
	samples := []types.Sample{
		{Time: end.Add(-72 * time.Hour), RainIn: 9},
		{Time: end.Add(-1 * time.Hour), RainIn: 1},
		{Time: end, RainIn: 2},
	}
	rain := rainSeries(samples)
	if got := windowSum(samples, rain, 2, 24*time.Hour); got != 3 {
		t.Fatalf("24h sum=%v want 3", got)
	}
	if got := windowSum(samples, rain, 2, 96*time.Hour); got != 12 {
		t.Fatalf("96h sum=%v want 12", got)
	}
}
