package model

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DefaultVersion is the coefficient vintage served when none is configured.
const DefaultVersion = "2020"

// Reaches lists the river reaches covered by the model, in display order.
var Reaches = []int{2, 3, 4, 5}

// Coefficients is a fitted logistic regression for one reach.
// Weights are ordered: ln(flow), 24h rain sum, 48h rain sum, PAR, water temp.
type Coefficients struct {
	Intercept float64
	Weights   []float64
}

// LogOdds evaluates the linear predictor for one feature vector.
func (c Coefficients) LogOdds(x []float64) float64 {
	return c.Intercept + floats.Dot(c.Weights, x)
}

// coefficientSets maps a model version (vintage year) to per-reach fits.
// Lower reaches sit further downstream and react more strongly to rain.
var coefficientSets = map[string]map[int]Coefficients{
	"2020": {
		2: {Intercept: -3.05, Weights: []float64{0.31, 1.12, 0.46, -0.0021, 0.058}},
		3: {Intercept: -2.81, Weights: []float64{0.27, 1.31, 0.52, -0.0018, 0.063}},
		4: {Intercept: -2.43, Weights: []float64{0.22, 1.47, 0.61, -0.0016, 0.071}},
		5: {Intercept: -2.12, Weights: []float64{0.18, 1.62, 0.74, -0.0012, 0.084}},
	},
}

// CoefficientsFor returns the per-reach fits for a model version.
func CoefficientsFor(version string) (map[int]Coefficients, error) {
	cs, ok := coefficientSets[version]
	if !ok {
		return nil, unknownVersionError{version: version}
	}
	return cs, nil
}

// Versions returns the known coefficient vintages, sorted.
func Versions() []string {
	vs := make([]string, 0, len(coefficientSets))
	for v := range coefficientSets {
		vs = append(vs, v)
	}
	sort.Strings(vs)
	return vs
}
