// Package model implements the reach-safety flagging model: versioned
// logistic-regression coefficients, feature extraction from gauge samples,
// and a snapshot store that serves the most recent predictions.
package model
