package types

// ReachSeries holds the parallel per-sample model outputs for one reach.
// All four slices are the same length; index i is one hourly sample.
type ReachSeries struct {
	// Sample timestamps (RFC3339), oldest first.
	// example: ["2020-07-11T13:00:00Z","2020-07-11T14:00:00Z"]
	Time []string `json:"time"`
	// Logit-scale model output, parallel to time.
	// example: [-1.62,-0.48]
	LogOdds []float64 `json:"log-odds"`
	// Modeled probability of a bacterial exceedance, parallel to time, in [0,1].
	// example: [0.16,0.38]
	Probability []float64 `json:"probability"`
	// True when the reach is flagged safe for recreation at that sample.
	// example: [true,true]
	Safe []bool `json:"safe"`
}

// ModelResponse is the payload returned by GET /api/v1/model.
type ModelResponse struct {
	// Coefficient vintage used to compute the predictions.
	// example: 2020
	Version string `json:"version" example:"2020"`
	// When the model was executed.
	// example: 2020-07-11T14:05:12Z
	TimeReturned string `json:"time_returned" example:"2020-07-11T14:05:12Z"`
	// Per-reach prediction series keyed by reach number.
	Models map[string]ReachSeries `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid reach: 7
	Error string `json:"error" example:"invalid reach: 7"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Coefficient vintage currently served.
	// example: 2020
	Version string `json:"version" example:"2020"`
	// Overall service state (loading, ready, error).
	// example: ready
	State string `json:"state" example:"ready"`
	// Reach numbers covered by the current snapshot.
	Reaches []int `json:"reaches"`
	// Number of gauge samples backing the current snapshot.
	// example: 48
	SampleCount int `json:"sample_count" example:"48"`
	// Probability threshold at or above which a sample is flagged unsafe.
	// example: 0.65
	SafeThreshold float64 `json:"safe_threshold" example:"0.65"`
	// When the snapshot was last recomputed (unix seconds, 0 if never).
	// example: 1700000000
	LastRefreshUnix int64 `json:"last_refresh_unix" example:"1700000000"`
	// Total successful refreshes since start.
	// example: 12
	RefreshesTotal uint64 `json:"refreshes_total" example:"12"`
	// Last refresh error observed (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
