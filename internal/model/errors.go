package model

import "strconv"

// unknownReachError signals a reach number outside the modeled set.
type unknownReachError struct{ reach int }

func (e unknownReachError) Error() string { return "unknown reach: " + strconv.Itoa(e.reach) }

// ErrUnknownReach constructs an unknownReachError.
func ErrUnknownReach(reach int) error { return unknownReachError{reach: reach} }

// IsUnknownReach reports whether err indicates a reach outside the modeled set.
func IsUnknownReach(err error) bool {
	_, ok := err.(unknownReachError)
	return ok
}

// unknownVersionError signals a coefficient vintage that is not registered.
type unknownVersionError struct{ version string }

func (e unknownVersionError) Error() string { return "unknown model version: " + e.version }

// IsUnknownVersion reports whether err indicates a missing coefficient set.
func IsUnknownVersion(err error) bool {
	_, ok := err.(unknownVersionError)
	return ok
}

// snapshotUnavailableError signals that no snapshot has been computed yet,
// so the HTTP layer can return 503 instead of 500.
type snapshotUnavailableError struct{}

func (snapshotUnavailableError) Error() string { return "model snapshot not available yet" }

// ErrSnapshotUnavailable constructs a snapshotUnavailableError.
func ErrSnapshotUnavailable() error { return snapshotUnavailableError{} }

// IsSnapshotUnavailable reports whether err indicates the store has no snapshot.
func IsSnapshotUnavailable(err error) bool {
	_, ok := err.(snapshotUnavailableError)
	return ok
}
