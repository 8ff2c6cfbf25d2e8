package models

import "errors"

// Custom errors
var (
	// ErrDataUnavailable means the outcome feed could not be retrieved. It is
	// propagated to the caller, never masked as an empty result.
	ErrDataUnavailable = errors.New("outcome feed unavailable")

	// ErrInvalidParameter means a caller-supplied calculator parameter is out
	// of domain. Rejected before any computation starts.
	ErrInvalidParameter = errors.New("invalid parameter")

	ErrNotFound = errors.New("record not found")
)
