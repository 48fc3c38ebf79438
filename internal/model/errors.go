package model

import "errors"

// Domain errors raised by the workflow store (and by the remote service,
// translated from its status codes where a sentinel applies). Callers
// compare with errors.Is.
var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict means the caller supplied an expected document
	// version that no longer matches the current one.
	ErrVersionConflict = errors.New("version conflict")

	// ErrValidation means required input was missing or malformed.
	ErrValidation = errors.New("validation failed")
)
