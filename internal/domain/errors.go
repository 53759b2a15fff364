package domain

import "errors"

var (
	// ErrInvalid is returned when a request payload fails validation.
	ErrInvalid = errors.New("invalid input")

	// ErrNotFound is returned when no document matched the id or filter,
	// including mutations whose match count was zero.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique constraint was violated.
	ErrDuplicate = errors.New("already exists")

	// ErrConflict is returned when a guarded state transition was attempted
	// from an invalid predecessor state.
	ErrConflict = errors.New("conflicting state")

	// ErrUpstream is returned when the payment processor or identity
	// provider call failed.
	ErrUpstream = errors.New("upstream failure")
)
