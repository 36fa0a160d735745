package core

import "errors"

// Common errors.
var (
	// ErrInvalidArgument is returned at the call boundary for input that is
	// not a usable text value (e.g. bytes that are not valid UTF-8).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownOperation is returned when an operation name is not registered.
	ErrUnknownOperation = errors.New("unknown operation")
)
