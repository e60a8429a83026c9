package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call exceeds its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrFunctionNotFound is returned when calling an undefined global.
	ErrFunctionNotFound = errors.New("lua function not found")

	// ErrInvalidResult is returned when a script returns values that are
	// not editing content.
	ErrInvalidResult = errors.New("invalid lua result")
)
