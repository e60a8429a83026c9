package text

import "errors"

// Sentinel errors for text operations.
var (
	// ErrOffsetOutOfRange is returned when an offset is past the end of the text.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid is returned when a range is not contained in the text.
	ErrRangeInvalid = errors.New("invalid range")

	// ErrSurrogateSplit is returned when an offset falls inside a surrogate pair.
	ErrSurrogateSplit = errors.New("offset splits a surrogate pair")
)
