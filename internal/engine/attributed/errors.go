package attributed

import "errors"

// Sentinel errors for attributed strings.
var (
	// ErrRangeOutOfBounds is returned when a range is not contained in the
	// string or splits a surrogate pair.
	ErrRangeOutOfBounds = errors.New("range out of bounds")

	// ErrCharactersEdited is returned when attributes are copied from a
	// string whose text differs.
	ErrCharactersEdited = errors.New("characters edited")
)
