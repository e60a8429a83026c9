package content

import (
	"errors"
	"fmt"

	"github.com/dshills/textkit/internal/engine/text"
)

// Sentinel errors for editing content validation.
var (
	// ErrOutOfSelectedRange is matched by errors whose selected range is not
	// contained in the text.
	ErrOutOfSelectedRange = errors.New("selected range out of text range")

	// ErrOutOfReplacingRange is matched by errors whose replacing range is not
	// contained in the text.
	ErrOutOfReplacingRange = errors.New("replacing range out of text range")
)

// OutOfSelectedRangeError reports a selected range outside ValidRange.
type OutOfSelectedRangeError struct {
	SelectedRange text.Range
	ValidRange    text.Range
}

func (e *OutOfSelectedRangeError) Error() string {
	return fmt.Sprintf("selected range %s is out of valid range %s", e.SelectedRange, e.ValidRange)
}

// Is reports whether target is ErrOutOfSelectedRange.
func (e *OutOfSelectedRangeError) Is(target error) bool {
	return target == ErrOutOfSelectedRange
}

// OutOfReplacingRangeError reports a replacing range outside ValidRange.
type OutOfReplacingRangeError struct {
	ReplacingRange text.Range
	ValidRange     text.Range
}

func (e *OutOfReplacingRangeError) Error() string {
	return fmt.Sprintf("replacing range %s is out of valid range %s", e.ReplacingRange, e.ValidRange)
}

// Is reports whether target is ErrOutOfReplacingRange.
func (e *OutOfReplacingRangeError) Is(target error) bool {
	return target == ErrOutOfReplacingRange
}
