package content

import (
	"fmt"

	"github.com/dshills/textkit/internal/engine/text"
)

// EditingContent is an immutable pair of text and selected range.
// The selected range is always contained in [0, Length(text)] and never
// splits a surrogate pair.
//
// EditingContent is plain data; it is comparable with == and safe to copy.
type EditingContent struct {
	text          string
	selectedRange text.Range
}

// New creates an EditingContent, validating that selectedRange lies within
// the text.
func New(s string, selectedRange text.Range) (EditingContent, error) {
	if !text.FullRange(s).ContainsRange(selectedRange) || !text.IsRangeOnBoundaries(s, selectedRange) {
		return EditingContent{}, &OutOfSelectedRangeError{
			SelectedRange: selectedRange,
			ValidRange:    text.FullRange(s),
		}
	}
	return EditingContent{text: s, selectedRange: selectedRange}, nil
}

// Text returns the text.
func (c EditingContent) Text() string {
	return c.text
}

// SelectedRange returns the selected range.
func (c EditingContent) SelectedRange() text.Range {
	return c.selectedRange
}

// Length returns the length of the text in UTF-16 code units.
func (c EditingContent) Length() int {
	return text.Length(c.text)
}

// String returns a human-readable representation for logging.
func (c EditingContent) String() string {
	return fmt.Sprintf("EditingContent{text: %q, selectedRange: %s}", c.text, c.selectedRange)
}

// Update applies the request and returns the resulting content.
// The receiver is never modified.
func (c EditingContent) Update(req UpdateRequest) (EditingContent, error) {
	updatedText := c.text
	updatedSelectedRange := c.selectedRange

	if req.ReplacingText != nil {
		fullRange := text.FullRange(c.text)
		replacingRange := fullRange
		if req.ReplacingRange != nil {
			replacingRange = *req.ReplacingRange
		}
		if !fullRange.ContainsRange(replacingRange) || !text.IsRangeOnBoundaries(c.text, replacingRange) {
			return c, &OutOfReplacingRangeError{
				ReplacingRange: replacingRange,
				ValidRange:     fullRange,
			}
		}

		replaced, err := text.Replace(c.text, replacingRange, *req.ReplacingText)
		if err != nil {
			return c, fmt.Errorf("replacing %s: %w", replacingRange, err)
		}
		updatedText = replaced

		if req.SelectedRange != nil {
			updatedSelectedRange = *req.SelectedRange
		} else {
			updatedSelectedRange = c.selectedRange.MovedByReplacing(replacingRange, text.Length(*req.ReplacingText))
		}
	} else if req.SelectedRange != nil {
		updatedSelectedRange = *req.SelectedRange
	}

	updated, err := New(updatedText, updatedSelectedRange)
	if err != nil {
		return c, err
	}
	return updated, nil
}
