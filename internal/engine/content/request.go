package content

import (
	"fmt"
	"strings"

	"github.com/dshills/textkit/internal/engine/text"
)

// UpdateRequest describes an edit. A nil ReplacingText leaves the text
// alone; a nil ReplacingRange with a ReplacingText replaces the whole text;
// a nil SelectedRange lets the selection follow the replacement.
type UpdateRequest struct {
	ReplacingRange *text.Range
	ReplacingText  *string
	SelectedRange  *text.Range
}

// NullRequest returns a request that changes nothing.
func NullRequest() UpdateRequest {
	return UpdateRequest{}
}

// TextRequest returns a request replacing the whole text.
func TextRequest(s string, selectedRange *text.Range) UpdateRequest {
	return UpdateRequest{
		ReplacingText: &s,
		SelectedRange: selectedRange,
	}
}

// SubtextRequest returns a request replacing the part of the text covered by r.
func SubtextRequest(r text.Range, s string, selectedRange *text.Range) UpdateRequest {
	return UpdateRequest{
		ReplacingRange: &r,
		ReplacingText:  &s,
		SelectedRange:  selectedRange,
	}
}

// SelectedRangeRequest returns a request that only moves the selection.
func SelectedRangeRequest(r text.Range) UpdateRequest {
	return UpdateRequest{SelectedRange: &r}
}

// IsNull returns true if the request changes nothing by itself.
func (r UpdateRequest) IsNull() bool {
	return r.ReplacingText == nil && r.SelectedRange == nil
}

// String returns a human-readable representation of the request.
func (r UpdateRequest) String() string {
	if r.IsNull() {
		return "null"
	}

	var parts []string
	if r.ReplacingText != nil {
		if r.ReplacingRange != nil {
			parts = append(parts, fmt.Sprintf("subtext(range: %s, text: %q)", *r.ReplacingRange, *r.ReplacingText))
		} else {
			parts = append(parts, fmt.Sprintf("text(%q)", *r.ReplacingText))
		}
	}
	if r.SelectedRange != nil {
		parts = append(parts, fmt.Sprintf("selectedRange(%s)", *r.SelectedRange))
	}
	return strings.Join(parts, ", ")
}
