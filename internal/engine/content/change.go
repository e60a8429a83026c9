package content

import "fmt"

// ChangeResult reports which parts of the content changed.
type ChangeResult struct {
	IsTextChanged          bool
	IsSelectedRangeChanged bool
}

// String returns a human-readable representation of the change.
func (r ChangeResult) String() string {
	return fmt.Sprintf("ChangeResult{text: %t, selectedRange: %t}", r.IsTextChanged, r.IsSelectedRangeChanged)
}

// ChangeResultFrom compares c with previous and returns nil if neither the
// text nor the selected range changed.
func (c EditingContent) ChangeResultFrom(previous EditingContent) *ChangeResult {
	result := ChangeResult{
		IsTextChanged:          c.text != previous.text,
		IsSelectedRangeChanged: c.selectedRange != previous.selectedRange,
	}
	if !result.IsTextChanged && !result.IsSelectedRangeChanged {
		return nil
	}
	return &result
}
