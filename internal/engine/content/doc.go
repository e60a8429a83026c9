// Package content implements the editing-content state machine: an
// immutable value holding text and a selected range, validated on every
// construction and update.
//
// # EditingContent
//
// EditingContent values are created with New and never mutated. Update
// applies an UpdateRequest and returns a new value:
//
//	c, err := content.New("meow", text.NewRange(0, 0))
//	if err != nil {
//	    return err
//	}
//	c, err = c.Update(content.SubtextRequest(text.NewRange(0, 0), "purr", nil))
//	// c.Text() == "purrmeow", c.SelectedRange() == {4, 0}
//
// Unless the request names a selection explicitly, the selection follows the
// replaced range (see text.Range.MovedByReplacing).
//
// # Errors
//
// Construction fails with an *OutOfSelectedRangeError and Update may also
// fail with an *OutOfReplacingRangeError. Both carry the valid range of the
// text and match ErrOutOfSelectedRange / ErrOutOfReplacingRange with
// errors.Is. A failed update leaves the receiver untouched.
//
// # Changes
//
// ChangeResultFrom compares two values field by field and returns nil when
// nothing changed.
package content
