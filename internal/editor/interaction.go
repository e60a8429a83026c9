package editor

import (
	"fmt"

	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/engine/content"
	"github.com/dshills/textkit/internal/engine/text"
	"github.com/dshills/textkit/internal/logger"
)

// The methods below are called by the view layer to report user
// interactions. Each one updates the live state; the interaction is
// committed on the next loop tick or on EndEditing.

// ShouldChangeText reports that the user is about to replace r with s.
// It is the first call of a user interaction and always allows the change.
func (e *Editor) ShouldChangeText(r text.Range, s string) bool {
	logger.DebugTagf("editor", "range: %v, replacement text: %q", r, s)

	e.interacting = true

	// Some input methods only report an empty change; make sure the
	// interaction still ends.
	if r.Length == 0 && s == "" {
		e.userInteractionDidChange.Schedule()
	}
	return true
}

// InsertText replaces r of the live text with s, as typed by the user, and
// leaves a caret after the inserted text.
func (e *Editor) InsertText(r text.Range, s string) error {
	if !text.FullRange(e.storage.Text()).ContainsRange(r) || !text.IsRangeOnBoundaries(e.storage.Text(), r) {
		return &content.OutOfReplacingRangeError{
			ReplacingRange: r,
			ValidRange:     text.FullRange(e.storage.Text()),
		}
	}
	e.ShouldChangeText(r, s)

	var attrs attributed.Attributes
	if e.storage.Length() == 0 {
		attrs = e.typingAttributes
	}
	if err := e.storage.Replace(r, s, attrs); err != nil {
		return fmt.Errorf("insert text: %w", err)
	}
	e.liveSelection = text.NewRange(r.Location+text.Length(s), 0)

	e.textDidChange()
	e.userInteractionDidChange.Schedule()
	return nil
}

// ChangeSelection moves the live selection, as done by the user.
func (e *Editor) ChangeSelection(r text.Range) error {
	logger.DebugTagf("editor", "selected range: %v", r)

	if _, err := content.New(e.storage.Text(), r); err != nil {
		return err
	}
	e.liveSelection = r
	e.userInteractionDidChange.Schedule()
	return nil
}

// EndEditing ends editing and commits any pending user interaction now.
func (e *Editor) EndEditing() {
	logger.DebugTagf("editor", "end editing")
	e.userInteractionDidChange.Perform()
}

func (e *Editor) didChangeByUserInteraction() {
	e.interacting = false

	previous := e.committed
	e.committed = e.live()

	e.updateEditingContent()

	change := e.committed.ChangeResultFrom(previous)
	if change == nil {
		return
	}

	logger.DebugTagf("editor", "change result: %v", change)
	for _, o := range e.observers.changeObservers() {
		o.DidChange(e, *change)
	}
}
