package editor

import (
	"context"

	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/engine/content"
)

// ContentDelegate rewrites editing content before the editor commits it.
// It is used for policies such as dropping characters the application does
// not accept. Use text.Range.MovedByReplacing to keep the selection in
// place.
type ContentDelegate interface {
	// UpdateEditingContent returns the content to commit, or ok == false
	// to commit c unchanged.
	UpdateEditingContent(c content.EditingContent) (updated content.EditingContent, ok bool)
}

// ContentDelegateFunc adapts a function to ContentDelegate.
type ContentDelegateFunc func(c content.EditingContent) (content.EditingContent, bool)

// UpdateEditingContent implements ContentDelegate.
func (f ContentDelegateFunc) UpdateEditingContent(c content.EditingContent) (content.EditingContent, bool) {
	return f(c)
}

// AttributesDelegate computes text attributes, for example syntax
// highlighting.
//
// UpdateAttributes may be called again before an earlier call finished;
// only the latest result is used. It must not modify s and must call done
// exactly once, possibly from another goroutine, with the restyled text or
// nil for no update. The returned text must have the same characters as s.
// ctx is cancelled when a newer call starts.
type AttributesDelegate interface {
	UpdateAttributes(ctx context.Context, s *attributed.String, done func(*attributed.String))
}

// AttributesDelegateFunc adapts a function to AttributesDelegate.
type AttributesDelegateFunc func(ctx context.Context, s *attributed.String, done func(*attributed.String))

// UpdateAttributes implements AttributesDelegate.
func (f AttributesDelegateFunc) UpdateAttributes(ctx context.Context, s *attributed.String, done func(*attributed.String)) {
	f(ctx, s, done)
}

// ChangeObserver is told about changes made by user interactions.
type ChangeObserver interface {
	DidChange(e *Editor, change content.ChangeResult)
}

// ChangeObserverFunc adapts a function to ChangeObserver.
type ChangeObserverFunc func(e *Editor, change content.ChangeResult)

// DidChange implements ChangeObserver.
func (f ChangeObserverFunc) DidChange(e *Editor, change content.ChangeResult) {
	f(e, change)
}
