// Package editor provides the editor controller, the composition root that
// owns the editing content and drives the update pipeline.
//
// # State
//
// An Editor keeps two views of its content:
//
//   - the live state: the attributed text storage and the selection, as
//     changed by user interactions reported by the view layer;
//   - the committed state: the EditingContent the editor last accepted.
//
// They only differ while a user interaction is being processed. The
// interaction ends on the next loop tick after the last reported change,
// or immediately on EndEditing. The live state is then committed, the
// ContentDelegate gets a chance to rewrite it and change observers are told
// what changed.
//
// # Updates through the API
//
// Update, SetText, SetSelectedRange and UpdateByReplacing change the
// content directly. They fail with ErrUserInteractionInProgress while an
// interaction is pending and with ErrInconsistentEditingContent when the
// live and committed states diverged. API updates never notify change
// observers.
//
// # Text attributes
//
// Every text change, and every SetNeedsUpdateTextAttributes call, hands a
// snapshot of the storage to the AttributesDelegate through a
// schedule.ContentFilter. Only the latest result is applied, and only if
// the text did not change meanwhile.
//
// # Threading
//
// An Editor is not safe for concurrent use. All methods must be called
// from tasks running on the editor's loop; delegates may finish their work
// on other goroutines.
package editor
