package editor

import "errors"

// Errors returned by editor operations.
var (
	// ErrUserInteractionInProgress indicates an API update was attempted
	// while a user interaction is being processed.
	ErrUserInteractionInProgress = errors.New("user interaction is being processed")

	// ErrInconsistentEditingContent indicates the live text or selection
	// diverged from the committed editing content.
	ErrInconsistentEditingContent = errors.New("inconsistent editing content")

	// ErrClipboardDisabled indicates clipboard pasting is turned off.
	ErrClipboardDisabled = errors.New("clipboard pasting is disabled")

	// ErrObserverNotFound indicates the handle is not registered.
	ErrObserverNotFound = errors.New("observer not found")
)
