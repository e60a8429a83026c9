package paste

import "errors"

// Sentinel errors for paste items.
var (
	// ErrTypeUnavailable is returned when an item has no data of the
	// requested type.
	ErrTypeUnavailable = errors.New("type not available")

	// ErrClipboardUnsupported is returned when the system clipboard cannot
	// be accessed.
	ErrClipboardUnsupported = errors.New("clipboard unsupported")
)
