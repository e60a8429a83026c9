package editor

import (
	"context"
	"strings"

	"github.com/dshills/textkit/internal/logger"
	"github.com/dshills/textkit/internal/paste"
	"github.com/dshills/textkit/internal/sequence"
)

// AddChangeObserver registers o and returns its handle.
func (e *Editor) AddChangeObserver(o ChangeObserver) Handle {
	return e.observers.add(observerEntry{change: o})
}

// AddPasteObserver registers o and returns its handle. Paste observers are
// asked in registration order, before the default text observer.
func (e *Editor) AddPasteObserver(o paste.Observer) Handle {
	return e.observers.add(observerEntry{paste: o})
}

// RemoveObserver unregisters the observer registered under h.
func (e *Editor) RemoveObserver(h Handle) error {
	if !e.observers.remove(h) {
		return ErrObserverNotFound
	}
	return nil
}

// pasteObservers returns the registered paste observers followed by the
// default text observer.
func (e *Editor) pasteObservers() []paste.Observer {
	return append(e.observers.pasteObservers(), paste.DefaultTextObserver{})
}

// AcceptableTypes returns the item types any paste observer accepts.
func (e *Editor) AcceptableTypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, o := range e.pasteObservers() {
		for _, t := range o.AcceptableTypes() {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	return types
}

// CanPaste returns true if one of the items can be pasted.
func (e *Editor) CanPaste(items []paste.Item) bool {
	return paste.CanPaste(e.pasteObservers(), items)
}

// Paste transforms items one by one and inserts the results, concatenated,
// over the live selection as a user interaction. done, if not nil, is
// called on the loop with the inserted text.
func (e *Editor) Paste(items []paste.Item, done func(inserted string)) {
	observers := e.pasteObservers()

	var b strings.Builder
	sequence.ForEach(e.loop, items, func(item paste.Item, next sequence.Next) {
		paste.Transform(e.loop, observers, item, func(result paste.Result) {
			logger.DebugTagf("editor", "paste result: %v", result.Kind)
			switch result.Kind {
			case paste.ResultString:
				b.WriteString(result.String)
			case paste.ResultDefault:
				b.WriteString(defaultText(item))
			}
			next(sequence.Continue)
		})
	}, func() {
		inserted := b.String()
		if inserted != "" {
			if err := e.InsertText(e.liveSelection, inserted); err != nil {
				logger.Errorf("editor: paste: %v", err)
				inserted = ""
			}
		}
		if done != nil {
			done(inserted)
		}
	})
}

// PasteClipboard pastes the system clipboard's text.
func (e *Editor) PasteClipboard(done func(inserted string)) error {
	if !e.useClipboard {
		return ErrClipboardDisabled
	}
	e.Paste([]paste.Item{paste.NewClipboardItem()}, done)
	return nil
}

// defaultText returns the plain text representation of item, if any.
func defaultText(item paste.Item) string {
	if !paste.HasType(item, paste.TypePlainText) {
		return ""
	}
	data, err := item.Load(context.Background(), paste.TypePlainText)
	if err != nil {
		logger.Warnf("editor: paste: load plain text: %v", err)
		return ""
	}
	return string(data)
}
