package editor

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/textkit/internal/paste"
)

// Handle identifies a registered observer.
type Handle uuid.UUID

// String returns the handle in UUID form.
func (h Handle) String() string {
	return uuid.UUID(h).String()
}

type observerEntry struct {
	handle Handle
	change ChangeObserver
	paste  paste.Observer
}

// registry keeps observers in registration order.
type registry struct {
	mu      sync.RWMutex
	entries []observerEntry
}

func (r *registry) add(entry observerEntry) Handle {
	entry.handle = Handle(uuid.New())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return entry.handle
}

func (r *registry) remove(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, entry := range r.entries {
		if entry.handle == h {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (r *registry) changeObservers() []ChangeObserver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var observers []ChangeObserver
	for _, entry := range r.entries {
		if entry.change != nil {
			observers = append(observers, entry.change)
		}
	}
	return observers
}

func (r *registry) pasteObservers() []paste.Observer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var observers []paste.Observer
	for _, entry := range r.entries {
		if entry.paste != nil {
			observers = append(observers, entry.paste)
		}
	}
	return observers
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
