package paste

import (
	"context"
	"fmt"
	"slices"

	"github.com/atotto/clipboard"
)

// Type identifiers.
const (
	TypePlainText     = "public.plain-text"
	TypeUTF8PlainText = "public.utf8-plain-text"
	TypeURL           = "public.url"
	TypeJSON          = "public.json"
)

// Item is a pasted or dropped item.
type Item interface {
	// TypeIdentifiers returns the types the item can be loaded as, most
	// faithful first.
	TypeIdentifiers() []string

	// Load returns the item's data as typeIdentifier. It may block.
	Load(ctx context.Context, typeIdentifier string) ([]byte, error)
}

// HasType returns true if item can be loaded as typeIdentifier.
func HasType(item Item, typeIdentifier string) bool {
	return slices.Contains(item.TypeIdentifiers(), typeIdentifier)
}

type representation struct {
	typeIdentifier string
	data           []byte
}

// StaticItem is an in-memory item.
type StaticItem struct {
	reps []representation
}

// NewItem creates an item holding data as typeIdentifier.
func NewItem(typeIdentifier string, data []byte) *StaticItem {
	return (&StaticItem{}).With(typeIdentifier, data)
}

// NewTextItem creates a plain text item.
func NewTextItem(s string) *StaticItem {
	return NewItem(TypePlainText, []byte(s))
}

// With adds a representation and returns the item.
func (i *StaticItem) With(typeIdentifier string, data []byte) *StaticItem {
	i.reps = append(i.reps, representation{typeIdentifier: typeIdentifier, data: data})
	return i
}

// TypeIdentifiers implements Item.
func (i *StaticItem) TypeIdentifiers() []string {
	types := make([]string, len(i.reps))
	for n, rep := range i.reps {
		types[n] = rep.typeIdentifier
	}
	return types
}

// Load implements Item.
func (i *StaticItem) Load(ctx context.Context, typeIdentifier string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, rep := range i.reps {
		if rep.typeIdentifier == typeIdentifier {
			return slices.Clone(rep.data), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTypeUnavailable, typeIdentifier)
}

// ClipboardItem reads plain text from the system clipboard when loaded.
type ClipboardItem struct {
	read func() (string, error)
}

// NewClipboardItem creates an item backed by the system clipboard.
func NewClipboardItem() *ClipboardItem {
	return &ClipboardItem{read: clipboard.ReadAll}
}

// TypeIdentifiers implements Item.
func (i *ClipboardItem) TypeIdentifiers() []string {
	return []string{TypePlainText}
}

// Load implements Item.
func (i *ClipboardItem) Load(ctx context.Context, typeIdentifier string) ([]byte, error) {
	if typeIdentifier != TypePlainText {
		return nil, fmt.Errorf("%w: %s", ErrTypeUnavailable, typeIdentifier)
	}
	if clipboard.Unsupported {
		return nil, ErrClipboardUnsupported
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := i.read()
	if err != nil {
		return nil, fmt.Errorf("read clipboard: %w", err)
	}
	return []byte(s), nil
}
