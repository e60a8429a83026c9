package paste

import (
	"context"
	"slices"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/textkit/internal/logger"
)

// OutcomeKind tells how an observer finished transforming an item.
type OutcomeKind int

const (
	// OutcomeNoTransform asks the next observer.
	OutcomeNoTransform OutcomeKind = iota
	// OutcomeTransformed ends the walk without inserting anything.
	OutcomeTransformed
	// OutcomeTransformedToString ends the walk and inserts a string.
	OutcomeTransformedToString
)

// Outcome is reported once by an observer for each transformed item.
type Outcome struct {
	Kind   OutcomeKind
	String string
}

// Transformed reports that the item was handled and nothing is inserted.
func Transformed() Outcome {
	return Outcome{Kind: OutcomeTransformed}
}

// TransformedTo reports that the item was handled and s is inserted.
func TransformedTo(s string) Outcome {
	return Outcome{Kind: OutcomeTransformedToString, String: s}
}

// NoTransform reports that the item was not handled.
func NoTransform() Outcome {
	return Outcome{Kind: OutcomeNoTransform}
}

// Observer transforms pasted items.
type Observer interface {
	// AcceptableTypes returns the item types the observer transforms.
	AcceptableTypes() []string

	// CanPaste reports whether the item can likely be pasted. It should be
	// quick and lenient; Transform can still decline.
	CanPaste(item Item) bool

	// Transform transforms item and calls done exactly once, possibly from
	// another goroutine.
	Transform(item Item, done func(Outcome))
}

// CanAccept returns true if o accepts one of item's types.
func CanAccept(o Observer, item Item) bool {
	types := item.TypeIdentifiers()
	for _, t := range o.AcceptableTypes() {
		if slices.Contains(types, t) {
			return true
		}
	}
	return false
}

// DefaultTextObserver inserts the item's text. It never passes an item on.
type DefaultTextObserver struct{}

// AcceptableTypes implements Observer.
func (DefaultTextObserver) AcceptableTypes() []string {
	return []string{TypePlainText, TypeUTF8PlainText, TypeURL}
}

// CanPaste implements Observer.
func (DefaultTextObserver) CanPaste(Item) bool {
	return true
}

// Transform implements Observer.
func (o DefaultTextObserver) Transform(item Item, done func(Outcome)) {
	go func() {
		for _, t := range o.AcceptableTypes() {
			if !HasType(item, t) {
				continue
			}
			data, err := item.Load(context.Background(), t)
			if err != nil {
				logger.Warnf("paste: load %s: %v", t, err)
				done(Transformed())
				return
			}
			done(TransformedTo(string(data)))
			return
		}
		done(Transformed())
	}()
}

// JSONObserver inserts pasted JSON compacted or indented, optionally
// extracting a path or deleting paths first. Text that is not valid JSON is
// passed on.
type JSONObserver struct {
	indent bool
	path   string
	delete []string
}

// JSONOption configures a JSONObserver.
type JSONOption func(*JSONObserver)

// WithIndent inserts indented JSON instead of compact JSON.
func WithIndent(indent bool) JSONOption {
	return func(o *JSONObserver) {
		o.indent = indent
	}
}

// WithPath inserts only the value at path, in gjson syntax.
func WithPath(path string) JSONOption {
	return func(o *JSONObserver) {
		o.path = path
	}
}

// WithDeletedPaths removes the given paths, in sjson syntax, before
// inserting.
func WithDeletedPaths(paths ...string) JSONOption {
	return func(o *JSONObserver) {
		o.delete = append(o.delete, paths...)
	}
}

// NewJSONObserver creates a JSONObserver.
func NewJSONObserver(opts ...JSONOption) *JSONObserver {
	o := &JSONObserver{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AcceptableTypes implements Observer.
func (o *JSONObserver) AcceptableTypes() []string {
	return []string{TypeJSON, TypePlainText}
}

// CanPaste implements Observer.
func (o *JSONObserver) CanPaste(Item) bool {
	return true
}

// Transform implements Observer.
func (o *JSONObserver) Transform(item Item, done func(Outcome)) {
	go func() {
		data, ok := o.load(item)
		if !ok {
			done(NoTransform())
			return
		}
		s, ok := o.transform(data)
		if !ok {
			done(NoTransform())
			return
		}
		done(TransformedTo(s))
	}()
}

func (o *JSONObserver) load(item Item) ([]byte, bool) {
	for _, t := range o.AcceptableTypes() {
		if !HasType(item, t) {
			continue
		}
		data, err := item.Load(context.Background(), t)
		if err != nil {
			logger.Debugf("paste: load %s: %v", t, err)
			continue
		}
		return data, true
	}
	return nil, false
}

func (o *JSONObserver) transform(data []byte) (string, bool) {
	if !gjson.ValidBytes(data) {
		return "", false
	}

	for _, path := range o.delete {
		updated, err := sjson.DeleteBytes(data, path)
		if err != nil {
			logger.Warnf("paste: delete %q: %v", path, err)
			continue
		}
		data = updated
	}

	if o.path != "" {
		result := gjson.GetBytes(data, o.path)
		if !result.Exists() {
			return "", false
		}
		if result.Type == gjson.String {
			return result.String(), true
		}
		data = []byte(result.Raw)
	}

	if o.indent {
		return string(pretty.Pretty(data)), true
	}
	return string(pretty.Ugly(data)), true
}
