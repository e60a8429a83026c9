package attributed

import (
	"reflect"
	"slices"
)

// Key names an attribute.
type Key string

// StyleKey holds the terminal style of a range, a tcell.Style.
const StyleKey Key = "style"

// Attributes maps attribute keys to values.
type Attributes map[Key]any

// Clone returns a shallow copy of a.
func (a Attributes) Clone() Attributes {
	c := make(Attributes, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Keys returns the keys of a in sorted order.
func (a Attributes) Keys() []Key {
	keys := make([]Key, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Equal reports whether a and b hold the same keys with equal values.
func (a Attributes) Equal(b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !valueEqual(va, vb) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	// Value.Comparable also checks the dynamic values of interface fields.
	if reflect.ValueOf(a).Comparable() && reflect.ValueOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
