package text

import (
	"fmt"
	"math"
)

// NotFound is the location of the Null range.
const NotFound = math.MaxInt

// Null represents an absent range.
var Null = Range{Location: NotFound}

// Range is a span of UTF-16 code units: [Location, Location+Length).
type Range struct {
	Location int
	Length   int
}

// NewRange creates a new Range from a location and a length.
func NewRange(location, length int) Range {
	return Range{Location: location, Length: length}
}

// RangeFromBounds creates a Range covering [lower, upper).
func RangeFromBounds(lower, upper int) Range {
	return Range{Location: lower, Length: upper - lower}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	if r.IsNull() {
		return "{NotFound, 0}"
	}
	return fmt.Sprintf("{%d, %d}", r.Location, r.Length)
}

// LowerBound returns the inclusive start of the range.
func (r Range) LowerBound() int {
	return r.Location
}

// UpperBound returns the exclusive end of the range.
func (r Range) UpperBound() int {
	return r.Location + r.Length
}

// IsNull returns true if the range is the absent sentinel.
func (r Range) IsNull() bool {
	return r.Location == NotFound
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Length == 0
}

// IsValid returns true if the range has a non-negative location and length
// and is not the Null range.
func (r Range) IsValid() bool {
	return !r.IsNull() && r.Location >= 0 && r.Length >= 0
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Location && offset < r.UpperBound()
}

// ContainsRange returns true if the given range is entirely within this range.
// A zero-length range at either bound is contained.
func (r Range) ContainsRange(other Range) bool {
	if !r.IsValid() || !other.IsValid() {
		return false
	}
	return r.Location <= other.Location && other.UpperBound() <= r.UpperBound()
}

// Shift returns a new range moved by delta, keeping its length.
func (r Range) Shift(delta int) Range {
	return Range{Location: r.Location + delta, Length: r.Length}
}

// MovedByReplacing returns where r lands after replaced has been replaced
// by text of newLength code units.
//
// An edit entirely before r shifts it; an edit entirely after r leaves it
// alone. When the two overlap or touch, a selection grows or shrinks to
// bracket the whole affected span, and a caret snaps to the lower bound of
// the span if it was left of the span's midpoint, otherwise to its new
// upper bound.
func (r Range) MovedByReplacing(replaced Range, newLength int) Range {
	delta := newLength - replaced.Length

	if replaced.UpperBound() <= r.LowerBound() {
		return Range{Location: r.Location + delta, Length: r.Length}
	}
	if r.UpperBound() <= replaced.LowerBound() {
		return r
	}

	lo := min(r.LowerBound(), replaced.LowerBound())
	hi := max(r.UpperBound(), replaced.UpperBound())

	if r.Length == 0 {
		mid := lo + (hi-lo)/2
		if r.Location < mid {
			return Range{Location: lo}
		}
		return Range{Location: hi + delta}
	}

	return Range{Location: lo, Length: hi - lo + delta}
}
