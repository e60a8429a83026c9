package attributed

import (
	"fmt"
	"iter"
	"slices"

	"github.com/dshills/textkit/internal/engine/text"
)

type run struct {
	length int
	attrs  Attributes
}

// String is text with attributes.
type String struct {
	text   string
	length int
	runs   []run
}

// New creates a String with attrs applied to the whole text.
func New(s string, attrs Attributes) *String {
	str := &String{}
	str.Reset(s, attrs)
	return str
}

// Reset replaces the whole content with s carrying attrs.
func (s *String) Reset(str string, attrs Attributes) {
	s.text = str
	s.length = text.Length(str)
	s.runs = s.runs[:0]
	if s.length > 0 {
		s.runs = append(s.runs, run{length: s.length, attrs: attrs.Clone()})
	}
}

// Text returns the plain text.
func (s *String) Text() string {
	return s.text
}

// Length returns the length in UTF-16 code units.
func (s *String) Length() int {
	return s.length
}

// Copy returns an independent copy of s.
func (s *String) Copy() *String {
	return &String{
		text:   s.text,
		length: s.length,
		runs:   slices.Clone(s.runs),
	}
}

// Equal reports whether s and other have the same text and attributes.
func (s *String) Equal(other *String) bool {
	if s.text != other.text || len(s.runs) != len(other.runs) {
		return false
	}
	for i := range s.runs {
		if s.runs[i].length != other.runs[i].length || !s.runs[i].attrs.Equal(other.runs[i].attrs) {
			return false
		}
	}
	return true
}

// AttributesAt returns the attributes at offset and the range of the run
// holding them.
func (s *String) AttributesAt(offset int) (Attributes, text.Range, error) {
	if offset < 0 || offset >= s.length {
		return nil, text.Null, fmt.Errorf("%w: offset %d, length %d", ErrRangeOutOfBounds, offset, s.length)
	}
	pos := 0
	for _, rn := range s.runs {
		if offset < pos+rn.length {
			return rn.attrs.Clone(), text.NewRange(pos, rn.length), nil
		}
		pos += rn.length
	}
	return nil, text.Null, fmt.Errorf("%w: offset %d", ErrRangeOutOfBounds, offset)
}

// Attribute returns the value of key at offset.
func (s *String) Attribute(offset int, key Key) (any, bool) {
	if offset < 0 || offset >= s.length {
		return nil, false
	}
	pos := 0
	for _, rn := range s.runs {
		if offset < pos+rn.length {
			v, ok := rn.attrs[key]
			return v, ok
		}
		pos += rn.length
	}
	return nil, false
}

// Runs iterates over all runs with their ranges.
func (s *String) Runs() iter.Seq2[text.Range, Attributes] {
	return s.RunsIn(text.NewRange(0, s.length))
}

// RunsIn iterates over the runs overlapping r, clipped to r.
func (s *String) RunsIn(r text.Range) iter.Seq2[text.Range, Attributes] {
	return func(yield func(text.Range, Attributes) bool) {
		if !r.IsValid() {
			return
		}
		pos := 0
		for _, rn := range s.runs {
			lo := max(pos, r.LowerBound())
			hi := min(pos+rn.length, r.UpperBound())
			pos += rn.length
			if lo >= hi {
				if pos >= r.UpperBound() {
					return
				}
				continue
			}
			if !yield(text.RangeFromBounds(lo, hi), rn.attrs) {
				return
			}
		}
	}
}

// SetAttributes replaces the attributes over r with attrs.
func (s *String) SetAttributes(r text.Range, attrs Attributes) error {
	return s.update(r, func(Attributes) Attributes {
		return attrs.Clone()
	})
}

// AddAttributes adds attrs to the attributes over r, overwriting existing
// values for the same keys.
func (s *String) AddAttributes(r text.Range, attrs Attributes) error {
	return s.update(r, func(current Attributes) Attributes {
		updated := current.Clone()
		for k, v := range attrs {
			updated[k] = v
		}
		return updated
	})
}

// RemoveAttribute removes key from the attributes over r.
func (s *String) RemoveAttribute(r text.Range, key Key) error {
	return s.update(r, func(current Attributes) Attributes {
		if _, ok := current[key]; !ok {
			return current
		}
		updated := current.Clone()
		delete(updated, key)
		return updated
	})
}

// Replace replaces the text over r with str. The new text carries attrs,
// or when attrs is nil, the attributes of the character before r (the
// first character when r starts at 0).
func (s *String) Replace(r text.Range, str string, attrs Attributes) error {
	if err := s.check(r); err != nil {
		return err
	}
	if attrs == nil {
		attrs = s.inheritedAttributes(r.LowerBound())
	}

	updated, err := text.Replace(s.text, r, str)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRangeOutOfBounds, err)
	}

	start := s.split(r.LowerBound())
	end := s.split(r.UpperBound())

	runs := make([]run, 0, len(s.runs)-(end-start)+1)
	runs = append(runs, s.runs[:start]...)
	if n := text.Length(str); n > 0 {
		runs = append(runs, run{length: n, attrs: attrs.Clone()})
	}
	runs = append(runs, s.runs[end:]...)

	s.text = updated
	s.length = text.Length(updated)
	s.runs = runs
	s.normalize()
	return nil
}

// SetAttributesFrom copies all attributes from other, which must have the
// same text.
func (s *String) SetAttributesFrom(other *String) error {
	if s.text != other.text {
		return ErrCharactersEdited
	}
	s.runs = slices.Clone(other.runs)
	return nil
}

func (s *String) inheritedAttributes(offset int) Attributes {
	if offset > 0 {
		offset--
	}
	if v, _, err := s.AttributesAt(offset); err == nil {
		return v
	}
	return Attributes{}
}

func (s *String) check(r text.Range) error {
	if !text.IsRangeOnBoundaries(s.text, r) {
		return fmt.Errorf("%w: %s, length %d", ErrRangeOutOfBounds, r, s.length)
	}
	return nil
}

func (s *String) update(r text.Range, fn func(Attributes) Attributes) error {
	if err := s.check(r); err != nil {
		return err
	}
	if r.IsEmpty() {
		return nil
	}
	start := s.split(r.LowerBound())
	end := s.split(r.UpperBound())
	for i := start; i < end; i++ {
		s.runs[i].attrs = fn(s.runs[i].attrs)
	}
	s.normalize()
	return nil
}

// split ensures a run boundary at offset and returns the index of the run
// starting there, or len(s.runs) at the end of the text.
func (s *String) split(offset int) int {
	pos := 0
	for i, rn := range s.runs {
		if pos == offset {
			return i
		}
		if offset < pos+rn.length {
			head := run{length: offset - pos, attrs: rn.attrs}
			tail := run{length: pos + rn.length - offset, attrs: rn.attrs}
			s.runs[i] = head
			s.runs = slices.Insert(s.runs, i+1, tail)
			return i + 1
		}
		pos += rn.length
	}
	return len(s.runs)
}

func (s *String) normalize() {
	merged := s.runs[:0]
	for _, rn := range s.runs {
		if rn.length == 0 {
			continue
		}
		if n := len(merged); n > 0 && merged[n-1].attrs.Equal(rn.attrs) {
			merged[n-1].length += rn.length
			continue
		}
		merged = append(merged, rn)
	}
	s.runs = merged
}
