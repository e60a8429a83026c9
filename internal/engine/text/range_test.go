package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeBounds(t *testing.T) {
	r := NewRange(2, 3)

	assert.Equal(t, 2, r.LowerBound())
	assert.Equal(t, 5, r.UpperBound())
	assert.Equal(t, "{2, 3}", r.String())
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(5))
	assert.Equal(t, NewRange(4, 3), r.Shift(2))
	assert.Equal(t, r, RangeFromBounds(2, 5))
}

func TestRangeNull(t *testing.T) {
	assert.True(t, Null.IsNull())
	assert.False(t, Null.IsValid())
	assert.Equal(t, "{NotFound, 0}", Null.String())
	assert.False(t, NewRange(0, 10).ContainsRange(Null))
}

func TestRangeContainsRange(t *testing.T) {
	full := NewRange(0, 4)

	assert.True(t, full.ContainsRange(NewRange(0, 0)))
	assert.True(t, full.ContainsRange(NewRange(4, 0)))
	assert.True(t, full.ContainsRange(NewRange(1, 3)))
	assert.False(t, full.ContainsRange(NewRange(5, 0)))
	assert.False(t, full.ContainsRange(NewRange(3, 2)))
	assert.False(t, full.ContainsRange(NewRange(-1, 1)))
}

func TestMovedByReplacingSelection(t *testing.T) {
	// |0|1|2|3|4|5|6|
	//     |-----|      self = {2, 3}
	self := NewRange(2, 3)

	tests := []struct {
		name      string
		replaced  Range
		newLength int
		want      Range
	}{
		{"before, shrink", NewRange(0, 1), 0, NewRange(1, 3)},
		{"before, same length", NewRange(0, 1), 1, NewRange(2, 3)},
		{"before, grow", NewRange(0, 1), 2, NewRange(3, 3)},
		{"insert before", NewRange(1, 0), 1, NewRange(3, 3)},
		{"touching lower bound, shrink", NewRange(1, 1), 0, NewRange(1, 3)},
		{"touching lower bound, grow", NewRange(1, 1), 2, NewRange(3, 3)},
		{"insert at lower bound", NewRange(2, 0), 1, NewRange(3, 3)},
		{"empty edit at lower bound", NewRange(2, 0), 0, NewRange(2, 3)},
		{"over lower bound", NewRange(1, 2), 1, NewRange(1, 3)},
		{"over lower bound, grow", NewRange(1, 2), 3, NewRange(1, 5)},
		{"inside at lower bound, delete", NewRange(2, 1), 0, NewRange(2, 2)},
		{"inside at lower bound, grow", NewRange(2, 1), 2, NewRange(2, 4)},
		{"insert inside", NewRange(3, 0), 1, NewRange(2, 4)},
		{"inside, delete", NewRange(3, 1), 0, NewRange(2, 2)},
		{"inside, grow", NewRange(3, 1), 2, NewRange(2, 4)},
		{"insert inside at upper", NewRange(4, 0), 1, NewRange(2, 4)},
		{"inside at upper bound, delete", NewRange(4, 1), 0, NewRange(2, 2)},
		{"over upper bound, shrink", NewRange(4, 2), 1, NewRange(2, 3)},
		{"over upper bound, grow", NewRange(4, 2), 3, NewRange(2, 5)},
		{"insert at upper bound", NewRange(5, 0), 1, NewRange(2, 3)},
		{"touching upper bound", NewRange(5, 1), 2, NewRange(2, 3)},
		{"after", NewRange(6, 1), 0, NewRange(2, 3)},
		{"edit contains self", NewRange(1, 5), 2, NewRange(1, 2)},
		{"edit contains self, delete", NewRange(1, 5), 0, NewRange(1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, self.MovedByReplacing(tt.replaced, tt.newLength))
		})
	}
}

func TestMovedByReplacingCaret(t *testing.T) {
	// |0|1|2|3|4|5|6|
	//   |=======|      replaced = {1, 4}, lo = 1, hi = 5, mid = 3
	replaced := NewRange(1, 4)

	tests := []struct {
		caret     int
		newLength int
		want      int
	}{
		{0, 0, 0}, {0, 4, 0}, {0, 8, 0},
		{1, 0, 1}, {1, 4, 1}, {1, 8, 1},
		{2, 0, 1}, {2, 4, 1}, {2, 8, 1},
		{3, 0, 1}, {3, 4, 5}, {3, 8, 9},
		{4, 0, 1}, {4, 4, 5}, {4, 8, 9},
		{5, 0, 1}, {5, 4, 5}, {5, 8, 9},
		{6, 0, 2}, {6, 4, 6}, {6, 8, 10},
	}

	for _, tt := range tests {
		got := NewRange(tt.caret, 0).MovedByReplacing(replaced, tt.newLength)
		assert.Equal(t, NewRange(tt.want, 0), got, "caret %d, new length %d", tt.caret, tt.newLength)
	}
}

func TestMovedByReplacingInvariants(t *testing.T) {
	for loc := 0; loc <= 6; loc++ {
		for length := 0; length <= 4; length++ {
			self := NewRange(loc, length)
			for eLoc := 0; eLoc <= 8; eLoc++ {
				for eLen := 0; eLen <= 4; eLen++ {
					edit := NewRange(eLoc, eLen)
					for n := 0; n <= 5; n++ {
						got := self.MovedByReplacing(edit, n)
						assert.GreaterOrEqual(t, got.Length, 0)
						if edit.UpperBound() <= self.LowerBound() {
							assert.Equal(t, self.Length, got.Length)
						}
						if self.UpperBound() <= edit.LowerBound() && edit.UpperBound() > self.LowerBound() {
							assert.Equal(t, self, got)
						}
					}
				}
			}
		}
	}
}
