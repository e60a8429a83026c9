package text

import (
	"slices"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Length returns the number of UTF-16 code units in s.
func Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// FullRange returns the range covering all of s.
func FullRange(s string) Range {
	return Range{Length: Length(s)}
}

// IsBoundary reports whether offset is a valid range endpoint in s:
// within [0, Length(s)] and not inside a surrogate pair.
func IsBoundary(s string, offset int) bool {
	_, err := ByteOffset(s, offset)
	return err == nil
}

// IsRangeOnBoundaries reports whether both endpoints of r are valid in s.
func IsRangeOnBoundaries(s string, r Range) bool {
	return r.IsValid() && IsBoundary(s, r.LowerBound()) && IsBoundary(s, r.UpperBound())
}

// ByteOffset converts a UTF-16 offset into a byte offset in s.
func ByteOffset(s string, offset int) (int, error) {
	if offset < 0 {
		return 0, ErrOffsetOutOfRange
	}
	units := 0
	for i, r := range s {
		if units == offset {
			return i, nil
		}
		units += utf16.RuneLen(r)
		if units > offset {
			return 0, ErrSurrogateSplit
		}
	}
	if units == offset {
		return len(s), nil
	}
	return 0, ErrOffsetOutOfRange
}

// Offset converts a byte offset in s into a UTF-16 offset. Byte offsets
// inside a UTF-8 sequence are rounded down to the start of the rune.
func Offset(s string, byteOffset int) int {
	if byteOffset > len(s) {
		byteOffset = len(s)
	}
	units := 0
	for i := 0; i < byteOffset; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i+size > byteOffset {
			break
		}
		units += utf16.RuneLen(r)
		i += size
	}
	return units
}

// Offsets converts many byte offsets in s the way Offset does, in a single
// pass over s. The result maps each byte offset to its UTF-16 offset.
func Offsets(s string, byteOffsets []int) map[int]int {
	sorted := slices.Clone(byteOffsets)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	m := make(map[int]int, len(sorted))
	units, j := 0, 0
	for i := 0; i < len(s) && j < len(sorted); {
		r, size := utf8.DecodeRuneInString(s[i:])
		for j < len(sorted) && sorted[j] < i+size {
			m[sorted[j]] = units
			j++
		}
		units += utf16.RuneLen(r)
		i += size
	}
	for ; j < len(sorted); j++ {
		m[sorted[j]] = units
	}
	return m
}

// Substring returns the part of s covered by r.
func Substring(s string, r Range) (string, error) {
	start, end, err := byteBounds(s, r)
	if err != nil {
		return "", err
	}
	return s[start:end], nil
}

// Replace returns s with the part covered by r replaced by replacement.
func Replace(s string, r Range, replacement string) (string, error) {
	start, end, err := byteBounds(s, r)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(s) - (end - start) + len(replacement))
	b.WriteString(s[:start])
	b.WriteString(replacement)
	b.WriteString(s[end:])
	return b.String(), nil
}

func byteBounds(s string, r Range) (int, int, error) {
	if !r.IsValid() {
		return 0, 0, ErrRangeInvalid
	}
	start, err := ByteOffset(s, r.LowerBound())
	if err != nil {
		return 0, 0, err
	}
	end, err := ByteOffset(s, r.UpperBound())
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
