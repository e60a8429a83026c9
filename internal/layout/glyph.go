package layout

import "strings"

// GlyphID identifies a glyph in a font.
type GlyphID uint16

// GlyphProperty flags describe how the layout engine treats a glyph.
type GlyphProperty uint8

const (
	// PropertyNull is the property of ordinary glyphs.
	PropertyNull GlyphProperty = 0

	// PropertyControlCharacter marks a glyph the engine asks its delegate
	// about before laying it out.
	PropertyControlCharacter GlyphProperty = 1 << iota

	// PropertyElastic marks a glyph whose width can change, such as a space.
	PropertyElastic

	// PropertyNonBaseCharacter marks a combining glyph.
	PropertyNonBaseCharacter
)

// Has returns true if all flags in flag are set.
func (p GlyphProperty) Has(flag GlyphProperty) bool {
	return p&flag == flag
}

// String returns the names of the set flags.
func (p GlyphProperty) String() string {
	if p == PropertyNull {
		return "null"
	}
	var names []string
	if p.Has(PropertyControlCharacter) {
		names = append(names, "controlCharacter")
	}
	if p.Has(PropertyElastic) {
		names = append(names, "elastic")
	}
	if p.Has(PropertyNonBaseCharacter) {
		names = append(names, "nonBaseCharacter")
	}
	return strings.Join(names, "|")
}

// GlyphRun holds parallel glyph, property and character index slices of
// equal length.
type GlyphRun struct {
	Glyphs           []GlyphID
	Properties       []GlyphProperty
	CharacterIndexes []int
}

// NewGlyphRun copies the first n entries of the given slices into a run.
func NewGlyphRun(glyphs []GlyphID, props []GlyphProperty, charIndexes []int, n int) GlyphRun {
	return GlyphRun{
		Glyphs:           append([]GlyphID(nil), glyphs[:n]...),
		Properties:       append([]GlyphProperty(nil), props[:n]...),
		CharacterIndexes: append([]int(nil), charIndexes[:n]...),
	}
}

// Len returns the number of glyphs.
func (r GlyphRun) Len() int {
	return len(r.Glyphs)
}

// Insert inserts one glyph at index.
func (r *GlyphRun) Insert(index int, glyph GlyphID, prop GlyphProperty, charIndex int) {
	r.Glyphs = insertAt(r.Glyphs, index, glyph)
	r.Properties = insertAt(r.Properties, index, prop)
	r.CharacterIndexes = insertAt(r.CharacterIndexes, index, charIndex)
}

func insertAt[T any](s []T, index int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[index+1:], s[index:])
	s[index] = v
	return s
}

// ControlCharacterAction tells the engine how to lay out a control glyph.
type ControlCharacterAction int

// Control character actions.
const (
	ActionZeroAdvancement ControlCharacterAction = iota
	ActionWhitespace
	ActionHorizontalTab
	ActionLineBreak
	ActionParagraphBreak
	ActionContainerBreak
)

// String returns the action name.
func (a ControlCharacterAction) String() string {
	switch a {
	case ActionZeroAdvancement:
		return "zeroAdvancement"
	case ActionWhitespace:
		return "whitespace"
	case ActionHorizontalTab:
		return "horizontalTab"
	case ActionLineBreak:
		return "lineBreak"
	case ActionParagraphBreak:
		return "paragraphBreak"
	case ActionContainerBreak:
		return "containerBreak"
	default:
		return "unknown"
	}
}
