package layout

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/engine/text"
)

// Storage is the attributed text being laid out.
type Storage interface {
	Attribute(offset int, key attributed.Key) (any, bool)
}

var _ Storage = (*attributed.String)(nil)

// TextContainer is a region text is laid out into.
type TextContainer struct {
	// Size is the container size. A zero width means unlimited.
	Size fixed.Point26_6
}

// Engine is the glyph layout engine the Coordinator works with.
type Engine interface {
	// Storage returns the text being laid out, or nil.
	Storage() Storage

	// SetGlyphs replaces the glyphs generated for glyphRange.
	SetGlyphs(run GlyphRun, face font.Face, glyphRange text.Range)

	// Glyphs returns the properties and character indexes of the glyphs
	// in glyphRange.
	Glyphs(glyphRange text.Range) ([]GlyphProperty, []int)

	// GlyphRange returns the glyphs laid out in container.
	GlyphRange(container *TextContainer) text.Range

	// LineFragmentRect returns the rectangle of the line holding the glyph.
	LineFragmentRect(glyphIndex int) fixed.Rectangle26_6

	// LocationForGlyph returns the glyph's position inside its line
	// fragment.
	LocationForGlyph(glyphIndex int) fixed.Point26_6
}

// Delegate is called by an Engine during layout.
type Delegate interface {
	// ShouldGenerateGlyphs may rewrite the glyphs of glyphRange by calling
	// SetGlyphs. It returns the new glyph count, or 0 when it left the
	// glyphs alone.
	ShouldGenerateGlyphs(e Engine, glyphs []GlyphID, props []GlyphProperty, charIndexes []int, face font.Face, glyphRange text.Range) int

	// DidCompleteLayout is called when container is laid out.
	DidCompleteLayout(e Engine, container *TextContainer, atEnd bool)

	// ShouldUseControlCharacterAction returns the action for the control
	// glyph of charIndex, given the engine's default action.
	ShouldUseControlCharacterAction(e Engine, action ControlCharacterAction, charIndex int) ControlCharacterAction

	// BoundingBoxForControlGlyph returns the box of a control glyph laid out
	// as whitespace.
	BoundingBoxForControlGlyph(e Engine, glyphIndex int, container *TextContainer, proposed fixed.Rectangle26_6, glyphPosition fixed.Point26_6, charIndex int) fixed.Rectangle26_6
}

// Canvas receives attachment drawing.
type Canvas interface {
	// DrawImage draws img scaled into r.
	DrawImage(img image.Image, r fixed.Rectangle26_6)

	// StrokeRect strokes the outline of r. A non-empty dash alternates
	// drawn and skipped lengths.
	StrokeRect(r fixed.Rectangle26_6, c color.Color, width fixed.Int26_6, dash []fixed.Int26_6)
}

// Drawer is implemented by delegates that draw on top of the engine's
// glyphs.
type Drawer interface {
	DrawGlyphs(e Engine, glyphRange text.Range, origin fixed.Point26_6, canvas Canvas)
}

var _ Drawer = (*Coordinator)(nil)
