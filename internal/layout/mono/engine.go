package mono

import (
	"image/color"
	"unicode"
	"unicode/utf16"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/engine/text"
	"github.com/dshills/textkit/internal/layout"
)

// Canvas receives text and attachment drawing.
type Canvas interface {
	layout.Canvas

	// DrawGlyph draws r with its baseline origin at dot.
	DrawGlyph(face font.Face, dot fixed.Point26_6, r rune, c color.Color)
}

type lineFragment struct {
	rect   fixed.Rectangle26_6
	glyphs text.Range
}

// Engine lays out an attributed string into one text container.
type Engine struct {
	storage   *attributed.String
	container *layout.TextContainer
	face      font.Face
	delegate  layout.Delegate
	textColor color.Color

	glyphs    layout.GlyphRun
	pending   *layout.GlyphRun
	runes     map[int]rune
	positions []fixed.Int26_6
	lineOf    []int
	lines     []lineFragment
	valid     bool
}

var _ layout.Engine = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithFace sets the font face. The default is basicfont.Face7x13.
func WithFace(face font.Face) Option {
	return func(e *Engine) {
		if face != nil {
			e.face = face
		}
	}
}

// WithDelegate sets the layout delegate.
func WithDelegate(d layout.Delegate) Option {
	return func(e *Engine) {
		e.delegate = d
	}
}

// WithTextColor sets the color of glyphs without a style.
func WithTextColor(c color.Color) Option {
	return func(e *Engine) {
		e.textColor = c
	}
}

// New creates an engine laying out storage into container.
func New(storage *attributed.String, container *layout.TextContainer, opts ...Option) *Engine {
	e := &Engine{
		storage:   storage,
		container: container,
		face:      basicfont.Face7x13,
		textColor: color.Black,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Storage implements layout.Engine.
func (e *Engine) Storage() layout.Storage {
	if e.storage == nil {
		return nil
	}
	return e.storage
}

// SetStorage replaces the laid out text.
func (e *Engine) SetStorage(storage *attributed.String) {
	e.storage = storage
	e.Invalidate()
}

// Container returns the text container.
func (e *Engine) Container() *layout.TextContainer {
	return e.container
}

// Face returns the font face.
func (e *Engine) Face() font.Face {
	return e.face
}

// Invalidate discards the current layout.
func (e *Engine) Invalidate() {
	e.valid = false
}

// EnsureLayout lays the text out unless the current layout is valid.
func (e *Engine) EnsureLayout() {
	if e.valid {
		return
	}
	e.generateGlyphs()
	e.layoutLines()
	e.valid = true

	if e.delegate != nil {
		e.delegate.DidCompleteLayout(e, e.container, true)
	}
}

// NumberOfGlyphs returns the number of glyphs.
func (e *Engine) NumberOfGlyphs() int {
	e.EnsureLayout()
	return e.glyphs.Len()
}

// GlyphRun returns a copy of all glyphs.
func (e *Engine) GlyphRun() layout.GlyphRun {
	e.EnsureLayout()
	n := e.glyphs.Len()
	return layout.NewGlyphRun(e.glyphs.Glyphs, e.glyphs.Properties, e.glyphs.CharacterIndexes, n)
}

// LineFragments returns the glyph range of every line.
func (e *Engine) LineFragments() []text.Range {
	e.EnsureLayout()
	ranges := make([]text.Range, len(e.lines))
	for i, l := range e.lines {
		ranges[i] = l.glyphs
	}
	return ranges
}

// UsedHeight returns the height of the laid out lines.
func (e *Engine) UsedHeight() fixed.Int26_6 {
	e.EnsureLayout()
	if len(e.lines) == 0 {
		return 0
	}
	return e.lines[len(e.lines)-1].rect.Max.Y
}

// SetGlyphs implements layout.Engine.
func (e *Engine) SetGlyphs(run layout.GlyphRun, _ font.Face, glyphRange text.Range) {
	if run.Len() != glyphRange.Length {
		return
	}
	copied := layout.NewGlyphRun(run.Glyphs, run.Properties, run.CharacterIndexes, run.Len())
	e.pending = &copied
}

// Glyphs implements layout.Engine.
func (e *Engine) Glyphs(glyphRange text.Range) ([]layout.GlyphProperty, []int) {
	e.EnsureLayout()
	lo := max(glyphRange.LowerBound(), 0)
	hi := min(glyphRange.UpperBound(), e.glyphs.Len())
	if lo >= hi {
		return nil, nil
	}
	props := append([]layout.GlyphProperty(nil), e.glyphs.Properties[lo:hi]...)
	charIndexes := append([]int(nil), e.glyphs.CharacterIndexes[lo:hi]...)
	return props, charIndexes
}

// GlyphRange implements layout.Engine.
func (e *Engine) GlyphRange(container *layout.TextContainer) text.Range {
	if container != e.container {
		return text.NewRange(0, 0)
	}
	return text.NewRange(0, e.glyphs.Len())
}

// LineFragmentRect implements layout.Engine.
func (e *Engine) LineFragmentRect(glyphIndex int) fixed.Rectangle26_6 {
	if glyphIndex < 0 || glyphIndex >= len(e.lineOf) {
		return fixed.Rectangle26_6{}
	}
	return e.lines[e.lineOf[glyphIndex]].rect
}

// LocationForGlyph implements layout.Engine. Y is the baseline.
func (e *Engine) LocationForGlyph(glyphIndex int) fixed.Point26_6 {
	if glyphIndex < 0 || glyphIndex >= len(e.positions) {
		return fixed.Point26_6{}
	}
	return fixed.Point26_6{X: e.positions[glyphIndex], Y: e.face.Metrics().Ascent}
}

// Draw draws the laid out text with the container origin at origin, then
// lets the delegate draw on top.
func (e *Engine) Draw(origin fixed.Point26_6, canvas Canvas) {
	e.EnsureLayout()

	ascent := e.face.Metrics().Ascent
	for i, prop := range e.glyphs.Properties {
		if prop.Has(layout.PropertyControlCharacter) {
			continue
		}
		charIndex := e.glyphs.CharacterIndexes[i]
		r, ok := e.runes[charIndex]
		if !ok || unicode.IsSpace(r) {
			continue
		}
		line := e.lines[e.lineOf[i]].rect
		dot := fixed.Point26_6{
			X: origin.X + line.Min.X + e.positions[i],
			Y: origin.Y + line.Min.Y + ascent,
		}
		canvas.DrawGlyph(e.face, dot, r, e.colorAt(charIndex))
	}

	if drawer, ok := e.delegate.(layout.Drawer); ok {
		drawer.DrawGlyphs(e, text.NewRange(0, e.glyphs.Len()), origin, canvas)
	}
}

func (e *Engine) colorAt(charIndex int) color.Color {
	if e.storage == nil {
		return e.textColor
	}
	v, ok := e.storage.Attribute(charIndex, attributed.StyleKey)
	if !ok {
		return e.textColor
	}
	style, ok := v.(tcell.Style)
	if !ok {
		return e.textColor
	}
	fg, _, _ := style.Decompose()
	if fg == tcell.ColorDefault || !fg.Valid() {
		return e.textColor
	}
	r, g, b := fg.RGB()
	if r < 0 {
		return e.textColor
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

// generateGlyphs builds one glyph per rune, paragraph by paragraph, and
// offers each paragraph to the delegate.
func (e *Engine) generateGlyphs() {
	e.glyphs = layout.GlyphRun{}
	e.runes = make(map[int]rune)
	if e.storage == nil {
		return
	}

	var paragraph layout.GlyphRun
	flush := func() {
		if paragraph.Len() == 0 {
			return
		}
		e.appendParagraph(paragraph)
		paragraph = layout.GlyphRun{}
	}

	offset := 0
	for _, r := range e.storage.Text() {
		e.runes[offset] = r
		paragraph.Glyphs = append(paragraph.Glyphs, glyphID(r))
		paragraph.Properties = append(paragraph.Properties, property(r))
		paragraph.CharacterIndexes = append(paragraph.CharacterIndexes, offset)
		offset += utf16.RuneLen(r)
		if r == '\n' {
			flush()
		}
	}
	flush()
}

func (e *Engine) appendParagraph(p layout.GlyphRun) {
	glyphRange := text.NewRange(e.glyphs.Len(), p.Len())
	if e.delegate != nil {
		e.pending = nil
		n := e.delegate.ShouldGenerateGlyphs(e, p.Glyphs, p.Properties, p.CharacterIndexes, e.face, glyphRange)
		if n > 0 && e.pending != nil && e.pending.Len() == n {
			p = *e.pending
		}
		e.pending = nil
	}
	e.glyphs.Glyphs = append(e.glyphs.Glyphs, p.Glyphs...)
	e.glyphs.Properties = append(e.glyphs.Properties, p.Properties...)
	e.glyphs.CharacterIndexes = append(e.glyphs.CharacterIndexes, p.CharacterIndexes...)
}

func glyphID(r rune) layout.GlyphID {
	if r > 0xffff {
		return layout.GlyphID(unicode.ReplacementChar)
	}
	return layout.GlyphID(r)
}

func property(r rune) layout.GlyphProperty {
	switch {
	case r == '\n':
		return layout.PropertyControlCharacter
	case unicode.IsSpace(r):
		return layout.PropertyElastic
	case unicode.Is(unicode.Mn, r):
		return layout.PropertyNonBaseCharacter
	default:
		return layout.PropertyNull
	}
}
