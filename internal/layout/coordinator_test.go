package layout

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/engine/text"
)

type fakeEngine struct {
	storage *attributed.String

	setRuns   []GlyphRun
	setRanges []text.Range

	props    []GlyphProperty
	chars    []int
	lineRect fixed.Rectangle26_6
}

func (e *fakeEngine) Storage() Storage {
	if e.storage == nil {
		return nil
	}
	return e.storage
}

func (e *fakeEngine) SetGlyphs(run GlyphRun, _ font.Face, glyphRange text.Range) {
	e.setRuns = append(e.setRuns, run)
	e.setRanges = append(e.setRanges, glyphRange)
}

func (e *fakeEngine) Glyphs(r text.Range) ([]GlyphProperty, []int) {
	return e.props[r.LowerBound():r.UpperBound()], e.chars[r.LowerBound():r.UpperBound()]
}

func (e *fakeEngine) GlyphRange(*TextContainer) text.Range {
	return text.NewRange(0, len(e.props))
}

func (e *fakeEngine) LineFragmentRect(int) fixed.Rectangle26_6 {
	return e.lineRect
}

func (e *fakeEngine) LocationForGlyph(glyphIndex int) fixed.Point26_6 {
	return fixed.P(7*glyphIndex, 11)
}

type drawCall struct {
	kind string
	rect fixed.Rectangle26_6
}

type fakeCanvas struct {
	calls []drawCall
}

func (c *fakeCanvas) DrawImage(_ image.Image, r fixed.Rectangle26_6) {
	c.calls = append(c.calls, drawCall{kind: "image", rect: r})
}

func (c *fakeCanvas) StrokeRect(r fixed.Rectangle26_6, _ color.Color, _ fixed.Int26_6, dash []fixed.Int26_6) {
	c.calls = append(c.calls, drawCall{kind: "stroke", rect: r})
}

func rect(x0, y0, x1, y1 int) fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{Min: fixed.P(x0, y0), Max: fixed.P(x1, y1)}
}

func storageWith(t *testing.T, s string, anchors map[int]attributed.Attributes) *attributed.String {
	t.Helper()
	str := attributed.New(s, nil)
	for offset, attrs := range anchors {
		require.NoError(t, str.AddAttributes(text.NewRange(offset, 1), attrs))
	}
	return str
}

func imageAttachment() *SuffixedAttachment {
	return NewImageAttachment(fixed.P(10, 20), image.NewRGBA(image.Rect(0, 0, 4, 4)))
}

func TestShouldGenerateGlyphs_InsertsControlGlyph(t *testing.T) {
	e := &fakeEngine{storage: storageWith(t, "ab", map[int]attributed.Attributes{
		0: imageAttachment().Attributes(),
	})}
	c := NewCoordinator()

	n := c.ShouldGenerateGlyphs(e, []GlyphID{'a', 'b'}, []GlyphProperty{0, 0}, []int{0, 1}, nil, text.NewRange(5, 2))

	assert.Equal(t, 3, n)
	require.Len(t, e.setRuns, 1)
	assert.Equal(t, []GlyphID{'a', 0, 'b'}, e.setRuns[0].Glyphs)
	assert.Equal(t, []GlyphProperty{PropertyNull, PropertyControlCharacter, PropertyNull}, e.setRuns[0].Properties)
	assert.Equal(t, []int{0, 0, 1}, e.setRuns[0].CharacterIndexes)
	assert.Equal(t, text.NewRange(5, 3), e.setRanges[0])
	assert.Equal(t, PhaseGlyphsGenerated, c.Phase())
	assert.Len(t, c.CachedRuns(), 1)
}

func TestShouldGenerateGlyphs_MultipleInsertions(t *testing.T) {
	attachment := imageAttachment().Attributes()
	e := &fakeEngine{storage: storageWith(t, "abc", map[int]attributed.Attributes{
		0: attachment,
		2: attachment,
	})}
	c := NewCoordinator()

	n := c.ShouldGenerateGlyphs(e, []GlyphID{'a', 'b', 'c'}, []GlyphProperty{0, 0, 0}, []int{0, 1, 2}, nil, text.NewRange(0, 3))

	assert.Equal(t, 5, n)
	require.Len(t, e.setRuns, 1)
	assert.Equal(t, []GlyphID{'a', 0, 'b', 'c', 0}, e.setRuns[0].Glyphs)
	assert.Equal(t, []int{0, 0, 1, 2, 2}, e.setRuns[0].CharacterIndexes)
}

func TestShouldGenerateGlyphs_NoAttachments(t *testing.T) {
	e := &fakeEngine{storage: storageWith(t, "ab", nil)}
	c := NewCoordinator()

	n := c.ShouldGenerateGlyphs(e, []GlyphID{'a', 'b'}, []GlyphProperty{0, 0}, []int{0, 1}, nil, text.NewRange(0, 2))

	assert.Equal(t, 0, n)
	assert.Empty(t, e.setRuns)
	assert.Empty(t, c.CachedRuns())
}

func TestShouldGenerateGlyphs_NativeAttachmentWins(t *testing.T) {
	attrs := imageAttachment().Attributes()
	attrs[AttachmentKey] = "native"
	e := &fakeEngine{storage: storageWith(t, "ab", map[int]attributed.Attributes{0: attrs})}
	c := NewCoordinator()

	n := c.ShouldGenerateGlyphs(e, []GlyphID{'a', 'b'}, []GlyphProperty{0, 0}, []int{0, 1}, nil, text.NewRange(0, 2))

	assert.Equal(t, 0, n)
	assert.Empty(t, e.setRuns)
}

func TestShouldGenerateGlyphs_NoStorage(t *testing.T) {
	c := NewCoordinator()
	n := c.ShouldGenerateGlyphs(&fakeEngine{}, []GlyphID{'a'}, []GlyphProperty{0}, []int{0}, nil, text.NewRange(0, 1))
	assert.Equal(t, 0, n)
}

func TestShouldUseControlCharacterAction(t *testing.T) {
	e := &fakeEngine{storage: storageWith(t, "a\n", map[int]attributed.Attributes{
		0: imageAttachment().Attributes(),
	})}
	c := NewCoordinator()

	assert.Equal(t, ActionWhitespace, c.ShouldUseControlCharacterAction(e, ActionZeroAdvancement, 0))
	assert.Equal(t, ActionParagraphBreak, c.ShouldUseControlCharacterAction(e, ActionParagraphBreak, 1))
}

func TestBoundingBoxForControlGlyph(t *testing.T) {
	e := &fakeEngine{storage: storageWith(t, "ab", map[int]attributed.Attributes{
		0: imageAttachment().Attributes(),
	})}
	c := NewCoordinator()

	box := c.BoundingBoxForControlGlyph(e, 1, nil, rect(0, 0, 100, 13), fixed.P(7, 0), 0)
	assert.Equal(t, rect(7, 0, 17, 20), box)

	missing := c.BoundingBoxForControlGlyph(e, 2, nil, rect(0, 0, 100, 13), fixed.P(14, 0), 1)
	assert.Equal(t, fixed.Rectangle26_6{}, missing)
}

func TestDrawGlyphs_DrawsImageAttachments(t *testing.T) {
	var frames []fixed.Rectangle26_6
	view := NewViewAttachment(fixed.P(5, 5), "view", func(_ any, frame fixed.Rectangle26_6) {
		frames = append(frames, frame)
	})
	e := &fakeEngine{
		storage: storageWith(t, "ab", map[int]attributed.Attributes{
			0: imageAttachment().Attributes(),
			1: view.Attributes(),
		}),
		props:    []GlyphProperty{0, PropertyControlCharacter, 0, PropertyControlCharacter},
		chars:    []int{0, 0, 1, 1},
		lineRect: rect(0, 13, 100, 26),
	}
	canvas := &fakeCanvas{}

	c := NewCoordinator()
	c.DrawGlyphs(e, text.NewRange(0, 4), fixed.P(1, 2), canvas)

	require.Len(t, canvas.calls, 1)
	assert.Equal(t, drawCall{kind: "image", rect: rect(8, 15, 18, 35)}, canvas.calls[0])
	assert.Empty(t, frames)
}

func TestDrawGlyphs_DebugOutline(t *testing.T) {
	e := &fakeEngine{
		storage: storageWith(t, "a", map[int]attributed.Attributes{
			0: imageAttachment().Attributes(),
		}),
		props: []GlyphProperty{0, PropertyControlCharacter},
		chars: []int{0, 0},
	}
	canvas := &fakeCanvas{}

	c := NewCoordinator(WithDebugOutline(true))
	assert.True(t, c.DebugOutline())
	c.DrawGlyphs(e, text.NewRange(0, 2), fixed.P(0, 0), canvas)

	require.Len(t, canvas.calls, 2)
	assert.Equal(t, "stroke", canvas.calls[0].kind)
	assert.Equal(t, "image", canvas.calls[1].kind)
	assert.Equal(t, canvas.calls[0].rect, canvas.calls[1].rect)

	canvas.calls = nil
	c.SetDebugOutline(false)
	c.DrawGlyphs(e, text.NewRange(0, 2), fixed.P(0, 0), canvas)
	require.Len(t, canvas.calls, 1)
}

func TestDidCompleteLayout_PositionsViews(t *testing.T) {
	type placement struct {
		view  any
		frame fixed.Rectangle26_6
	}
	var placements []placement
	view := NewViewAttachment(fixed.P(5, 6), "badge", func(v any, frame fixed.Rectangle26_6) {
		placements = append(placements, placement{v, frame})
	})
	e := &fakeEngine{
		storage: storageWith(t, "ab", map[int]attributed.Attributes{
			0: imageAttachment().Attributes(),
			1: view.Attributes(),
		}),
		props:    []GlyphProperty{0, PropertyControlCharacter, 0, PropertyControlCharacter},
		chars:    []int{0, 0, 1, 1},
		lineRect: rect(0, 13, 100, 26),
	}

	c := NewCoordinator()
	c.ShouldGenerateGlyphs(e, []GlyphID{'a', 'b'}, []GlyphProperty{0, 0}, []int{0, 1}, nil, text.NewRange(0, 2))
	require.NotEmpty(t, c.CachedRuns())

	c.DidCompleteLayout(e, &TextContainer{}, true)

	assert.Empty(t, c.CachedRuns())
	assert.Equal(t, PhaseLayoutComplete, c.Phase())
	require.Len(t, placements, 1)
	assert.Equal(t, "badge", placements[0].view)
	assert.Equal(t, rect(21, 13, 26, 19), placements[0].frame)
}

func TestDidCompleteLayout_NilContainer(t *testing.T) {
	e := &fakeEngine{storage: storageWith(t, "a", nil)}
	c := NewCoordinator()
	c.DidCompleteLayout(e, nil, false)
	assert.Equal(t, PhaseLayoutComplete, c.Phase())
}

func TestGlyphRun_Insert(t *testing.T) {
	run := NewGlyphRun([]GlyphID{1, 2, 3}, []GlyphProperty{0, 0, 0}, []int{0, 1, 2}, 2)
	assert.Equal(t, 2, run.Len())

	run.Insert(1, 9, PropertyControlCharacter, 0)
	assert.Equal(t, []GlyphID{1, 9, 2}, run.Glyphs)
	assert.Equal(t, []GlyphProperty{0, PropertyControlCharacter, 0}, run.Properties)
	assert.Equal(t, []int{0, 0, 1}, run.CharacterIndexes)
}

func TestGlyphProperty_String(t *testing.T) {
	assert.Equal(t, "null", PropertyNull.String())
	assert.Equal(t, "controlCharacter", PropertyControlCharacter.String())
	assert.Equal(t, "controlCharacter|elastic", (PropertyControlCharacter | PropertyElastic).String())
	assert.Equal(t, "whitespace", ActionWhitespace.String())
	assert.Equal(t, "layoutComplete", PhaseLayoutComplete.String())
}

func TestSuffixedAttachment_String(t *testing.T) {
	assert.Contains(t, imageAttachment().String(), "attachment = image")
	view := NewViewAttachment(fixed.P(1, 1), nil, nil)
	assert.Contains(t, view.String(), "attachment = view")
}
