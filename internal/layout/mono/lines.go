package mono

import (
	"unicode"
	"unicode/utf16"

	"github.com/rivo/uniseg"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/textkit/internal/engine/text"
	"github.com/dshills/textkit/internal/layout"
)

// breakOpportunities returns the UTF-16 offsets after which a line may be
// broken.
func breakOpportunities(s string) map[int]bool {
	breaks := make(map[int]bool)
	offset := 0
	state := -1
	var segment string
	for len(s) > 0 {
		segment, s, _, state = uniseg.FirstLineSegmentInString(s, state)
		for _, r := range segment {
			offset += utf16.RuneLen(r)
		}
		breaks[offset] = true
	}
	return breaks
}

// layoutLines places glyphs on lines, wrapping greedily at break
// opportunities when the container has a width.
func (e *Engine) layoutLines() {
	n := e.glyphs.Len()
	e.positions = make([]fixed.Int26_6, n)
	e.lineOf = make([]int, n)
	e.lines = nil
	if n == 0 {
		return
	}

	metrics := e.face.Metrics()
	var width fixed.Int26_6
	if e.container != nil {
		width = e.container.Size.X
	}
	breaks := breakOpportunities(e.storage.Text())

	advances, heights, lineEnds := e.measure(width, metrics.Height)

	var (
		y         fixed.Int26_6
		x         fixed.Int26_6
		lineStart int
		lineH     = metrics.Height
	)
	flush := func(end int) {
		lineWidth := width
		if lineWidth == 0 {
			lineWidth = x
		}
		e.lines = append(e.lines, lineFragment{
			rect: fixed.Rectangle26_6{
				Min: fixed.Point26_6{Y: y},
				Max: fixed.Point26_6{X: lineWidth, Y: y + lineH},
			},
			glyphs: text.RangeFromBounds(lineStart, end),
		})
		y += lineH
		x = 0
		lineH = metrics.Height
		lineStart = end
	}

	for start := 0; start < n; {
		end := e.segmentEnd(start, breaks)

		var segmentWidth fixed.Int26_6
		for i := start; i < end; i++ {
			segmentWidth += advances[i]
		}
		if width > 0 && x > 0 && x+segmentWidth > width {
			flush(start)
		}

		for i := start; i < end; i++ {
			e.positions[i] = x
			e.lineOf[i] = len(e.lines)
			x += advances[i]
			lineH = max(lineH, heights[i])
			if lineEnds[i] {
				flush(i + 1)
			}
		}
		start = end
	}
	if lineStart < n {
		flush(n)
	}
}

// segmentEnd returns the end of the unbreakable glyph segment starting at
// start. Control glyphs stay with the character they belong to.
func (e *Engine) segmentEnd(start int, breaks map[int]bool) int {
	charIndexes := e.glyphs.CharacterIndexes
	for i := start + 1; i < len(charIndexes); i++ {
		if charIndexes[i] != charIndexes[i-1] && breaks[charIndexes[i]] {
			return i
		}
	}
	return len(charIndexes)
}

// measure returns the advance and height of every glyph and whether the
// line ends after it.
func (e *Engine) measure(width, lineHeight fixed.Int26_6) (advances, heights []fixed.Int26_6, lineEnds []bool) {
	n := e.glyphs.Len()
	advances = make([]fixed.Int26_6, n)
	heights = make([]fixed.Int26_6, n)
	lineEnds = make([]bool, n)

	proposed := fixed.Rectangle26_6{Max: fixed.Point26_6{X: width, Y: lineHeight}}

	for i := range n {
		charIndex := e.glyphs.CharacterIndexes[i]
		r := e.runes[charIndex]

		if !e.glyphs.Properties[i].Has(layout.PropertyControlCharacter) {
			adv, ok := e.face.GlyphAdvance(r)
			if !ok {
				adv, _ = e.face.GlyphAdvance(unicode.ReplacementChar)
			}
			advances[i] = adv
			continue
		}

		action := layout.ActionZeroAdvancement
		if r == '\n' && (i == 0 || e.glyphs.CharacterIndexes[i-1] != charIndex) {
			action = layout.ActionParagraphBreak
		}
		if e.delegate != nil {
			action = e.delegate.ShouldUseControlCharacterAction(e, action, charIndex)
		}

		switch action {
		case layout.ActionWhitespace:
			if e.delegate != nil {
				box := e.delegate.BoundingBoxForControlGlyph(e, i, e.container, proposed, fixed.Point26_6{}, charIndex)
				advances[i] = box.Max.X - box.Min.X
				heights[i] = box.Max.Y - box.Min.Y
			}
		case layout.ActionHorizontalTab:
			space, _ := e.face.GlyphAdvance(' ')
			advances[i] = space.Mul(fixed.I(8))
		case layout.ActionLineBreak, layout.ActionParagraphBreak, layout.ActionContainerBreak:
			lineEnds[i] = true
		}
	}
	return advances, heights, lineEnds
}
