package layout

import (
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/textkit/internal/engine/text"
	"github.com/dshills/textkit/internal/logger"
)

// Phase is the state of the current layout pass.
type Phase int

// Layout pass phases.
const (
	PhaseShaping Phase = iota
	PhaseGlyphsGenerated
	PhaseLayoutComplete
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseShaping:
		return "shaping"
	case PhaseGlyphsGenerated:
		return "glyphsGenerated"
	case PhaseLayoutComplete:
		return "layoutComplete"
	default:
		return "unknown"
	}
}

var (
	debugOutlineColor = color.NRGBA{R: 0, G: 0, B: 255, A: 128}
	debugOutlineWidth = fixed.I(2)
	debugOutlineDash  = []fixed.Int26_6{fixed.I(2), fixed.I(2)}
)

// Coordinator inserts control glyphs for suffixed attachments and places
// the attachments after layout. It implements Delegate.
type Coordinator struct {
	debugOutline bool
	phase        Phase
	runs         []GlyphRun
}

var _ Delegate = (*Coordinator)(nil)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDebugOutline strokes a dashed outline around drawn image attachments.
func WithDebugOutline(enabled bool) Option {
	return func(c *Coordinator) {
		c.debugOutline = enabled
	}
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetDebugOutline enables or disables attachment outlines.
func (c *Coordinator) SetDebugOutline(enabled bool) {
	c.debugOutline = enabled
}

// DebugOutline returns true if attachment outlines are drawn.
func (c *Coordinator) DebugOutline() bool {
	return c.debugOutline
}

// Phase returns the phase of the current layout pass.
func (c *Coordinator) Phase() Phase {
	return c.phase
}

// CachedRuns returns the glyph runs generated in the current pass.
func (c *Coordinator) CachedRuns() []GlyphRun {
	return c.runs
}

// ShouldGenerateGlyphs inserts a control glyph after every character of
// glyphRange carrying a suffixed attachment.
func (c *Coordinator) ShouldGenerateGlyphs(e Engine, glyphs []GlyphID, props []GlyphProperty, charIndexes []int, face font.Face, glyphRange text.Range) int {
	if c.phase == PhaseLayoutComplete {
		c.phase = PhaseShaping
	}

	storage := e.Storage()
	if storage == nil {
		return 0
	}

	count := min(glyphRange.Length, len(glyphs), len(props), len(charIndexes))

	type insertion struct{ index, charIndex int }
	var insertions []insertion
	for index := range count {
		charIndex := charIndexes[index]
		if _, ok := suffixedAttachment(storage, charIndex); !ok {
			continue
		}
		if _, native := storage.Attribute(charIndex, AttachmentKey); native {
			logger.Debugf("character %d has a native attachment, skipping suffixed attachment", charIndex)
			continue
		}
		insertions = append(insertions, insertion{index: index + 1, charIndex: charIndex})
	}

	if len(insertions) == 0 {
		return 0
	}

	run := NewGlyphRun(glyphs, props, charIndexes, count)
	for offset, ins := range insertions {
		// Earlier insertions shift later ones by one each.
		run.Insert(ins.index+offset, 0, PropertyControlCharacter, ins.charIndex)
	}

	if run.Len() != count+len(insertions) {
		logger.Errorf("glyph run length %d, expected %d", run.Len(), count+len(insertions))
	}

	mutated := text.NewRange(glyphRange.Location, run.Len())
	c.runs = append(c.runs, run)
	c.phase = PhaseGlyphsGenerated

	e.SetGlyphs(run, face, mutated)

	return mutated.Length
}

// DrawGlyphs draws the image attachments of the control glyphs in
// glyphRange, with the text container origin at origin.
func (c *Coordinator) DrawGlyphs(e Engine, glyphRange text.Range, origin fixed.Point26_6, canvas Canvas) {
	logger.Debugf("range: %s, at: %v", glyphRange, origin)

	if glyphRange.Length <= 0 {
		return
	}
	storage := e.Storage()
	if storage == nil {
		return
	}

	props, charIndexes := e.Glyphs(glyphRange)

	sp := logger.Begin("Scan glyphs to show", "length: %d", glyphRange.Length)
	defer sp.End()

	for index, prop := range props {
		if !prop.Has(PropertyControlCharacter) {
			continue
		}
		attachment, ok := suffixedAttachment(storage, charIndexes[index])
		if !ok {
			continue
		}
		img, ok := attachment.Attachment.(*ImageAttachment)
		if !ok {
			continue
		}

		glyphIndex := glyphRange.Location + index
		bounds := attachment.rect(origin.Add(glyphOrigin(e, glyphIndex)))

		if c.debugOutline {
			canvas.StrokeRect(bounds, debugOutlineColor, debugOutlineWidth, debugOutlineDash)
		}
		if img.Image != nil {
			canvas.DrawImage(img.Image, bounds)
		}
	}
}

// DidCompleteLayout releases the pass's glyph runs and positions the view
// attachments laid out in container.
func (c *Coordinator) DidCompleteLayout(e Engine, container *TextContainer, atEnd bool) {
	logger.Debugf("text container: %v, at end: %t", container, atEnd)

	c.runs = nil
	c.phase = PhaseLayoutComplete

	storage := e.Storage()
	if storage == nil || container == nil {
		return
	}

	glyphRange := e.GlyphRange(container)
	if glyphRange.Length <= 0 {
		return
	}
	props, charIndexes := e.Glyphs(glyphRange)

	sp := logger.Begin("Scan glyphs to show", "length: %d", glyphRange.Length)
	defer sp.End()

	for index, prop := range props {
		if !prop.Has(PropertyControlCharacter) {
			continue
		}
		attachment, ok := suffixedAttachment(storage, charIndexes[index])
		if !ok {
			continue
		}
		view, ok := attachment.Attachment.(*ViewAttachment)
		if !ok || view.LayoutInTextContainer == nil {
			continue
		}

		frame := attachment.rect(glyphOrigin(e, glyphRange.Location+index))
		view.LayoutInTextContainer(view.View, frame)
	}
}

// ShouldUseControlCharacterAction lays out control glyphs of suffixed
// attachments as whitespace.
func (c *Coordinator) ShouldUseControlCharacterAction(e Engine, action ControlCharacterAction, charIndex int) ControlCharacterAction {
	storage := e.Storage()
	if storage == nil {
		return action
	}
	if _, ok := suffixedAttachment(storage, charIndex); !ok {
		return action
	}
	return ActionWhitespace
}

// BoundingBoxForControlGlyph returns the attachment's size at glyphPosition.
func (c *Coordinator) BoundingBoxForControlGlyph(e Engine, glyphIndex int, container *TextContainer, proposed fixed.Rectangle26_6, glyphPosition fixed.Point26_6, charIndex int) fixed.Rectangle26_6 {
	storage := e.Storage()
	if storage == nil {
		return fixed.Rectangle26_6{}
	}
	attachment, ok := suffixedAttachment(storage, charIndex)
	if !ok {
		logger.Errorf("control glyph %d at character %d has no suffixed attachment", glyphIndex, charIndex)
		return fixed.Rectangle26_6{}
	}
	return attachment.rect(glyphPosition)
}

// glyphOrigin returns the top-left of the glyph in container coordinates.
func glyphOrigin(e Engine, glyphIndex int) fixed.Point26_6 {
	lineOrigin := e.LineFragmentRect(glyphIndex).Min
	location := e.LocationForGlyph(glyphIndex)
	return fixed.Point26_6{X: lineOrigin.X + location.X, Y: lineOrigin.Y}
}

func suffixedAttachment(storage Storage, charIndex int) (*SuffixedAttachment, bool) {
	v, ok := storage.Attribute(charIndex, SuffixedAttachmentKey)
	if !ok {
		return nil, false
	}
	a, ok := v.(*SuffixedAttachment)
	return a, ok && a != nil
}
