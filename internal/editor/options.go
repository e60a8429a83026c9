package editor

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/engine/text"
	"github.com/dshills/textkit/internal/schedule"
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithLoop sets the loop the editor runs on. The default is a new
// schedule.ManualLoop, which the caller must pump through Loop.
func WithLoop(loop schedule.Loop) Option {
	return func(e *Editor) {
		if loop != nil {
			e.loop = loop
		}
	}
}

// WithText sets the initial text and selection.
// An invalid selection is replaced by a caret at the end of the text.
func WithText(s string, selectedRange text.Range) Option {
	return func(e *Editor) {
		e.initText = s
		e.initSelection = selectedRange
	}
}

// WithTypingAttributes sets the attributes of text set through the API and
// of text typed into an empty editor.
func WithTypingAttributes(attrs attributed.Attributes) Option {
	return func(e *Editor) {
		e.typingAttributes = attrs.Clone()
	}
}

// WithContentDelegate sets the delegate rewriting editing content.
func WithContentDelegate(d ContentDelegate) Option {
	return func(e *Editor) {
		e.contentDelegate = d
	}
}

// WithAttributesDelegate sets the delegate computing text attributes.
func WithAttributesDelegate(d AttributesDelegate) Option {
	return func(e *Editor) {
		e.attributesDelegate = d
	}
}

// WithContainerWidth sets the width text wraps at. Zero disables wrapping.
func WithContainerWidth(width fixed.Int26_6) Option {
	return func(e *Editor) {
		if width >= 0 {
			e.container.Size.X = width
		}
	}
}

// WithFace sets the font face used for layout.
func WithFace(face font.Face) Option {
	return func(e *Editor) {
		e.face = face
	}
}

// WithDebugOutline outlines attachment rectangles when drawing.
func WithDebugOutline(enabled bool) Option {
	return func(e *Editor) {
		e.debugOutline = enabled
	}
}

// WithDescribeOptions sets how the storage is described in logs.
func WithDescribeOptions(opts attributed.DescribeOptions) Option {
	return func(e *Editor) {
		e.describe = opts
	}
}

// WithClipboard allows PasteClipboard to read the system clipboard.
func WithClipboard(enabled bool) Option {
	return func(e *Editor) {
		e.useClipboard = enabled
	}
}
