// Package layout coordinates inline attachments with a glyph-based text
// layout engine.
//
// An attachment is anchored to one character through the
// SuffixedAttachmentKey attribute. During glyph generation the Coordinator
// inserts one synthetic control glyph right after that character's glyph.
// The layout engine asks how to treat the control glyph and how wide it is.
// The Coordinator answers with a whitespace action and the attachment's size,
// which reserves room for the attachment on the line.
//
// After layout, the control glyphs locate their attachments:
//
//   - DrawGlyphs draws image attachments into a Canvas at the control
//     glyph's position.
//   - DidCompleteLayout hands view attachments their frames through their
//     LayoutInTextContainer callback.
//
// Glyph runs built during generation belong to a single layout pass and are
// released when the pass completes.
//
// A character can only carry one synthetic glyph. When a character holds a
// native attachment (AttachmentKey) as well as a suffixed one, the native
// attachment wins and no control glyph is inserted.
//
// All methods must be called from the editor's loop.
package layout
