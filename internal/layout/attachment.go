package layout

import (
	"fmt"
	"image"

	"golang.org/x/image/math/fixed"

	"github.com/dshills/textkit/internal/engine/attributed"
)

// Attribute keys read by the Coordinator.
const (
	// SuffixedAttachmentKey holds a *SuffixedAttachment drawn after its
	// anchor character.
	SuffixedAttachmentKey attributed.Key = "suffixedAttachment"

	// AttachmentKey marks a character replaced by a native attachment.
	// Such a character never gets a control glyph.
	AttachmentKey attributed.Key = "attachment"
)

// Attachment is the content of a SuffixedAttachment: an *ImageAttachment or
// a *ViewAttachment.
type Attachment interface {
	attachment()
}

// ImageAttachment is a still image drawn at the attachment's position.
type ImageAttachment struct {
	Image image.Image
}

func (*ImageAttachment) attachment() {}

// ViewAttachment is an externally owned view positioned after layout.
type ViewAttachment struct {
	// View is an opaque handle passed back to LayoutInTextContainer.
	View any

	// LayoutInTextContainer places View at frame, in text container
	// coordinates.
	LayoutInTextContainer func(view any, frame fixed.Rectangle26_6)
}

func (*ViewAttachment) attachment() {}

// SuffixedAttachment is an image or view that follows its anchor character.
type SuffixedAttachment struct {
	// Size is the width and height reserved for the attachment.
	Size       fixed.Point26_6
	Attachment Attachment
}

// NewImageAttachment creates a suffixed image attachment.
func NewImageAttachment(size fixed.Point26_6, img image.Image) *SuffixedAttachment {
	return &SuffixedAttachment{Size: size, Attachment: &ImageAttachment{Image: img}}
}

// NewViewAttachment creates a suffixed view attachment.
func NewViewAttachment(size fixed.Point26_6, view any, layoutInTextContainer func(view any, frame fixed.Rectangle26_6)) *SuffixedAttachment {
	return &SuffixedAttachment{
		Size: size,
		Attachment: &ViewAttachment{
			View:                  view,
			LayoutInTextContainer: layoutInTextContainer,
		},
	}
}

// String implements fmt.Stringer.
func (a *SuffixedAttachment) String() string {
	kind := "unknown"
	switch a.Attachment.(type) {
	case *ImageAttachment:
		kind = "image"
	case *ViewAttachment:
		kind = "view"
	}
	return fmt.Sprintf("<SuffixedAttachment: size = %sx%s, attachment = %s>", a.Size.X, a.Size.Y, kind)
}

// Attributes returns the attribute set anchoring a to a character.
func (a *SuffixedAttachment) Attributes() attributed.Attributes {
	return attributed.Attributes{SuffixedAttachmentKey: a}
}

// rect returns the rectangle of size a.Size at origin.
func (a *SuffixedAttachment) rect(origin fixed.Point26_6) fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{Min: origin, Max: origin.Add(a.Size)}
}
