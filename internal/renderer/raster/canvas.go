package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/textkit/internal/layout"
	"github.com/dshills/textkit/internal/layout/mono"
)

// Canvas is a mono.Canvas backed by an *image.RGBA.
type Canvas struct {
	dst    *image.RGBA
	scaler draw.Scaler
}

var (
	_ layout.Canvas = (*Canvas)(nil)
	_ mono.Canvas   = (*Canvas)(nil)
)

// Option configures a Canvas.
type Option func(*Canvas)

// WithScaler sets the interpolator used to scale images.
// The default is draw.ApproxBiLinear.
func WithScaler(s draw.Scaler) Option {
	return func(c *Canvas) {
		if s != nil {
			c.scaler = s
		}
	}
}

// New creates a canvas of the given size filled with bg.
func New(size image.Point, bg color.Color, opts ...Option) *Canvas {
	c := &Canvas{
		dst:    image.NewRGBA(image.Rectangle{Max: size}),
		scaler: draw.ApproxBiLinear,
	}
	for _, opt := range opts {
		opt(c)
	}
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return c
}

// Image returns the drawn image.
func (c *Canvas) Image() *image.RGBA {
	return c.dst
}

// DrawGlyph draws r with its baseline origin at dot.
func (c *Canvas) DrawGlyph(face font.Face, dot fixed.Point26_6, r rune, col color.Color) {
	dr, mask, maskp, _, ok := face.Glyph(dot, r)
	if !ok {
		return
	}
	draw.DrawMask(c.dst, dr, image.NewUniform(col), image.Point{}, mask, maskp, draw.Over)
}

// DrawImage scales img into r.
func (c *Canvas) DrawImage(img image.Image, r fixed.Rectangle26_6) {
	dr := pixelRect(r)
	if dr.Empty() {
		return
	}
	c.scaler.Scale(c.dst, dr, img, img.Bounds(), draw.Over, nil)
}

// StrokeRect strokes the outline of r with lines of the given width.
func (c *Canvas) StrokeRect(r fixed.Rectangle26_6, col color.Color, width fixed.Int26_6, dash []fixed.Int26_6) {
	rect := pixelRect(r)
	w := max(width.Ceil(), 1)
	src := image.NewUniform(col)

	pattern := make([]int, 0, len(dash))
	for _, d := range dash {
		pattern = append(pattern, max(d.Round(), 1))
	}

	// Top, bottom, left, right.
	c.dashed(src, rect.Min, rect.Max.X-rect.Min.X, w, true, pattern)
	c.dashed(src, image.Pt(rect.Min.X, rect.Max.Y-w), rect.Max.X-rect.Min.X, w, true, pattern)
	c.dashed(src, rect.Min, rect.Max.Y-rect.Min.Y, w, false, pattern)
	c.dashed(src, image.Pt(rect.Max.X-w, rect.Min.Y), rect.Max.Y-rect.Min.Y, w, false, pattern)
}

// dashed draws a line of length n and thickness w from p, alternating
// drawn and skipped lengths from pattern. An empty pattern draws a solid
// line.
func (c *Canvas) dashed(src image.Image, p image.Point, n, w int, horizontal bool, pattern []int) {
	segment := func(from, length int) {
		var r image.Rectangle
		if horizontal {
			r = image.Rect(p.X+from, p.Y, p.X+from+length, p.Y+w)
		} else {
			r = image.Rect(p.X, p.Y+from, p.X+w, p.Y+from+length)
		}
		draw.Draw(c.dst, r, src, image.Point{}, draw.Over)
	}

	if len(pattern) == 0 {
		segment(0, n)
		return
	}

	for pos, i := 0, 0; pos < n; i++ {
		length := min(pattern[i%len(pattern)], n-pos)
		if i%2 == 0 {
			segment(pos, length)
		}
		pos += length
	}
}

func pixelRect(r fixed.Rectangle26_6) image.Rectangle {
	return image.Rect(r.Min.X.Floor(), r.Min.Y.Floor(), r.Max.X.Ceil(), r.Max.Y.Ceil())
}
