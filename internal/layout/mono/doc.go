// Package mono is a small glyph layout engine for fixed-pitch fonts.
//
// It lays attributed text out into a single text container with greedy
// line wrapping at the break opportunities reported by uniseg, and asks a
// layout.Delegate about glyph generation and control glyphs the same way a
// platform layout engine would. It is complete enough to drive the
// attachment Coordinator end to end and to render into a raster canvas.
package mono
