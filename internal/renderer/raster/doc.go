// Package raster draws laid out text and attachments into an RGBA image.
package raster
