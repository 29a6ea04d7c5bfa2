// Package raster provides the immutable pixel grid the frame detector works
// on, plus loaders that turn files, data URLs, video frames and screen
// captures into rasters.
package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// Raster is an immutable width×height grid of non-premultiplied RGBA pixels
// with its origin at (0,0). Every operation that derives a new raster copies
// pixels, so a Raster never aliases another Raster's memory.
type Raster struct {
	img *image.NRGBA
}

// New creates an opaque black raster of the given size.
func New(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return &Raster{img: img}
}

// FromImage copies src into a new raster whose origin is (0,0).
func FromImage(src image.Image) *Raster {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Raster{img: dst}
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int {
	if r == nil || r.img == nil {
		return 0
	}
	return r.img.Rect.Dx()
}

// Height returns the raster height in pixels.
func (r *Raster) Height() int {
	if r == nil || r.img == nil {
		return 0
	}
	return r.img.Rect.Dy()
}

// Bounds returns the raster rectangle, always anchored at (0,0).
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width(), r.Height())
}

// Empty reports whether the raster has no pixels.
func (r *Raster) Empty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// RGB returns the color channels at (x, y). Out-of-range coordinates read
// as black.
func (r *Raster) RGB(x, y int) (red, green, blue uint8) {
	if x < 0 || y < 0 || x >= r.Width() || y >= r.Height() {
		return 0, 0, 0
	}
	i := r.img.PixOffset(x, y)
	return r.img.Pix[i], r.img.Pix[i+1], r.img.Pix[i+2]
}

// At returns the color at (x, y).
func (r *Raster) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= r.Width() || y >= r.Height() {
		return color.NRGBA{A: 255}
	}
	return r.img.NRGBAAt(x, y)
}

// Row returns a read-only view of row y as packed RGBA bytes. Callers must
// not modify the returned slice.
func (r *Raster) Row(y int) []uint8 {
	start := r.img.PixOffset(0, y)
	return r.img.Pix[start : start+r.Width()*4]
}

// Crop copies the pixels inside rect into a new raster. The rectangle is
// clipped to the raster bounds; a rectangle outside the raster yields an
// empty raster.
func (r *Raster) Crop(rect image.Rectangle) *Raster {
	rect = rect.Intersect(r.Bounds())
	dst := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		srcOff := r.img.PixOffset(rect.Min.X, rect.Min.Y+y)
		dstOff := dst.PixOffset(0, y)
		copy(dst.Pix[dstOff:dstOff+rect.Dx()*4], r.img.Pix[srcOff:srcOff+rect.Dx()*4])
	}
	return &Raster{img: dst}
}

// Image returns a copy of the raster as a standard library image.
func (r *Raster) Image() *image.NRGBA {
	dst := image.NewNRGBA(r.Bounds())
	copy(dst.Pix, r.img.Pix)
	return dst
}

// Equal reports whether two rasters have the same size and pixels.
func (r *Raster) Equal(other *Raster) bool {
	if r.Width() != other.Width() || r.Height() != other.Height() {
		return false
	}
	for y := 0; y < r.Height(); y++ {
		a, b := r.Row(y), other.Row(y)
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}
