package frame

import (
	"image"
	"image/color"
	"image/draw"

	"blox-fumen/internal/raster"
)

// Test palette. frameBlue has hue 105 (pure 0,0,255 sits at 120, outside
// the blue band).
var (
	black     = color.NRGBA{A: 255}
	frameBlue = color.NRGBA{R: 0, G: 128, B: 255, A: 255}
	frameRed  = color.NRGBA{R: 255, A: 255}
	neutral   = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	white     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

type canvas struct {
	img *image.NRGBA
}

func newCanvas(w, h int) *canvas {
	c := &canvas{img: image.NewNRGBA(image.Rect(0, 0, w, h))}
	c.paint(c.img.Bounds(), black)
	return c
}

func (c *canvas) paint(r image.Rectangle, col color.NRGBA) *canvas {
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
	return c
}

func (c *canvas) raster() *raster.Raster {
	return raster.FromImage(c.img)
}

// framedBoard draws a 100×100 1P board: a blue outer frame (left/right
// columns 0-4 and 95-99, bottom rows 95-99), a red inner frame (columns 5-7
// and 92-94, rows 92-94) and a neutral gray top border over rows 0-2.
func framedBoard() *raster.Raster {
	c := newCanvas(100, 100)
	c.paint(image.Rect(0, 0, 5, 100), frameBlue)
	c.paint(image.Rect(95, 0, 100, 100), frameBlue)
	c.paint(image.Rect(0, 95, 100, 100), frameBlue)
	c.paint(image.Rect(5, 0, 8, 95), frameRed)
	c.paint(image.Rect(92, 0, 95, 95), frameRed)
	c.paint(image.Rect(5, 92, 95, 95), frameRed)
	c.paint(image.Rect(0, 0, 100, 3), neutral)
	return c.raster()
}

// maskFrom builds a mask directly from a predicate.
func maskFrom(w, h int, set func(x, y int) bool) *Mask {
	m := NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Bits[y*w+x] = set(x, y)
		}
	}
	return m
}
