// Package colorutil provides shared color utilities for frame detection and
// debug rendering.
package colorutil

import (
	"image/color"
	"math"
)

// Overlay colors used by the debug renderers.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Blue  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Gray  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// HSV is an ordinal HSV triple in the OpenCV convention:
// H 0-180, S 0-255, V 0-255.
type HSV struct {
	H, S, V int
}

// RGBToHSV converts 8-bit RGB to an ordinal HSV triple (OpenCV convention).
// Each component is rounded with halves going up, so the result is stable
// for identical input across platforms.
func RGBToHSV(r, g, b uint8) HSV {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	diff := maxC - minC

	var h float64
	if diff != 0 {
		switch maxC {
		case rf:
			h = math.Mod((gf-bf)/diff, 6)
		case gf:
			h = (bf-rf)/diff + 2
		default:
			h = (rf-gf)/diff + 4
		}
	}

	// 30 per sextant puts the hue on the 0-180 scale.
	hue := roundHalfUp(h * 30)
	if hue < 0 {
		hue += 180
	}

	var s int
	if maxC != 0 {
		s = roundHalfUp(diff / maxC * 255)
	}

	return HSV{H: hue, S: s, V: roundHalfUp(maxC * 255)}
}

// FromColor converts any color.Color to ordinal HSV, ignoring alpha.
func FromColor(c color.Color) HSV {
	r, g, b, _ := c.RGBA()
	return RGBToHSV(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
