// Package classifier labels play-field cells with an ONNX image model.
package classifier

import (
	"image"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/floats"
)

// Model input geometry.
const (
	InputSize     = 224
	InputChannels = 3
)

// Preprocess scales img to width×height with bilinear filtering and returns
// planar RGB values in [0,1] (NCHW with N=1). Cells are expected to be
// opaque.
func Preprocess(img image.Image, width, height int) []float32 {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	plane := width * height
	out := make([]float32, InputChannels*plane)
	for i := 0; i < plane; i++ {
		p := dst.Pix[i*4 : i*4+4]
		out[i] = float32(p[0]) / 255
		out[plane+i] = float32(p[1]) / 255
		out[2*plane+i] = float32(p[2]) / 255
	}
	return out
}

// ArgMax returns the index of the highest score, preferring the first on
// ties. It returns -1 for no scores.
func ArgMax(scores []float32) int {
	if len(scores) == 0 {
		return -1
	}
	s := make([]float64, len(scores))
	for i, v := range scores {
		s[i] = float64(v)
	}
	return floats.MaxIdx(s)
}
