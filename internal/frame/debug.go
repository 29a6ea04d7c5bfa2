package frame

import (
	"image"
	"image/color"
	"image/draw"

	"blox-fumen/internal/raster"
	"blox-fumen/pkg/colorutil"
)

const (
	cropStroke   = 3
	trimStroke   = 2
	marginStroke = 1
)

// buildDebug renders the side and top masks and an annotated copy of src.
func buildDebug(src *raster.Raster, side, top *Mask, b Boundaries, additionalTopCrop int, p ScanParams) *Debug {
	width, height := src.Width(), src.Height()
	img := src.Image()

	strokeRect(img, image.Rect(b.Left, b.Top, b.Right-1, b.Bottom-1), colorutil.Red, cropStroke)

	if b.TopFrameRemoved && additionalTopCrop > 0 {
		originalTop := b.Top - additionalTopCrop
		hLine(img, b.Left, b.Right, originalTop, colorutil.Blue, trimStroke)
	}

	searchX, searchY := p.Margins(width, height)
	strokeRect(img, image.Rect(searchX, searchY, width-searchX-1, height-searchY-1), colorutil.Gray, marginStroke)

	return &Debug{
		SideMask: side.Image(),
		TopMask:  top.Image(),
		Overlay:  raster.FromImage(img),
	}
}

// strokeRect outlines r (corners inclusive) with a line of the given
// thickness centered on the edge.
func strokeRect(img draw.Image, r image.Rectangle, c color.Color, thickness int) {
	hLine(img, r.Min.X, r.Max.X, r.Min.Y, c, thickness)
	hLine(img, r.Min.X, r.Max.X, r.Max.Y, c, thickness)
	vLine(img, r.Min.X, r.Min.Y, r.Max.Y, c, thickness)
	vLine(img, r.Max.X, r.Min.Y, r.Max.Y, c, thickness)
}

func hLine(img draw.Image, x0, x1, y int, c color.Color, thickness int) {
	half := thickness / 2
	fill(img, image.Rect(x0-half, y-half, x1+thickness-half, y+thickness-half), c)
}

func vLine(img draw.Image, x, y0, y1 int, c color.Color, thickness int) {
	half := thickness / 2
	fill(img, image.Rect(x-half, y0-half, x+thickness-half, y1+thickness-half), c)
}

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}
