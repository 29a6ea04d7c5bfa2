package frame

import (
	"fmt"
	"image"
	"math"
)

// Boundaries is a half-open crop rectangle [Left,Right) × [Top,Bottom) in
// pixel coordinates of the scanned raster.
type Boundaries struct {
	Left            int  `json:"left"`
	Right           int  `json:"right"`
	Top             int  `json:"top"`
	Bottom          int  `json:"bottom"`
	TopFrameRemoved bool `json:"top_frame_removed"`
}

// Width returns Right-Left.
func (b Boundaries) Width() int { return b.Right - b.Left }

// Height returns Bottom-Top.
func (b Boundaries) Height() int { return b.Bottom - b.Top }

// Rect returns the boundaries as an image rectangle.
func (b Boundaries) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

// Valid reports whether 0 ≤ Left < Right ≤ width and 0 ≤ Top < Bottom ≤ height.
func (b Boundaries) Valid(width, height int) bool {
	return b.Left >= 0 && b.Left < b.Right && b.Right <= width &&
		b.Top >= 0 && b.Top < b.Bottom && b.Bottom <= height
}

func (b Boundaries) String() string {
	return fmt.Sprintf("L=%d R=%d T=%d B=%d top_removed=%v", b.Left, b.Right, b.Top, b.Bottom, b.TopFrameRemoved)
}

// ScanParams tunes the boundary search.
type ScanParams struct {
	// MinRatio is the fraction of a line that must be frame-colored for the
	// line to count as frame. Coverage must strictly exceed it.
	MinRatio float64 `json:"min_ratio" yaml:"min_ratio"`
	// SearchRatioX bounds the left/right search margin as a fraction of width.
	SearchRatioX float64 `json:"search_ratio_x" yaml:"search_ratio_x"`
	// SearchRatioY bounds the top/bottom search margin as a fraction of height.
	SearchRatioY float64 `json:"search_ratio_y" yaml:"search_ratio_y"`
}

// DefaultScanParams returns the tuned defaults for versus screenshots.
func DefaultScanParams() ScanParams {
	return ScanParams{
		MinRatio:     0.8,
		SearchRatioX: 0.1,
		SearchRatioY: 0.05,
	}
}

// Margins returns the search depth in pixels for each axis, clamped so the
// innermost scanned line stays inside the raster.
func (p ScanParams) Margins(width, height int) (maxSearchX, maxSearchY int) {
	maxSearchX = min(int(math.Floor(float64(width)*p.SearchRatioX)), width-1)
	maxSearchY = min(int(math.Floor(float64(height)*p.SearchRatioY)), height-1)
	return maxSearchX, maxSearchY
}

// Scan finds the frame edges. Each edge is searched from the inner limit of
// its margin toward the raster edge; the first line whose mask coverage
// exceeds the threshold is frame, and the boundary is placed just inside it.
// Edges without a qualifying line stay at the raster extent.
//
// side drives left and right, top drives the top edge and bottom the bottom
// edge; side and bottom are usually the same mask.
func Scan(side, top, bottom *Mask, width, height int, p ScanParams) Boundaries {
	maxSearchX, maxSearchY := p.Margins(width, height)
	colThreshold := float64(height) * p.MinRatio
	rowThreshold := float64(width) * p.MinRatio

	b := Boundaries{Left: 0, Right: width, Top: 0, Bottom: height}

	for x := maxSearchX; x >= 0; x-- {
		if float64(side.ColumnCount(x)) > colThreshold {
			b.Left = x + 1
			break
		}
	}

	for x := width - maxSearchX - 1; x < width; x++ {
		if float64(side.ColumnCount(x)) > colThreshold {
			b.Right = x
			break
		}
	}

	for y := maxSearchY; y >= 0; y-- {
		if float64(top.RowCount(y)) > rowThreshold {
			b.Top = y + 1
			b.TopFrameRemoved = true
			break
		}
	}

	for y := height - maxSearchY - 1; y < height; y++ {
		if float64(bottom.RowCount(y)) > rowThreshold {
			b.Bottom = y
			break
		}
	}

	return b
}
