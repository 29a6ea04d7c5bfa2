package frame

import (
	"image"
	"runtime"
	"sync"

	"blox-fumen/internal/raster"
	"blox-fumen/pkg/colorutil"
)

// Mask is a width×height boolean grid marking pixels that satisfy a color
// class. Bits is row-major.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// NewMask allocates an all-false mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Bits: make([]bool, width*height)}
}

// At reports whether (x, y) is set. Out-of-range coordinates are unset.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Bits[y*m.Width+x]
}

// ColumnCount returns the number of set cells in column x.
func (m *Mask) ColumnCount(x int) int {
	if x < 0 || x >= m.Width {
		return 0
	}
	n := 0
	for i := x; i < len(m.Bits); i += m.Width {
		if m.Bits[i] {
			n++
		}
	}
	return n
}

// RowCount returns the number of set cells in row y.
func (m *Mask) RowCount(y int) int {
	if y < 0 || y >= m.Height {
		return 0
	}
	n := 0
	for _, set := range m.Bits[y*m.Width : (y+1)*m.Width] {
		if set {
			n++
		}
	}
	return n
}

// Count returns the total number of set cells.
func (m *Mask) Count() int {
	n := 0
	for _, set := range m.Bits {
		if set {
			n++
		}
	}
	return n
}

// Image renders the mask as 255 (set) / 0 (unset) grayscale.
func (m *Mask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, set := range m.Bits {
		if set {
			img.Pix[i] = 255
		}
	}
	return img
}

// BuildMask classifies every pixel of r against class. Pixels are
// independent, so the work is split into horizontal stripes, one per CPU.
func BuildMask(r *raster.Raster, class ColorClass) *Mask {
	width, height := r.Width(), r.Height()
	mask := NewMask(width, height)
	ranges := class.Ranges()

	numWorkers := runtime.NumCPU()
	rowsPerWorker := (height + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		startY := w * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > height {
			endY = height
		}
		if startY >= height {
			break
		}

		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			for y := yStart; y < yEnd; y++ {
				row := r.Row(y)
				bits := mask.Bits[y*width : (y+1)*width]
				for x := range bits {
					hsv := colorutil.RGBToHSV(row[x*4], row[x*4+1], row[x*4+2])
					bits[x] = inAnyRange(hsv, ranges)
				}
			}
		}(startY, endY)
	}
	wg.Wait()

	return mask
}

func inAnyRange(hsv colorutil.HSV, ranges []HSVRange) bool {
	for _, r := range ranges {
		if r.Contains(hsv) {
			return true
		}
	}
	return false
}

// maskCache memoizes masks per color class for one raster, so side and
// bottom scans share a single pass. It is owned by one pipeline and is not
// safe for concurrent use.
type maskCache struct {
	raster *raster.Raster
	masks  map[ColorClass]*Mask
	builds int
}

func newMaskCache(r *raster.Raster) *maskCache {
	return &maskCache{raster: r, masks: make(map[ColorClass]*Mask)}
}

func (c *maskCache) get(class ColorClass) *Mask {
	if m, ok := c.masks[class]; ok {
		return m
	}
	m := BuildMask(c.raster, class)
	c.masks[class] = m
	c.builds++
	return m
}
