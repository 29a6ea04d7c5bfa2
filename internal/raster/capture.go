package raster

import (
	"fmt"

	"github.com/kbinani/screenshot"
)

// DisplayCount returns the number of active displays available for capture.
func DisplayCount() int {
	return screenshot.NumActiveDisplays()
}

// CaptureDisplay captures the full contents of display index i.
func CaptureDisplay(i int) (*Raster, error) {
	n := screenshot.NumActiveDisplays()
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: display %d not available (%d active)", ErrUnsupportedInput, i, n)
	}

	img, err := screenshot.CaptureDisplay(i)
	if err != nil {
		return nil, fmt.Errorf("%w: screen capture failed: %v", ErrUnsupportedInput, err)
	}
	return FromImage(img), nil
}
