package frame

import (
	"fmt"
	"math"

	"blox-fumen/internal/raster"
)

// CropForPlayer detects and strips the frame for one player.
//
// The side and bottom edges are scanned on the plain frame color; the top
// edge uses the gray/white-inclusive variant because the top border tends to
// fade into neutral tones. When a top frame is found, a further
// AdditionalTopCropRatio of the crop height is trimmed to drop residual
// anti-aliased border rows.
func CropForPlayer(r *raster.Raster, player PlayerID, opts Options) (result CropResult) {
	defer func() {
		// Logf may be the culprit, so nothing is logged here.
		if p := recover(); p != nil {
			result = fail(player, Unexpected, fmt.Sprint(p))
		}
	}()

	if r == nil {
		return fail(player, UnsupportedInput, "no raster")
	}
	if err := opts.Validate(); err != nil {
		return fail(player, Unexpected, fmt.Sprintf("invalid options: %v", err))
	}

	class := player.ColorClass()
	topClass := class.WithNeutrals()
	width, height := r.Width(), r.Height()

	opts.logf("Frame crop: processing %s (%s) frame, %dx%d", player, class, width, height)

	masks := newMaskCache(r)
	sideMask := masks.get(class)
	topMask := masks.get(topClass)
	bottomMask := masks.get(class)

	b := Scan(sideMask, topMask, bottomMask, width, height, opts.Scan)
	opts.logf("Frame crop: %s boundaries %s", player, b)

	if float64(b.Width()) < float64(width)*minCropRatio || float64(b.Height()) < float64(height)*minCropRatio {
		opts.logf("Frame crop: crop too small for %s, skipping", player)
		return fail(player, CropTooSmall, fmt.Sprintf("crop %dx%d of %dx%d", b.Width(), b.Height(), width, height))
	}
	if b.Left >= b.Right || b.Top >= b.Bottom {
		opts.logf("Frame crop: invalid boundaries for %s, skipping", player)
		return fail(player, InvalidBoundaries, b.String())
	}

	final, additionalTopCrop := trimTop(b, opts.AdditionalTopCropRatio)
	if additionalTopCrop > 0 {
		opts.logf("Frame crop: top frame removed for %s, cropping additional %dpx", player, additionalTopCrop)
	}

	if float64(final.Height()) < float64(height)*minTrimmedHeightRatio {
		opts.logf("Frame crop: crop too small after top trim for %s", player)
		return fail(player, CropTooSmallAfterTopCrop, fmt.Sprintf("height %d of %d", final.Height(), height))
	}

	s := &Success{
		Player:     player,
		Cropped:    r.Crop(final.Rect()),
		Boundaries: final,
		Info: Info{
			OriginalSize:      Size{Width: width, Height: height},
			CroppedSize:       Size{Width: final.Width(), Height: final.Height()},
			AdditionalTopCrop: additionalTopCrop,
		},
	}
	if opts.Debug {
		s.Debug = buildDebug(r, sideMask, topMask, final, additionalTopCrop, opts.Scan)
	}

	opts.logf("Frame crop: processed %s -> %dx%d", player, final.Width(), final.Height())
	return succeed(s)
}

// trimTop applies the proportional top trim when a top frame was removed.
// It returns the adjusted boundaries and the number of rows trimmed.
func trimTop(b Boundaries, ratio float64) (Boundaries, int) {
	if !b.TopFrameRemoved {
		return b, 0
	}
	extra := int(math.Floor(float64(b.Height()) * ratio))
	b.Top += extra
	return b, extra
}
