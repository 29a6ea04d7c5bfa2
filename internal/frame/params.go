package frame

import "fmt"

// Crop sanity limits, as fractions of the scanned raster's dimensions.
const (
	minCropRatio          = 0.7
	minTrimmedHeightRatio = 0.3
)

// Options configures one crop request. Build it once with DefaultOptions and
// the With* modifiers, then pass it by value; the pipeline never mutates it.
type Options struct {
	// Scan tunes the boundary search.
	Scan ScanParams

	// AdditionalTopCropRatio is the share of the crop height trimmed below a
	// detected top frame to drop anti-aliased border pixels.
	AdditionalTopCropRatio float64

	// Debug attaches mask and overlay rasters to successful results.
	Debug bool

	// Logf receives progress messages. It may be called from several
	// goroutines at once. Nil disables logging.
	Logf func(format string, args ...any)
}

// DefaultOptions returns the tuned defaults: min ratio 0.8, search margins
// 10% horizontally and 5% vertically, a 1/50 top trim, no debug output.
func DefaultOptions() Options {
	return Options{
		Scan:                   DefaultScanParams(),
		AdditionalTopCropRatio: 1.0 / 50.0,
	}
}

// WithScan returns a copy of opts with custom scan parameters.
func (o Options) WithScan(p ScanParams) Options {
	o.Scan = p
	return o
}

// WithDebug returns a copy of opts with debug output toggled.
func (o Options) WithDebug(debug bool) Options {
	o.Debug = debug
	return o
}

// WithLogger returns a copy of opts that logs through logf.
func (o Options) WithLogger(logf func(format string, args ...any)) Options {
	o.Logf = logf
	return o
}

// WithTopCropRatio returns a copy of opts with a custom top trim ratio.
func (o Options) WithTopCropRatio(ratio float64) Options {
	o.AdditionalTopCropRatio = ratio
	return o
}

// Validate checks that every ratio is in range.
func (o Options) Validate() error {
	if o.Scan.MinRatio <= 0 || o.Scan.MinRatio > 1 {
		return fmt.Errorf("min ratio must be in (0, 1], got %g", o.Scan.MinRatio)
	}
	if o.Scan.SearchRatioX < 0 || o.Scan.SearchRatioX >= 1 {
		return fmt.Errorf("horizontal search ratio must be in [0, 1), got %g", o.Scan.SearchRatioX)
	}
	if o.Scan.SearchRatioY < 0 || o.Scan.SearchRatioY >= 1 {
		return fmt.Errorf("vertical search ratio must be in [0, 1), got %g", o.Scan.SearchRatioY)
	}
	if o.AdditionalTopCropRatio < 0 || o.AdditionalTopCropRatio >= 1 {
		return fmt.Errorf("additional top crop ratio must be in [0, 1), got %g", o.AdditionalTopCropRatio)
	}
	return nil
}

func (o Options) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}
