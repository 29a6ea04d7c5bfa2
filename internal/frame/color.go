package frame

import (
	"fmt"
	"strings"

	"blox-fumen/pkg/colorutil"
)

// HSVRange is an inclusive box in ordinal HSV space (H 0-180, S and V 0-255).
type HSVRange struct {
	HueMin, HueMax int
	SatMin, SatMax int
	ValMin, ValMax int
}

// Contains reports whether c falls inside the range.
func (r HSVRange) Contains(c colorutil.HSV) bool {
	return c.H >= r.HueMin && c.H <= r.HueMax &&
		c.S >= r.SatMin && c.S <= r.SatMax &&
		c.V >= r.ValMin && c.V <= r.ValMax
}

// Frame color ranges. Red wraps around the hue circle so it needs two boxes.
var (
	blueRange    = HSVRange{HueMin: 85, HueMax: 110, SatMin: 50, SatMax: 255, ValMin: 100, ValMax: 255}
	redLowRange  = HSVRange{HueMin: 0, HueMax: 10, SatMin: 30, SatMax: 255, ValMin: 120, ValMax: 255}
	redHighRange = HSVRange{HueMin: 160, HueMax: 180, SatMin: 30, SatMax: 255, ValMin: 120, ValMax: 255}

	// Neutral tones the top border blends into.
	grayRange  = HSVRange{HueMin: 0, HueMax: 180, SatMin: 0, SatMax: 50, ValMin: 80, ValMax: 180}
	whiteRange = HSVRange{HueMin: 0, HueMax: 180, SatMin: 0, SatMax: 30, ValMin: 200, ValMax: 255}
)

// ColorClass names a family of HSV ranges used to detect frame pixels.
type ColorClass int

const (
	// Blue is the saturated 1P frame color.
	Blue ColorClass = iota
	// Red is the saturated 2P frame color.
	Red
	// RedGrayWhite is Red plus neutral gray and white, for top borders.
	RedGrayWhite
	// BlueGrayWhite is Blue plus neutral gray and white, for top borders.
	BlueGrayWhite
)

func (c ColorClass) String() string {
	switch c {
	case Blue:
		return "blue"
	case Red:
		return "red"
	case RedGrayWhite:
		return "red_gray_white"
	case BlueGrayWhite:
		return "blue_gray_white"
	default:
		return "unknown"
	}
}

// ParseColorClass converts a class name such as "blue" or "red_gray_white".
func ParseColorClass(s string) (ColorClass, error) {
	for _, c := range []ColorClass{Blue, Red, RedGrayWhite, BlueGrayWhite} {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("invalid color class: %q (valid: blue, red, red_gray_white, blue_gray_white)", s)
}

// WithNeutrals returns the gray/white-inclusive variant of the same hue
// family. Variants map to themselves.
func (c ColorClass) WithNeutrals() ColorClass {
	switch c {
	case Blue, BlueGrayWhite:
		return BlueGrayWhite
	default:
		return RedGrayWhite
	}
}

// Ranges returns the HSV boxes whose union defines the class.
func (c ColorClass) Ranges() []HSVRange {
	switch c {
	case Blue:
		return []HSVRange{blueRange}
	case Red:
		return []HSVRange{redLowRange, redHighRange}
	case RedGrayWhite:
		return []HSVRange{redLowRange, redHighRange, grayRange, whiteRange}
	case BlueGrayWhite:
		return []HSVRange{blueRange, grayRange, whiteRange}
	default:
		return nil
	}
}

// Matches reports whether an HSV value belongs to the class.
func (c ColorClass) Matches(hsv colorutil.HSV) bool {
	for _, r := range c.Ranges() {
		if r.Contains(hsv) {
			return true
		}
	}
	return false
}

// Classify tests a single RGB pixel against a color class.
func Classify(r, g, b uint8, class ColorClass) bool {
	return class.Matches(colorutil.RGBToHSV(r, g, b))
}
