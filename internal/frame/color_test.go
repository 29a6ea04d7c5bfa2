package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blox-fumen/pkg/colorutil"
)

func hsv(h, s, v int) colorutil.HSV { return colorutil.HSV{H: h, S: s, V: v} }

func TestColorClassRanges(t *testing.T) {
	tests := []struct {
		name  string
		class ColorClass
		in    colorutil.HSV
		want  bool
	}{
		{"blue low hue edge", Blue, hsv(85, 50, 100), true},
		{"blue high hue edge", Blue, hsv(110, 255, 255), true},
		{"blue hue below", Blue, hsv(84, 200, 200), false},
		{"blue hue above", Blue, hsv(111, 200, 200), false},
		{"blue undersaturated", Blue, hsv(100, 49, 200), false},
		{"blue too dark", Blue, hsv(100, 200, 99), false},

		{"red low band", Red, hsv(0, 30, 120), true},
		{"red low band edge", Red, hsv(10, 255, 255), true},
		{"red between bands", Red, hsv(11, 255, 255), false},
		{"red high band edge", Red, hsv(160, 255, 255), true},
		{"red high band top", Red, hsv(180, 255, 255), true},
		{"red below high band", Red, hsv(159, 255, 255), false},
		{"red undersaturated", Red, hsv(5, 29, 200), false},
		{"red too dark", Red, hsv(5, 200, 119), false},

		{"gray accepted by red variant", RedGrayWhite, hsv(90, 50, 80), true},
		{"gray upper value", RedGrayWhite, hsv(90, 0, 180), true},
		{"too saturated for gray", RedGrayWhite, hsv(90, 51, 150), false},
		{"between gray and white", RedGrayWhite, hsv(90, 20, 190), false},
		{"white", RedGrayWhite, hsv(90, 30, 200), true},
		{"white too saturated", RedGrayWhite, hsv(90, 31, 200), false},
		{"red still accepted", RedGrayWhite, hsv(170, 200, 200), true},

		{"gray accepted by blue variant", BlueGrayWhite, hsv(0, 0, 128), true},
		{"blue still accepted", BlueGrayWhite, hsv(100, 200, 200), true},
		{"red rejected by blue variant", BlueGrayWhite, hsv(0, 255, 255), false},
		{"gray rejected by plain blue", Blue, hsv(0, 0, 128), false},
		{"gray rejected by plain red", Red, hsv(0, 0, 128), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.class.Matches(tt.in))
		})
	}
}

func TestClassifyPixels(t *testing.T) {
	assert.True(t, Classify(0, 128, 255, Blue))
	assert.False(t, Classify(0, 0, 255, Blue), "hue 120 is outside the blue band")
	assert.True(t, Classify(255, 0, 0, Red))
	assert.True(t, Classify(255, 0, 128, Red), "hue wraps into the high red band")
	assert.False(t, Classify(0, 0, 0, RedGrayWhite))
	assert.True(t, Classify(128, 128, 128, RedGrayWhite))
	assert.True(t, Classify(255, 255, 255, BlueGrayWhite))
}

func TestWithNeutrals(t *testing.T) {
	assert.Equal(t, BlueGrayWhite, Blue.WithNeutrals())
	assert.Equal(t, RedGrayWhite, Red.WithNeutrals())
	assert.Equal(t, BlueGrayWhite, BlueGrayWhite.WithNeutrals())
	assert.Equal(t, RedGrayWhite, RedGrayWhite.WithNeutrals())
}

func TestParseColorClass(t *testing.T) {
	c, err := ParseColorClass("RED_GRAY_WHITE")
	require.NoError(t, err)
	assert.Equal(t, RedGrayWhite, c)

	_, err = ParseColorClass("green")
	assert.Error(t, err)
}

func TestPlayerColorClass(t *testing.T) {
	assert.Equal(t, Blue, OnePlayer.ColorClass())
	assert.Equal(t, Red, TwoPlayer.ColorClass())
	assert.Equal(t, Red, OnePlayerTwoPlayer.ColorClass())
}
