package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func TestNewIsOpaqueBlack(t *testing.T) {
	r := New(3, 2)
	assert.Equal(t, 3, r.Width())
	assert.Equal(t, 2, r.Height())
	assert.Equal(t, color.NRGBA{A: 255}, r.At(2, 1))
}

func TestFromImageNormalizesOrigin(t *testing.T) {
	src := gradient(20, 10).SubImage(image.Rect(5, 2, 15, 8))

	r := FromImage(src)

	assert.Equal(t, image.Rect(0, 0, 10, 6), r.Bounds())
	red, green, blue := r.RGB(0, 0)
	assert.Equal(t, []uint8{5, 2, 7}, []uint8{red, green, blue})
}

func TestRGBOutOfRangeIsBlack(t *testing.T) {
	r := FromImage(gradient(4, 4))
	red, green, blue := r.RGB(-1, 10)
	assert.Zero(t, red)
	assert.Zero(t, green)
	assert.Zero(t, blue)
}

func TestCropCopiesPixels(t *testing.T) {
	r := FromImage(gradient(10, 10))

	c := r.Crop(image.Rect(2, 3, 6, 9))
	require.Equal(t, 4, c.Width())
	require.Equal(t, 6, c.Height())

	red, green, _ := c.RGB(0, 0)
	assert.Equal(t, uint8(2), red)
	assert.Equal(t, uint8(3), green)

	// The crop must not share memory with its source.
	img := c.Image()
	img.Pix[0] = 99
	red, _, _ = c.RGB(0, 0)
	assert.Equal(t, uint8(2), red)
	c.img.Pix[0] = 77
	red, _, _ = r.RGB(2, 3)
	assert.Equal(t, uint8(2), red)
}

func TestCropClipsToBounds(t *testing.T) {
	r := FromImage(gradient(10, 10))

	assert.Equal(t, image.Rect(0, 0, 2, 10), r.Crop(image.Rect(8, -5, 20, 20)).Bounds())
	assert.True(t, r.Crop(image.Rect(20, 20, 30, 30)).Empty())
}

func TestEqual(t *testing.T) {
	a := FromImage(gradient(5, 5))
	b := FromImage(gradient(5, 5))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(New(5, 5)))
	assert.False(t, a.Equal(New(4, 5)))
}

func TestDataURLRoundTrip(t *testing.T) {
	r := FromImage(gradient(8, 6))

	url, err := EncodeDataURL(r)
	require.NoError(t, err)

	back, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.True(t, r.Equal(back))
}

func TestDecodeDataURLRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{
		"",
		"not a data url",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png,rawbytes",
		"data:image/png;base64,!!!",
		"data:image/png;base64,aGVsbG8=",
	} {
		_, err := DecodeDataURL(in)
		assert.ErrorIs(t, err, ErrUnsupportedInput, "input %q", in)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.png")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, gradient(12, 7)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, r.Width())
	assert.Equal(t, 7, r.Height())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.png"))
	assert.True(t, errors.Is(err, ErrUnsupportedInput))

	_, err = Load(filepath.Join(dir, "notes.txt"))
	assert.ErrorIs(t, err, ErrUnsupportedInput)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("nope"), 0o644))
	_, err = Load(garbage)
	assert.ErrorIs(t, err, ErrUnsupportedInput)
}

func TestSaveChoosesFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	r := FromImage(gradient(6, 6))

	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, r), name)

		back, err := Load(path)
		require.NoError(t, err, name)
		assert.True(t, r.Equal(back), name)
	}

	assert.Error(t, Encode(&bytes.Buffer{}, r, "xcf"))
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("shot.PNG"))
	assert.True(t, IsSupportedFormat("/tmp/a.webp"))
	assert.False(t, IsSupportedFormat("clip.mp4"))
}
