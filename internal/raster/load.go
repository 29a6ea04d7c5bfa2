package raster

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedInput is returned (wrapped) whenever a raster cannot be
// obtained from the given input: unreadable files, unknown formats, malformed
// data URLs, failed captures.
var ErrUnsupportedInput = errors.New("unsupported input")

// Load decodes an image file into a raster.
func Load(path string) (*Raster, error) {
	if !IsSupportedFormat(path) {
		return nil, fmt.Errorf("%w: unknown image extension %q", ErrUnsupportedInput, filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %v", ErrUnsupportedInput, err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode decodes any registered image format from r.
func Decode(r io.Reader) (*Raster, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %v", ErrUnsupportedInput, err)
	}
	return FromImage(img), nil
}

// DecodeDataURL decodes a base64 data URL such as
// "data:image/png;base64,iVBORw0...". This is the form produced by browser
// clipboard and drag-drop handlers.
func DecodeDataURL(dataURL string) (*Raster, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: not a base64 image data URL", ErrUnsupportedInput)
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 payload: %v", ErrUnsupportedInput, err)
	}
	return Decode(bytes.NewReader(data))
}

// EncodeDataURL renders the raster as a PNG data URL.
func EncodeDataURL(r *Raster) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.img); err != nil {
		return "", fmt.Errorf("failed to encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Encode writes the raster to w in the given format ("png", "jpeg", "bmp"
// or "tiff").
func Encode(w io.Writer, r *Raster, format string) error {
	var err error
	switch strings.ToLower(format) {
	case "png":
		err = png.Encode(w, r.img)
	case "jpg", "jpeg":
		err = jpeg.Encode(w, r.img, &jpeg.Options{Quality: 95})
	case "bmp":
		err = bmp.Encode(w, r.img)
	case "tif", "tiff":
		err = tiff.Encode(w, r.img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// Save writes the raster to path, choosing the format from the extension.
func Save(path string, r *Raster) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "png"
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(file, r, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// SupportedFormats returns the list of supported image extensions.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp"}
}

// IsSupportedFormat checks if the given path has a supported image extension.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
