package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blox-fumen/internal/raster"
)

// inputFlags select how the positional image argument is read.
type inputFlags struct {
	videoAt time.Duration
	isVideo bool
}

// loadInput reads a screenshot from a file path, a data URL, stdin ("-"),
// or a frame of a video file.
func loadInput(ctx context.Context, arg string, in inputFlags) (*raster.Raster, string, error) {
	switch {
	case in.isVideo:
		r, err := raster.LoadVideoFrame(ctx, arg, in.videoAt)
		return r, baseName(arg), inputError(err)
	case arg == "-":
		r, err := raster.Decode(os.Stdin)
		return r, "stdin", inputError(err)
	case strings.HasPrefix(arg, "data:"):
		r, err := raster.DecodeDataURL(arg)
		return r, "pasted", inputError(err)
	default:
		r, err := raster.Load(arg)
		if err != nil {
			return nil, "", inputError(fmt.Errorf("failed to load %s: %w", arg, err))
		}
		return r, baseName(arg), nil
	}
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
