package raster

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// LoadVideoFrame grabs the single frame at offset `at` from a video file
// (for example a match replay) and decodes it as a raster. ffmpeg must be on
// PATH.
func LoadVideoFrame(ctx context.Context, path string, at time.Duration) (*Raster, error) {
	if at < 0 {
		at = 0
	}

	var out bytes.Buffer
	cmd := ffmpeg.Input(path, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.3f", at.Seconds())}).
		Output("pipe:1", ffmpeg.KwArgs{
			"vframes": 1,
			"format":  "image2pipe",
			"vcodec":  "png",
		}).
		WithOutput(&out).
		WithErrorOutput(io.Discard)
	cmd.Context = ctx

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: ffmpeg frame extraction failed: %v", ErrUnsupportedInput, err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("%w: no frame at %s in %s", ErrUnsupportedInput, at, path)
	}
	return Decode(&out)
}
