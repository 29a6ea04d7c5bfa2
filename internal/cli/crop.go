package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"blox-fumen/internal/frame"
	"blox-fumen/internal/raster"
)

// cropFlags holds the flag values for the crop and capture commands.
type cropFlags struct {
	input  inputFlags
	outDir string
	debug  bool
}

// NewCropCommand creates the "crop" command.
func NewCropCommand() *cobra.Command {
	flags := &cropFlags{}

	cmd := &cobra.Command{
		Use:   "crop <image>",
		Short: "Detect and strip the 1P/2P frames of a screenshot",
		Long: `Run the 1P, 2P and nested 1P2P crop pipelines on a screenshot and
write every successful crop as <out-dir>/<name>_<player>.png.

The image argument may be a file, "-" for stdin, or a data:image URL.
With --video-at the argument is a video and the frame at that offset is
used instead.

Examples:
  blox-fumen crop shot.png
  blox-fumen crop --debug --out-dir out shot.png
  blox-fumen crop --video-at 1m32s replay.mp4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.input.isVideo = cmd.Flags().Changed("video-at")
			r, name, err := loadInput(cmd.Context(), args[0], flags.input)
			if err != nil {
				return err
			}
			return runCrop(cmd.OutOrStdout(), r, name, flags)
		},
	}

	cmd.Flags().DurationVar(&flags.input.videoAt, "video-at", 0, "Treat the input as a video and use the frame at this offset")
	addCropOutputFlags(cmd, flags)
	return cmd
}

func addCropOutputFlags(cmd *cobra.Command, flags *cropFlags) {
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", ".", "Directory for cropped images")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Also write masks and boundary overlays")
}

// cropSummary is the per-player output of the crop command.
type cropSummary struct {
	Player     frame.PlayerID    `json:"player"`
	OK         bool              `json:"ok"`
	Error      string            `json:"error,omitempty"`
	Boundaries *frame.Boundaries `json:"boundaries,omitempty"`
	Info       *frame.Info       `json:"info,omitempty"`
	Files      []string          `json:"files,omitempty"`
}

func runCrop(w io.Writer, r *raster.Raster, name string, flags *cropFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flags.debug {
		cfg.Crop.Debug = true
	}
	opts, err := cropOptions(cfg)
	if err != nil {
		return err
	}

	outDir := flags.outDir
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	batch := frame.Process(r, opts)

	summaries := make([]cropSummary, 0, len(frame.AllPlayers))
	for _, p := range frame.AllPlayers {
		res := batch.Result(p)
		s := cropSummary{Player: p, OK: res.OK()}
		if !res.OK() {
			s.Error = res.Err().Error()
			summaries = append(summaries, s)
			continue
		}
		s.Boundaries = &res.Success.Boundaries
		s.Info = &res.Success.Info
		s.Files, err = writeCrop(outDir, name, res.Success)
		if err != nil {
			return err
		}
		summaries = append(summaries, s)
	}

	if jsonOutput {
		return writeJSON(w, map[string]any{
			"success": batch.Success,
			"players": summaries,
			"errors":  batch.Errors,
		})
	}
	for _, s := range summaries {
		if !s.OK {
			fmt.Fprintf(w, "%-4s failed: %s\n", s.Player, s.Error)
			continue
		}
		fmt.Fprintf(w, "%-4s %dx%d at %s", s.Player, s.Info.CroppedSize.Width, s.Info.CroppedSize.Height, s.Boundaries)
		if s.Info.AdditionalTopCrop > 0 {
			fmt.Fprintf(w, ", top trim %dpx", s.Info.AdditionalTopCrop)
		}
		fmt.Fprintf(w, " -> %s\n", s.Files[0])
	}
	return nil
}

type namedRaster struct {
	path string
	r    *raster.Raster
}

// writeCrop saves the crop and, when present, its debug images.
func writeCrop(dir, name string, s *frame.Success) ([]string, error) {
	prefix := filepath.Join(dir, fmt.Sprintf("%s_%s", name, s.Player))
	images := []namedRaster{{prefix + ".png", s.Cropped}}
	if s.Debug != nil {
		images = append(images,
			namedRaster{prefix + "_side_mask.png", raster.FromImage(s.Debug.SideMask)},
			namedRaster{prefix + "_top_mask.png", raster.FromImage(s.Debug.TopMask)},
			namedRaster{prefix + "_overlay.png", s.Debug.Overlay},
		)
	}

	files := make([]string, 0, len(images))
	for _, img := range images {
		if err := raster.Save(img.path, img.r); err != nil {
			return files, err
		}
		files = append(files, img.path)
	}
	return files, nil
}
