package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"blox-fumen/internal/app"
	"blox-fumen/internal/board"
	"blox-fumen/internal/classifier"
	"blox-fumen/internal/raster"
)

// analyzeFlags holds the flag values for the analyze command.
type analyzeFlags struct {
	input      inputFlags
	model      string
	library    string
	comment    string
	baseURL    string
	resultPath string
}

// cellClassifier is a board.Classifier holding native resources.
type cellClassifier interface {
	board.Classifier
	Close() error
}

// newClassifier opens the cell model. Tests replace it.
var newClassifier = func(model, library string) (cellClassifier, error) {
	if library != "" {
		classifier.SetLibraryPath(library)
	}
	return classifier.NewONNX(model)
}

// NewAnalyzeCommand creates the "analyze" command.
func NewAnalyzeCommand() *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Read the play-field of a screenshot and print its fumen link",
		Long: `Crop the play-field (falling back to the whole image when no frame is
found), classify each of the 200 cells with the ONNX cell model and print
the resulting map code and fumen URL.

Examples:
  blox-fumen analyze shot.png
  blox-fumen analyze --model models/cells.onnx --comment "opener" shot.png
  blox-fumen analyze --json --save-result result.json shot.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.input.isVideo = cmd.Flags().Changed("video-at")
			r, name, err := loadInput(cmd.Context(), args[0], flags.input)
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), r, name, flags)
		},
	}

	cmd.Flags().DurationVar(&flags.input.videoAt, "video-at", 0, "Treat the input as a video and use the frame at this offset")
	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "Path to the ONNX cell model")
	cmd.Flags().StringVar(&flags.library, "onnxruntime", "", "Path to the onnxruntime shared library")
	cmd.Flags().StringVar(&flags.comment, "comment", "", "Comment stored in the fumen page")
	cmd.Flags().StringVar(&flags.baseURL, "fumen-base", "", "Fumen viewer base URL")
	cmd.Flags().StringVar(&flags.resultPath, "save-result", "", "Write the analysis result as JSON to this path")

	return cmd
}

func runAnalyze(ctx context.Context, w io.Writer, r *raster.Raster, name string, flags *analyzeFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := cropOptions(cfg)
	if err != nil {
		return err
	}

	model := firstNonEmpty(flags.model, cfg.Model.Path)
	c, err := newClassifier(model, firstNonEmpty(flags.library, cfg.Model.LibraryPath))
	if err != nil {
		return fmt.Errorf("failed to load cell model: %w", err)
	}
	defer c.Close()

	state := app.NewState()
	state.SetImage(name, r)

	analyzer := &app.Analyzer{
		State:        state,
		Classifier:   c,
		Options:      opts,
		FumenBaseURL: firstNonEmpty(flags.baseURL, cfg.Fumen.BaseURL),
		Comment:      firstNonEmpty(flags.comment, cfg.Fumen.Comment),
	}
	if verbose {
		// One line per classified column.
		analyzer.Progress = func(done, total int) {
			if done%board.Rows == 0 {
				log.Printf("Analyze: %d/%d cells", done, total)
			}
		}
	}
	if err := analyzer.Analyze(ctx); err != nil {
		return err
	}

	if flags.resultPath != "" {
		if err := state.SaveResult(flags.resultPath); err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}
	}

	res := state.Result()
	if jsonOutput {
		return writeJSON(w, res)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(w, "crop: %s\n", e)
	}
	for _, row := range res.Field {
		fmt.Fprintln(w, row)
	}
	fmt.Fprintf(w, "map code: %s\n", res.MapCode)
	fmt.Fprintf(w, "fumen: %s\n", res.FumenURL)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
