package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"blox-fumen/internal/raster"
)

// NewCaptureCommand creates the "capture" command.
func NewCaptureCommand() *cobra.Command {
	flags := &cropFlags{}
	var display int
	var list bool

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture a display and crop its play-fields",
		Long: `Take a screenshot of one display and run the crop pipelines on it,
exactly like "crop" does for an image file.

Examples:
  blox-fumen capture --list
  blox-fumen capture --display 1 --out-dir shots`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				fmt.Fprintf(cmd.OutOrStdout(), "%d active display(s)\n", raster.DisplayCount())
				return nil
			}
			if !cmd.Flags().Changed("display") {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				display = cfg.Capture.Display
			}
			r, err := raster.CaptureDisplay(display)
			if err != nil {
				return inputError(err)
			}
			return runCrop(cmd.OutOrStdout(), r, fmt.Sprintf("display%d", display), flags)
		},
	}

	cmd.Flags().IntVar(&display, "display", 0, "Display index to capture")
	cmd.Flags().BoolVar(&list, "list", false, "Print the number of active displays and exit")
	addCropOutputFlags(cmd, flags)
	return cmd
}
