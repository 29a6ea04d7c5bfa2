package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"blox-fumen/internal/board"
	"blox-fumen/internal/fumen"
)

// fumenFlags holds the flag values for the fumen command.
type fumenFlags struct {
	comment string
	baseURL string
}

// NewFumenCommand creates the "fumen" command.
func NewFumenCommand() *cobra.Command {
	flags := &fumenFlags{}

	cmd := &cobra.Command{
		Use:   "fumen <map-code>",
		Short: "Convert a 200-digit map code into a fumen link",
		Long: `Convert a map code (200 digits 0-8, column-major, top row first) into a
fumen viewer link.

Labels: 0 empty, 1 I, 2 O, 3 T, 4 L, 5 J, 6 S, 7 Z, 8 garbage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFumen(cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.comment, "comment", "", "Comment stored in the fumen page")
	cmd.Flags().StringVar(&flags.baseURL, "fumen-base", "", "Fumen viewer base URL")
	return cmd
}

func runFumen(w io.Writer, code string, flags *fumenFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := board.ParseMapCode(code)
	if err != nil {
		return &exitError{code: ExitUnsupportedInput, err: err}
	}
	url, err := fumen.URL(firstNonEmpty(flags.baseURL, cfg.Fumen.BaseURL), m, firstNonEmpty(flags.comment, cfg.Fumen.Comment))
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(w, map[string]any{
			"map_code":  m.String(),
			"field":     m.Rows(),
			"fumen_url": url,
		})
	}
	fmt.Fprintln(w, url)
	return nil
}
