// Package cli implements the cobra commands of the blox-fumen tool.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"blox-fumen/internal/config"
	"blox-fumen/internal/frame"
	"blox-fumen/internal/raster"
	"blox-fumen/internal/version"
)

// Exit codes.
const (
	ExitOK               = 0
	ExitError            = 1
	ExitUnsupportedInput = 2
	ExitConfig           = 3
)

// Global flags shared by every subcommand.
var (
	jsonOutput bool
	verbose    bool
	configPath string
)

// exitError carries a specific process exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func configError(err error) error {
	return &exitError{code: ExitConfig, err: err}
}

// inputError maps acquisition failures to the unsupported-input exit code.
func inputError(err error) error {
	if errors.Is(err, raster.ErrUnsupportedInput) {
		return &exitError{code: ExitUnsupportedInput, err: err}
	}
	return err
}

// NewRootCommand creates the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blox-fumen",
		Short: "Crop play-fields out of screenshots and convert them to fumen",
		Long: `blox-fumen locates the 1P (blue) and 2P (red) play-field frames in a
screenshot, strips them, classifies the 10x20 cells of the field and
produces a fumen link for the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline progress to stderr")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (.yaml, .yml, .json, .jsonc)")

	rootCmd.AddCommand(NewCropCommand())
	rootCmd.AddCommand(NewAnalyzeCommand())
	rootCmd.AddCommand(NewFumenCommand())
	rootCmd.AddCommand(NewCaptureCommand())

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute(rootCmd *cobra.Command) int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}
	printError(rootCmd.ErrOrStderr(), err)

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitError
}

func printError(w io.Writer, err error) {
	if jsonOutput {
		data, _ := json.MarshalIndent(map[string]any{
			"error": map[string]any{"message": err.Error()},
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// loadConfig reads --config or returns the defaults.
func loadConfig() (*config.File, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, configError(err)
	}
	return cfg, nil
}

// cropOptions builds validated frame options from the config, wiring the
// standard logger when --verbose is set.
func cropOptions(cfg *config.File) (frame.Options, error) {
	opts, err := cfg.Options()
	if err != nil {
		return opts, configError(err)
	}
	if verbose {
		opts = opts.WithLogger(log.Printf)
	}
	return opts, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
