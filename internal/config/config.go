// Package config loads crop and analysis settings from YAML or JSON(C) files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"blox-fumen/internal/classifier"
	"blox-fumen/internal/frame"
	"blox-fumen/internal/fumen"
)

// File is the on-disk configuration. Fields left out of the file keep
// their defaults.
type File struct {
	Crop    Crop    `json:"crop" yaml:"crop"`
	Model   Model   `json:"model" yaml:"model"`
	Fumen   Fumen   `json:"fumen" yaml:"fumen"`
	Capture Capture `json:"capture" yaml:"capture"`
}

// Crop mirrors frame.Options.
type Crop struct {
	Scan         frame.ScanParams `json:"scan" yaml:"scan"`
	TopCropRatio float64          `json:"top_crop_ratio" yaml:"top_crop_ratio"`
	Debug        bool             `json:"debug" yaml:"debug"`
}

// Model locates the cell classifier.
type Model struct {
	Path        string `json:"path" yaml:"path"`
	LibraryPath string `json:"library_path" yaml:"library_path"`
}

// Fumen controls the generated viewer link.
type Fumen struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	Comment string `json:"comment" yaml:"comment"`
}

// Capture selects the display for screen capture.
type Capture struct {
	Display int `json:"display" yaml:"display"`
}

// Default returns the built-in configuration.
func Default() *File {
	opts := frame.DefaultOptions()
	return &File{
		Crop: Crop{
			Scan:         opts.Scan,
			TopCropRatio: opts.AdditionalTopCropRatio,
		},
		Model: Model{Path: classifier.DefaultModelPath},
		Fumen: Fumen{BaseURL: fumen.DefaultBaseURL},
	}
}

// Load reads path on top of the defaults. The format follows the extension:
// .yaml/.yml for YAML, .json/.jsonc for JSON with comments.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if _, err := cfg.Options(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Options returns validated crop options.
func (f *File) Options() (frame.Options, error) {
	opts := frame.DefaultOptions().
		WithScan(f.Crop.Scan).
		WithTopCropRatio(f.Crop.TopCropRatio).
		WithDebug(f.Crop.Debug)
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Save writes f as YAML.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
