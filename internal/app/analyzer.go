package app

import (
	"context"
	"fmt"

	"blox-fumen/internal/board"
	"blox-fumen/internal/frame"
	"blox-fumen/internal/fumen"
	"blox-fumen/internal/raster"
)

// Analyzer runs crop, cell classification and fumen encoding on the
// session's current image.
type Analyzer struct {
	State      *State
	Classifier board.Classifier
	Options    frame.Options

	// Progress, when set, is called after each classified cell.
	Progress board.ProgressFunc

	FumenBaseURL string
	Comment      string
}

// Crop runs both player pipelines on the current image. The play-field
// used for analysis is the nested 1P2P crop, or the whole image when that
// pipeline fails.
func (a *Analyzer) Crop() (*raster.Raster, error) {
	a.State.mu.RLock()
	img := a.State.Image
	a.State.mu.RUnlock()
	if img == nil {
		return nil, fmt.Errorf("no image loaded")
	}

	batch := frame.Process(img, a.Options)
	field := batch.Result(frame.OnePlayerTwoPlayer).UnwrapOr(img)
	for _, e := range batch.Errors {
		a.logf("Analyzer: crop %s, using fallback", e)
	}

	a.State.mu.Lock()
	a.State.Crop = &batch
	a.State.Field = field
	a.State.mu.Unlock()

	return field, nil
}

// Analyze crops the current image, classifies its 200 cells and builds
// the fumen link.
func (a *Analyzer) Analyze(ctx context.Context) error {
	if a.Classifier == nil {
		return fmt.Errorf("no classifier configured")
	}

	a.State.mu.Lock()
	a.State.MapCode = nil
	a.State.FumenURL = ""
	a.State.mu.Unlock()

	field, err := a.Crop()
	if err != nil {
		return err
	}

	code, err := board.Analyze(ctx, field, a.Classifier, a.Progress)
	if err != nil {
		return fmt.Errorf("failed to analyze play-field: %w", err)
	}

	url, err := fumen.URL(a.FumenBaseURL, code, a.Comment)
	if err != nil {
		a.logf("Analyzer: fumen link unavailable: %v", err)
		url = ""
	}

	a.State.mu.Lock()
	a.State.MapCode = &code
	a.State.FumenURL = url
	a.State.mu.Unlock()

	a.logf("Analyzer: %d of %d cells filled", code.Filled(), board.Cells)
	return nil
}

func (a *Analyzer) logf(format string, args ...any) {
	if a.Options.Logf != nil {
		a.Options.Logf(format, args...)
	}
}
