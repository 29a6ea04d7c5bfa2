package board

import (
	"context"
	"fmt"
	"image"

	"blox-fumen/internal/raster"
)

// Classifier labels a single cell image.
type Classifier interface {
	Classify(ctx context.Context, cell image.Image) (Label, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, cell image.Image) (Label, error)

func (f ClassifierFunc) Classify(ctx context.Context, cell image.Image) (Label, error) {
	return f(ctx, cell)
}

// ProgressFunc is called after each classified cell.
type ProgressFunc func(done, total int)

// Analyze splits a cropped play-field into the standard grid and classifies
// every cell, column by column.
func Analyze(ctx context.Context, field *raster.Raster, c Classifier, progress ProgressFunc) (MapCode, error) {
	var m MapCode
	if field == nil || field.Empty() {
		return m, fmt.Errorf("no play-field to analyze")
	}
	if field.Width() < Columns || field.Height() < Rows {
		return m, fmt.Errorf("play-field %dx%d is smaller than the %dx%d grid", field.Width(), field.Height(), Columns, Rows)
	}

	spec := StandardSpec()
	w, h := field.Width(), field.Height()
	done := 0
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			if err := ctx.Err(); err != nil {
				return m, err
			}
			cell := field.Crop(spec.CellRect(w, h, col, row))
			l, err := c.Classify(ctx, cell.Image())
			if err != nil {
				return m, fmt.Errorf("failed to classify cell %d,%d: %w", col, row, err)
			}
			if !l.Valid() {
				return m, fmt.Errorf("cell %d,%d: %w: label %d", col, row, ErrInvalidSymbol, l)
			}
			m.Set(col, row, l)
			done++
			if progress != nil {
				progress(done, Cells)
			}
		}
	}
	return m, nil
}
