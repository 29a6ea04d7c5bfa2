// Package board partitions a cropped play-field into cells and holds the
// resulting map code.
package board

import (
	"fmt"
	"image"
)

// Spec defines the cell grid of a play-field.
type Spec struct {
	Name    string `json:"name" yaml:"name"`
	Columns int    `json:"columns" yaml:"columns"`
	Rows    int    `json:"rows" yaml:"rows"`
}

// Standard play-field dimensions.
const (
	Columns = 10
	Rows    = 20
	Cells   = Columns * Rows
)

// StandardSpec returns the 10×20 play-field.
func StandardSpec() Spec {
	return Spec{Name: "standard", Columns: Columns, Rows: Rows}
}

// Cells returns the number of cells in the grid.
func (s Spec) Cells() int {
	return s.Columns * s.Rows
}

// Validate checks that the grid is usable.
func (s Spec) Validate() error {
	if s.Columns <= 0 || s.Rows <= 0 {
		return fmt.Errorf("grid %dx%d must have positive dimensions", s.Columns, s.Rows)
	}
	return nil
}

// CellRect returns the pixel rectangle of cell (col, row) on a width×height
// play-field. Cell edges are floored so adjacent cells tile the field with
// no gaps or overlaps.
func (s Spec) CellRect(width, height, col, row int) image.Rectangle {
	x0 := col * width / s.Columns
	x1 := (col + 1) * width / s.Columns
	y0 := row * height / s.Rows
	y1 := (row + 1) * height / s.Rows
	return image.Rect(x0, y0, x1, y1)
}
