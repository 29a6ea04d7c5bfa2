// Package fumen encodes play-fields into fumen v115 strings and viewer URLs.
package fumen

import "blox-fumen/internal/board"

// Block is a fumen cell value.
type Block uint8

const (
	Empty Block = iota
	I
	L
	O
	Z
	T
	J
	S
	Gray
)

// Field dimensions. Fumen fields are 23 rows tall plus a garbage row below
// y=0 that is encoded but never shown by the board package.
const (
	Width     = 10
	Height    = 23
	PlayCells = Width * Height
	AllCells  = PlayCells + Width
)

var blockByLabel = [...]Block{
	board.Empty:   Empty,
	board.I:       I,
	board.O:       O,
	board.T:       T,
	board.L:       L,
	board.J:       J,
	board.S:       S,
	board.Z:       Z,
	board.Garbage: Gray,
}

// BlockFor maps a cell label to its fumen block.
func BlockFor(l board.Label) Block {
	if !l.Valid() {
		return Empty
	}
	return blockByLabel[l]
}

// Field is a fumen play-field. y=0 is the bottom row; y=-1 addresses the
// garbage row.
type Field struct {
	play    [PlayCells]Block
	garbage [Width]Block
}

// NewField returns an empty field.
func NewField() *Field {
	return &Field{}
}

// FromMapCode places the 20-row map code at the bottom of a fumen field.
// Map code row 0 is the top of the play-field, so it lands on y=19.
func FromMapCode(m board.MapCode) *Field {
	f := NewField()
	for col := 0; col < board.Columns; col++ {
		for row := 0; row < board.Rows; row++ {
			f.Set(col, board.Rows-1-row, BlockFor(m.At(col, row)))
		}
	}
	return f
}

// At returns the block at (x, y). Out-of-range cells read as Empty.
func (f *Field) At(x, y int) Block {
	if x < 0 || x >= Width || y < -1 || y >= Height {
		return Empty
	}
	if y == -1 {
		return f.garbage[x]
	}
	return f.play[y*Width+x]
}

// Set stores b at (x, y). Out-of-range writes are ignored.
func (f *Field) Set(x, y int, b Block) {
	if x < 0 || x >= Width || y < -1 || y >= Height {
		return
	}
	if y == -1 {
		f.garbage[x] = b
		return
	}
	f.play[y*Width+x] = b
}

// Copy returns an independent copy of f.
func (f *Field) Copy() *Field {
	c := *f
	return &c
}

// ClearLines removes every filled play row and drops the rows above it.
func (f *Field) ClearLines() int {
	var kept [PlayCells]Block
	n, cleared := 0, 0
	for y := 0; y < Height; y++ {
		row := f.play[y*Width : (y+1)*Width]
		if filled(row) {
			cleared++
			continue
		}
		copy(kept[n*Width:], row)
		n++
	}
	f.play = kept
	return cleared
}

func filled(row []Block) bool {
	for _, b := range row {
		if b == Empty {
			return false
		}
	}
	return true
}

// String renders the field top row first, one letter per cell, in the
// same alphabet as board labels. The garbage row is omitted.
func (f *Field) String() string {
	const names = "_ILOZTJSX"
	buf := make([]byte, 0, Height*(Width+1))
	for y := Height - 1; y >= 0; y-- {
		for x := 0; x < Width; x++ {
			buf = append(buf, names[f.At(x, y)])
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
