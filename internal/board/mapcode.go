package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLength is returned when a map code does not hold one symbol per cell.
	ErrInvalidLength = errors.New("map code must be 200 symbols")
	// ErrInvalidSymbol is returned for symbols outside 0-8.
	ErrInvalidSymbol = errors.New("invalid map code symbol")
)

// MapCode holds one label per cell in column-major order: index col*20+row,
// with row 0 at the top of the field.
type MapCode [Cells]Label

// NewMapCode builds a MapCode from column-major labels.
func NewMapCode(labels []Label) (MapCode, error) {
	var m MapCode
	if len(labels) != Cells {
		return m, fmt.Errorf("%w, got %d", ErrInvalidLength, len(labels))
	}
	for i, l := range labels {
		if !l.Valid() {
			return m, fmt.Errorf("%w: label %d at %d", ErrInvalidSymbol, l, i)
		}
		m[i] = l
	}
	return m, nil
}

// ParseMapCode parses the 200-digit textual form.
func ParseMapCode(s string) (MapCode, error) {
	var m MapCode
	s = strings.TrimSpace(s)
	if len(s) != Cells {
		return m, fmt.Errorf("%w, got %d", ErrInvalidLength, len(s))
	}
	for i := 0; i < len(s); i++ {
		l, err := ParseLabel(s[i])
		if err != nil {
			return m, fmt.Errorf("position %d: %w", i, err)
		}
		m[i] = l
	}
	return m, nil
}

func index(col, row int) int {
	return col*Rows + row
}

// At returns the label at (col, row).
func (m *MapCode) At(col, row int) Label {
	return m[index(col, row)]
}

// Set stores the label at (col, row).
func (m *MapCode) Set(col, row int, l Label) {
	m[index(col, row)] = l
}

func (m MapCode) String() string {
	var b strings.Builder
	b.Grow(Cells)
	for _, l := range m {
		b.WriteByte(l.Symbol())
	}
	return b.String()
}

// Rows returns the field as Rows strings of piece names, top row first.
func (m *MapCode) Rows() []string {
	rows := make([]string, Rows)
	var b strings.Builder
	for row := 0; row < Rows; row++ {
		b.Reset()
		for col := 0; col < Columns; col++ {
			b.WriteString(m.At(col, row).Name())
		}
		rows[row] = b.String()
	}
	return rows
}

// Filled returns the number of non-empty cells.
func (m *MapCode) Filled() int {
	n := 0
	for _, l := range m {
		if l != Empty {
			n++
		}
	}
	return n
}
