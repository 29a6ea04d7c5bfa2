package board

import "fmt"

// Label is the classification of a single cell.
type Label uint8

const (
	Empty Label = iota
	I
	O
	T
	L
	J
	S
	Z
	Garbage

	numLabels = iota
)

const labelNames = "_IOTLJSZX"

// Name returns the one-letter piece name (_ for empty, X for garbage).
func (l Label) Name() string {
	if !l.Valid() {
		return "?"
	}
	return labelNames[l : l+1]
}

// Valid reports whether l is one of the nine known labels.
func (l Label) Valid() bool {
	return l < numLabels
}

func (l Label) String() string {
	return l.Name()
}

// Symbol returns the map code digit for l.
func (l Label) Symbol() byte {
	return '0' + byte(l)
}

// ParseLabel converts a map code digit into a Label.
func ParseLabel(c byte) (Label, error) {
	if c < '0' || c >= '0'+numLabels {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, c)
	}
	return Label(c - '0'), nil
}
