package fumen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blox-fumen/internal/board"
)

func mapCode(t *testing.T, set func(m *board.MapCode)) board.MapCode {
	t.Helper()
	var m board.MapCode
	if set != nil {
		set(&m)
	}
	return m
}

func TestEncodeEmptyField(t *testing.T) {
	got, err := Encode([]Page{{Field: NewField()}})
	require.NoError(t, err)
	assert.Equal(t, "v115@vhAAgH", got)
}

func TestEncodeMapCodeBottomLeftI(t *testing.T) {
	m := mapCode(t, func(m *board.MapCode) { m.Set(0, 19, board.I) })

	got, err := EncodeMapCode(m, "")
	require.NoError(t, err)
	assert.Equal(t, "v115@bhwhSeAgH", got)
}

func TestEncodeRepeatsUnchangedField(t *testing.T) {
	got, err := Encode([]Page{{Field: NewField()}, {}})
	require.NoError(t, err)
	assert.Equal(t, "v115@vhBAgHAAA", got)
}

func TestEncodeInheritsClearedField(t *testing.T) {
	f := NewField()
	for x := 0; x < Width; x++ {
		f.Set(x, 0, Gray)
	}
	f.Set(4, 1, T)

	inherited, err := Encode([]Page{{Field: f}, {}})
	require.NoError(t, err)

	cleared := NewField()
	cleared.Set(4, 0, T)
	explicit, err := Encode([]Page{{Field: f}, {Field: cleared}})
	require.NoError(t, err)

	assert.Equal(t, explicit, inherited)
}

func TestEncodeComment(t *testing.T) {
	got, err := Encode([]Page{{Field: NewField(), Comment: "a"}})
	require.NoError(t, err)
	assert.Equal(t, "v115@vhAAgWBABBAAA", got)
}

func TestEncodeRequiresPages(t *testing.T) {
	_, err := Encode(nil)
	assert.Error(t, err)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "a%20b", escape("a b"))
	assert.Equal(t, "%E9", escape("é"))
	assert.Equal(t, "%u3042", escape("あ"))
	assert.Equal(t, "A-z_0.9/@*+", escape("A-z_0.9/@*+"))
}

func TestSplit(t *testing.T) {
	short := strings.Repeat("A", 42)
	assert.Equal(t, short, split(short))

	long := strings.Repeat("A", 42) + strings.Repeat("B", 47) + "CC"
	assert.Equal(t, strings.Repeat("A", 42)+"?"+strings.Repeat("B", 47)+"?CC", split(long))
}

func TestFromMapCodeOrientation(t *testing.T) {
	m := mapCode(t, func(m *board.MapCode) {
		m.Set(0, 19, board.I)
		m.Set(9, 0, board.Garbage)
		m.Set(3, 10, board.O)
	})

	f := FromMapCode(m)

	assert.Equal(t, I, f.At(0, 0))
	assert.Equal(t, Gray, f.At(9, 19))
	assert.Equal(t, O, f.At(3, 9))
	assert.Equal(t, Empty, f.At(0, -1), "garbage row stays empty")
	assert.Equal(t, Empty, f.At(0, 22))
}

func TestBlockFor(t *testing.T) {
	want := map[board.Label]Block{
		board.Empty: Empty, board.I: I, board.O: O, board.T: T, board.L: L,
		board.J: J, board.S: S, board.Z: Z, board.Garbage: Gray,
	}
	for l, b := range want {
		assert.Equal(t, b, BlockFor(l), l.Name())
	}
	assert.Equal(t, Empty, BlockFor(board.Label(99)))
}

func TestClearLines(t *testing.T) {
	f := NewField()
	for x := 0; x < Width; x++ {
		f.Set(x, 0, Gray)
		f.Set(x, 2, Gray)
	}
	f.Set(0, 1, I)
	f.Set(5, 3, T)
	f.Set(2, -1, Gray)

	assert.Equal(t, 2, f.ClearLines())
	assert.Equal(t, I, f.At(0, 0))
	assert.Equal(t, T, f.At(5, 1))
	assert.Equal(t, Empty, f.At(5, 3))
	assert.Equal(t, Gray, f.At(2, -1), "garbage row untouched")
}

func TestFieldString(t *testing.T) {
	f := NewField()
	f.Set(0, 0, L)
	lines := strings.Split(strings.TrimSuffix(f.String(), "\n"), "\n")
	require.Len(t, lines, Height)
	assert.Equal(t, "L_________", lines[Height-1])
}

func TestURL(t *testing.T) {
	got, err := URL("", board.MapCode{}, "")
	require.NoError(t, err)
	assert.Equal(t, "https://knewjade.github.io/fumen-for-mobile/#?d=v115@vhAAgH", got)

	got, err = URL("https://fumen.zui.jp/#?d=", board.MapCode{}, "")
	require.NoError(t, err)
	assert.Equal(t, "https://fumen.zui.jp/#?d=v115@vhAAgH", got)
}
