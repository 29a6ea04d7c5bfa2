package fumen

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// Version is the fumen data prefix produced by Encode.
const Version = "v115@"

const (
	encodeTable = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	asciiTable  = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

	maxRepeat        = len(encodeTable) - 1
	maxCommentLength = 4095

	firstChunk = 42
	chunk      = 47
)

// Page is one frame of a fumen. A nil Field repeats the previous page's
// field after line clears.
type Page struct {
	Field   *Field
	Comment string
}

// pollBuffer collects base-64 digits, least significant first.
type pollBuffer struct {
	digits []int
}

func (b *pollBuffer) push(value, n int) {
	for i := 0; i < n; i++ {
		b.digits = append(b.digits, value%len(encodeTable))
		value /= len(encodeTable)
	}
}

func (b *pollBuffer) String() string {
	var s strings.Builder
	s.Grow(len(b.digits))
	for _, d := range b.digits {
		s.WriteByte(encodeTable[d])
	}
	return s.String()
}

// Encode serializes pages into a v115 fumen string.
func Encode(pages []Page) (string, error) {
	if len(pages) == 0 {
		return "", fmt.Errorf("at least one page is required")
	}

	var buf pollBuffer
	prevField := NewField()
	prevComment := ""
	lastRepeat := -1

	for i, page := range pages {
		field := prevField.Copy()
		if page.Field != nil {
			field = page.Field.Copy()
		}

		var fieldBuf pollBuffer
		changed := encodeField(&fieldBuf, prevField, field)
		switch {
		case changed:
			buf.digits = append(buf.digits, fieldBuf.digits...)
			lastRepeat = -1
		case lastRepeat < 0 || buf.digits[lastRepeat] == maxRepeat:
			buf.digits = append(buf.digits, fieldBuf.digits...)
			buf.push(0, 1)
			lastRepeat = len(buf.digits) - 1
		default:
			buf.digits[lastRepeat]++
		}

		commentChanged := page.Comment != prevComment
		buf.push(encodeAction(i == 0, commentChanged), 3)
		if commentChanged {
			if err := encodeComment(&buf, page.Comment); err != nil {
				return "", fmt.Errorf("page %d: %w", i, err)
			}
			prevComment = page.Comment
		}

		field.ClearLines()
		prevField = field
	}

	return Version + split(buf.String()), nil
}

// encodeField appends the run-length encoded difference between prev and
// cur, scanning from the top row down to the garbage row. It reports false
// when the two fields are identical.
func encodeField(buf *pollBuffer, prev, cur *Field) bool {
	diff := func(i int) int {
		x, y := i%Width, Height-1-i/Width
		return int(cur.At(x, y)) - int(prev.At(x, y)) + 8
	}

	run, count := diff(0), 0
	for i := 1; i < AllCells; i++ {
		d := diff(i)
		if d == run {
			count++
			continue
		}
		buf.push(run*AllCells+count, 2)
		run, count = d, 0
	}
	buf.push(run*AllCells+count, 2)

	return !(run == 8 && count == AllCells-1)
}

// encodeAction packs the page flags with an empty piece at the spawn
// position, which encodes as type, rotation and position zero.
func encodeAction(first, comment bool) int {
	const (
		lock   = true
		rise   = false
		mirror = false
	)
	flags := 0
	for _, set := range []bool{!lock, comment, first, mirror, rise} {
		flags *= 2
		if set {
			flags++
		}
	}
	return flags * AllCells * 4 * 8
}

func encodeComment(buf *pollBuffer, comment string) error {
	escaped := escape(comment)
	n := len(escaped)
	if n > maxCommentLength {
		n = maxCommentLength
	}
	buf.push(n, 2)
	for i := 0; i < n; i += 4 {
		value, scale := 0, 1
		for j := i; j < i+4 && j < n; j++ {
			idx := strings.IndexByte(asciiTable, escaped[j])
			if idx < 0 {
				return fmt.Errorf("comment byte %q cannot be encoded", escaped[j])
			}
			value += idx * scale
			scale *= len(asciiTable)
		}
		buf.push(value, 5)
	}
	return nil
}

// escape percent-encodes s the way fumen viewers unescape comments:
// %XX for code units below 256 and %uXXXX above.
func escape(s string) string {
	const keep = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789@*_+-./"
	var b strings.Builder
	for _, u := range utf16.Encode([]rune(s)) {
		switch {
		case u < 128 && strings.IndexByte(keep, byte(u)) >= 0:
			b.WriteByte(byte(u))
		case u < 256:
			fmt.Fprintf(&b, "%%%02X", u)
		default:
			fmt.Fprintf(&b, "%%u%04X", u)
		}
	}
	return b.String()
}

// split inserts '?' after the first 42 characters and then every 47.
func split(data string) string {
	if len(data) <= firstChunk {
		return data
	}
	parts := []string{data[:firstChunk]}
	for rest := data[firstChunk:]; len(rest) > 0; {
		n := min(chunk, len(rest))
		parts = append(parts, rest[:n])
		rest = rest[n:]
	}
	return strings.Join(parts, "?")
}
