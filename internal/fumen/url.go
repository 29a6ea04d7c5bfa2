package fumen

import (
	"strings"

	"blox-fumen/internal/board"
)

// DefaultBaseURL is the viewer used when no base is configured.
const DefaultBaseURL = "https://knewjade.github.io/fumen-for-mobile/"

// EncodeMapCode encodes a single-page fumen for m.
func EncodeMapCode(m board.MapCode, comment string) (string, error) {
	return Encode([]Page{{Field: FromMapCode(m), Comment: comment}})
}

// URL returns the viewer link for m. An empty base selects DefaultBaseURL.
func URL(base string, m board.MapCode, comment string) (string, error) {
	data, err := EncodeMapCode(m, comment)
	if err != nil {
		return "", err
	}
	if base == "" {
		base = DefaultBaseURL
	}
	base = strings.TrimSuffix(base, "#?d=")
	return base + "#?d=" + data, nil
}
