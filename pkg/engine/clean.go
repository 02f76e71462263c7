package engine

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxValueLength is the character cap applied to every cleaned value.
	MaxValueLength = 32000
	// TruncationMarker is appended to values cut at MaxValueLength.
	TruncationMarker = " [Text Cut Due To Length]"
)

// Clean flattens newlines to spaces, trims the value and caps it at MaxValueLength characters.
func Clean(raw string) string {
	v := strings.TrimSpace(strings.ReplaceAll(raw, "\n", " "))
	if utf8.RuneCountInString(v) <= MaxValueLength {
		return v
	}
	n := 0
	for i := range v {
		if n == MaxValueLength {
			return v[:i] + TruncationMarker
		}
		n++
	}
	return v
}
