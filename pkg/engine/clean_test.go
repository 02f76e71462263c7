package engine

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "value", "value"},
		{"surrounding space", "  value  ", "value"},
		{"newlines", "\nline one\nline two\n", "line one line two"},
		{"exact cap", strings.Repeat("b", MaxValueLength), strings.Repeat("b", MaxValueLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanTruncatesLongValues(t *testing.T) {
	got := Clean(strings.Repeat("a", 40000))
	assert.Equal(t, strings.Repeat("a", MaxValueLength)+TruncationMarker, got)
}

func TestCleanCountsCharactersNotBytes(t *testing.T) {
	got := Clean(strings.Repeat("é", MaxValueLength+1))
	assert.True(t, strings.HasSuffix(got, TruncationMarker))
	body := strings.TrimSuffix(got, TruncationMarker)
	assert.Equal(t, MaxValueLength, utf8.RuneCountInString(body))
	assert.True(t, utf8.ValidString(body))
}

func TestCleanInvariants(t *testing.T) {
	inputs := []string{
		" \n leading",
		"trailing \n\n",
		"mid\ndle",
		strings.Repeat("z\n", 20000),
	}
	limit := MaxValueLength + utf8.RuneCountInString(TruncationMarker)

	for _, in := range inputs {
		got := Clean(in)
		assert.NotContains(t, got, "\n")
		assert.Equal(t, strings.TrimSpace(got), got)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), limit)
	}
}
