// Copyright (c) 2026 Knihovna. All rights reserved.

package norm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knihovna/api/pkg/norm"
)

/*
TestFold verifies diacritic removal across Czech and general Latin input.
*/
func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"czech_title", "Strély", "Strely"},
		{"full_diacritics", "Příliš žluťoučký kůň", "Prilis zlutoucky kun"},
		{"case_preserved", "ČAPEK", "CAPEK"},
		{"plain_ascii", "Plain Title 42", "Plain Title 42"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, norm.Fold(tt.in))
		})
	}
}

/*
TestText verifies the search-index leaf rule: fold, then strip everything
outside letters, digits and whitespace.
*/
func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation_stripped", "Osudy dobrého vojáka Švejka!", "Osudy dobreho vojaka Svejka"},
		{"hyphen_stripped", "sci-fi", "scifi"},
		{"inner_whitespace_kept", "Karel  Čapek", "Karel  Capek"},
		{"trimmed", "  okraj  ", "okraj"},
		{"only_symbols", "***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, norm.Text(tt.in))
		})
	}
}

/*
TestISBN verifies that hyphen stripping is the only transformation applied
to ISBN values.
*/
func TestISBN(t *testing.T) {
	assert.Equal(t, "9788012345", norm.ISBN("978-80-12345"))
	assert.Equal(t, "978801234X", norm.ISBN("978-80-1234-X"))
	assert.Equal(t, "9788012345", norm.ISBN("9788012345"))
}
