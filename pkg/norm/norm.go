// Copyright (c) 2026 Knihovna. All rights reserved.

// Package norm folds arbitrary Unicode strings into plain ASCII search text.
//
// # Usage
//
// The catalog stores a diacritic-free shadow copy of every searchable field
// (e.g., "Strély" → "Strely") so that queries typed without accents still
// match Czech titles and names. This package owns that folding.
package norm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold removes diacritics from s while preserving case and all other characters.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Recomposes to NFC.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		// Folding is best-effort; an untransformable input is returned as-is.
		return s
	}
	return result
}

// Text folds s and strips every character outside letters, digits and
// whitespace. This is the leaf rule for the normalized search index.
func Text(s string) string {
	folded := Fold(s)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r)) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// ISBN strips hyphens from s and nothing else.
//
// ISBNs are indexed format-insensitively: "978-80-123" and "97880123" must
// compare equal, but the value is otherwise kept verbatim.
func ISBN(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "-", ""))
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
