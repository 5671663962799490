package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes free text for comparison: lowercase, decompose
// accents, drop whitespace, hyphens, underscores and remaining punctuation.
// Total function; empty input yields empty output.
func Normalize(value string) string {
	if value == "" {
		return ""
	}

	value = strings.ToLower(strings.TrimSpace(value))
	value = norm.NFKD.String(value)

	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from decomposition
		case unicode.IsSpace(r):
		case r == '-' || r == '_':
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractDigits strips every non-digit character.
func ExtractDigits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
