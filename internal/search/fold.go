package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes s for case-insensitive substring matching.
// Field values and needles must both pass through Fold.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	// A Caser holds state and is not safe for concurrent use.
	return cases.Fold().String(norm.NFC.String(s))
}

// Contains reports whether the folded value contains the folded needle.
func Contains(value, needle string) bool {
	return strings.Contains(Fold(value), Fold(needle))
}
