// Package id issues identifiers for catalog books, bookmarks and reading lists.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for generated identifiers.
const (
	PrefixBook        = "book"
	PrefixBookmark    = "bmk"
	PrefixReadingList = "rl"
)

// bookNamespace is the UUID v5 namespace for derived book IDs.
var bookNamespace = uuid.MustParse("5b0c2f8e-5d1a-4c39-9a63-0f7a8e2d6c11")

// Generate creates a prefixed random ID using NanoID.
// Format: prefix-nanoid (e.g., "bmk-V1StGXR8_Z5jdHi6B-myT").
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// Book derives a stable book ID from identifying fields.
// The same title and author always yield the same ID, so catalog reloads
// keep bookmarks and progress attached to their books.
func Book(title, author string) string {
	key := strings.ToLower(strings.TrimSpace(title)) + "\x00" + strings.ToLower(strings.TrimSpace(author))
	return PrefixBook + "-" + uuid.NewSHA1(bookNamespace, []byte(key)).String()
}
