package domain

import (
	"slices"
	"time"
)

// ReadingList is a named, ordered list of book references. References are
// free-form titles or queries and are not resolved against the catalog.
// Creating a list with an existing name replaces it.
type ReadingList struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Books     []string  `json:"books"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReadingList creates a list holding a copy of books.
func NewReadingList(id, name string, books []string, now time.Time) *ReadingList {
	return &ReadingList{
		ID:        id,
		Name:      name,
		Books:     slices.Clone(books),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Contains checks if a reference is in this list.
func (l *ReadingList) Contains(ref string) bool {
	return slices.Contains(l.Books, ref)
}
