package domain

import "time"

// Bookmark marks a position in a chapter of a book. Bookmarks belong to the
// book that was current when they were created.
type Bookmark struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Name      string    `json:"name"`
	Position  float64   `json:"position"` // seconds
	Chapter   int       `json:"chapter"`
	CreatedAt time.Time `json:"created_at"`
}
