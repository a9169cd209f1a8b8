// Package domain contains the entities of an audiobook playback session.
package domain

// Book is an immutable catalog record. Books are identified by ID; the title
// is a display string only.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Narrator    string `json:"narrator"`
	Duration    int    `json:"duration"` // seconds
	Chapters    int    `json:"chapters"`
	Year        int    `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"` // Source locator, e.g. mock://dune-audiobook.mp3
}

// HasChapter reports whether n is a valid chapter number for this book.
func (b Book) HasChapter(n int) bool {
	return n >= 1 && n <= b.Chapters
}
