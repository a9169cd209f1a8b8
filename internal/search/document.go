// Package search matches audiobooks against substring queries.
// Two engines implement Index: a linear scanner and an in-memory Bleve index.
// Both return book IDs in catalog order.
package search

import "github.com/listenupapp/audiobook-mcp/internal/domain"

// Document is the indexed form of a book. Text fields hold folded values.
type Document struct {
	ID          string
	Position    int // Catalog order
	Title       string
	Author      string
	Genre       string
	Narrator    string
	Description string
}

// NewDocument folds the searchable fields of book.
func NewDocument(book domain.Book, position int) *Document {
	return &Document{
		ID:          book.ID,
		Position:    position,
		Title:       Fold(book.Title),
		Author:      Fold(book.Author),
		Genre:       Fold(book.Genre),
		Narrator:    Fold(book.Narrator),
		Description: Fold(book.Description),
	}
}

// Value returns the folded value of field f.
func (d *Document) Value(f Field) string {
	switch f {
	case FieldTitle:
		return d.Title
	case FieldAuthor:
		return d.Author
	case FieldGenre:
		return d.Genre
	case FieldNarrator:
		return d.Narrator
	case FieldDescription:
		return d.Description
	default:
		return ""
	}
}

// ToMap converts the document to a map with lowercase field names.
// This ensures field names match the Bleve index mapping.
func (d *Document) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":                     d.ID,
		"position":               d.Position,
		string(FieldTitle):       d.Title,
		string(FieldAuthor):      d.Author,
		string(FieldGenre):       d.Genre,
		string(FieldNarrator):    d.Narrator,
		string(FieldDescription): d.Description,
	}
}
