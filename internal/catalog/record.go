package catalog

import (
	"strings"

	"github.com/listenupapp/audiobook-mcp/internal/domain"
	domainerrors "github.com/listenupapp/audiobook-mcp/internal/errors"
	"github.com/listenupapp/audiobook-mcp/internal/id"
	"github.com/listenupapp/audiobook-mcp/internal/validation"
)

// Record is the on-disk form of a book in catalog files and databases.
type Record struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Title       string `json:"title" yaml:"title" toml:"title" validate:"required"`
	Author      string `json:"author" yaml:"author" toml:"author"`
	Genre       string `json:"genre" yaml:"genre" toml:"genre"`
	Narrator    string `json:"narrator" yaml:"narrator" toml:"narrator"`
	Duration    int    `json:"duration" yaml:"duration" toml:"duration" validate:"gte=0"`
	Chapters    int    `json:"chapters" yaml:"chapters" toml:"chapters" validate:"gte=1"`
	Year        int    `json:"year,omitempty" yaml:"year,omitempty" toml:"year,omitempty" validate:"gte=0"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty"`
}

// Book converts the record. HTML descriptions become Markdown.
func (r Record) Book() domain.Book {
	return domain.Book{
		ID:          r.ID,
		Title:       r.Title,
		Author:      r.Author,
		Genre:       r.Genre,
		Narrator:    r.Narrator,
		Duration:    r.Duration,
		Chapters:    r.Chapters,
		Year:        r.Year,
		Description: htmlToMarkdown(r.Description),
		URL:         r.URL,
	}
}

// catalogFile is the document layout of YAML, TOML and JSON catalogs.
type catalogFile struct {
	Books []Record `json:"books" yaml:"books" toml:"books"`
}

// normalize trims, validates and assigns IDs to records in order.
func normalize(records []Record, v *validation.Validator) ([]domain.Book, error) {
	books := make([]domain.Book, 0, len(records))
	for i, r := range records {
		r.ID = strings.TrimSpace(r.ID)
		r.Title = strings.TrimSpace(r.Title)
		r.Author = strings.TrimSpace(r.Author)
		r.Genre = strings.TrimSpace(r.Genre)
		r.Narrator = strings.TrimSpace(r.Narrator)

		if err := v.Validate(r); err != nil {
			return nil, domainerrors.Wrapf(err, domainerrors.CodeValidation, "catalog record %d (%q)", i+1, r.Title)
		}
		if r.ID == "" {
			r.ID = id.Book(r.Title, r.Author)
		}
		books = append(books, r.Book())
	}
	return books, nil
}
