// Package catalog provides the read-only audiobook library the session plays from.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/listenupapp/audiobook-mcp/internal/domain"
	domainerrors "github.com/listenupapp/audiobook-mcp/internal/errors"
	"github.com/listenupapp/audiobook-mcp/internal/search"
)

// DefaultSearchLimit caps Search results when the caller gives no limit.
const DefaultSearchLimit = 10

// Facet selects which fields Search matches against.
type Facet string

// Search facets.
const (
	FacetTitle  Facet = "title"
	FacetAuthor Facet = "author"
	FacetGenre  Facet = "genre"
	FacetAll    Facet = "all"
)

// Fields returns the fields matched for the facet. Unknown facets match as FacetAll.
func (f Facet) Fields() []search.Field {
	switch f {
	case FacetTitle:
		return []search.Field{search.FieldTitle}
	case FacetAuthor:
		return []search.Field{search.FieldAuthor}
	case FacetGenre:
		return []search.Field{search.FieldGenre}
	default:
		return []search.Field{search.FieldTitle, search.FieldAuthor, search.FieldGenre, search.FieldNarrator}
	}
}

// Catalog is the read-only view of the library used by the session and tools.
// All matching is case-insensitive substring matching and results keep catalog order.
type Catalog interface {
	// Find returns books whose title, author or description contains query,
	// narrowed by author and genre when they are non-empty.
	Find(ctx context.Context, query, author, genre string) ([]domain.Book, error)
	// Search returns at most limit books matching query on the facet's fields.
	// A limit <= 0 returns no books.
	Search(ctx context.Context, query string, facet Facet, limit int) ([]domain.Book, error)
	// Lookup returns the first book whose title contains title.
	Lookup(ctx context.Context, title string) (domain.Book, error)
	Get(ctx context.Context, id string) (domain.Book, error)
	All(ctx context.Context) []domain.Book
}

// Library is the Catalog implementation backed by a search.Index.
//
// Thread safety: All public methods are safe for concurrent use.
// Replace holds the write lock while the index is rebuilt.
type Library struct {
	mu     sync.RWMutex
	books  []domain.Book
	byID   map[string]int
	index  search.Index
	logger *slog.Logger
}

// NewLibrary indexes books and returns the library.
func NewLibrary(books []domain.Book, index search.Index, logger *slog.Logger) (*Library, error) {
	l := &Library{
		index:  index,
		logger: logger,
	}
	if err := l.Replace(books); err != nil {
		return nil, err
	}
	return l, nil
}

// Replace swaps the library contents. Book IDs must be unique.
func (l *Library) Replace(books []domain.Book) error {
	byID := make(map[string]int, len(books))
	for i, b := range books {
		if b.ID == "" {
			return domainerrors.Validationf("book %q has no id", b.Title)
		}
		if prev, dup := byID[b.ID]; dup {
			return domainerrors.Validationf("duplicate book id %s (%q and %q)", b.ID, books[prev].Title, b.Title)
		}
		byID[b.ID] = i
	}

	books = slices.Clone(books)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.index.Rebuild(books); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeCatalogUnavailable, "rebuild search index")
	}
	l.books = books
	l.byID = byID

	l.logger.Info("catalog loaded", "books", len(books))
	return nil
}

// Find implements Catalog.
func (l *Library) Find(ctx context.Context, query, author, genre string) ([]domain.Book, error) {
	return l.match(ctx, search.Query{
		Clauses: []search.Clause{
			{Fields: []search.Field{search.FieldTitle, search.FieldAuthor, search.FieldDescription}, Needle: query},
			{Fields: []search.Field{search.FieldAuthor}, Needle: author},
			{Fields: []search.Field{search.FieldGenre}, Needle: genre},
		},
	})
}

// Search implements Catalog.
func (l *Library) Search(ctx context.Context, query string, facet Facet, limit int) ([]domain.Book, error) {
	if limit <= 0 {
		return []domain.Book{}, nil
	}
	return l.match(ctx, search.Query{
		Clauses: []search.Clause{{Fields: facet.Fields(), Needle: query}},
		Limit:   limit,
	})
}

// Lookup implements Catalog.
func (l *Library) Lookup(ctx context.Context, title string) (domain.Book, error) {
	books, err := l.match(ctx, search.Query{
		Clauses: []search.Clause{{Fields: []search.Field{search.FieldTitle}, Needle: title}},
		Limit:   1,
	})
	if err != nil {
		return domain.Book{}, err
	}
	if len(books) == 0 {
		return domain.Book{}, domainerrors.NotFoundf("no audiobook found with title %q", title)
	}
	return books[0], nil
}

// Get implements Catalog.
func (l *Library) Get(_ context.Context, id string) (domain.Book, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.byID[id]
	if !ok {
		return domain.Book{}, domainerrors.NotFoundf("book %s not found", id)
	}
	return l.books[i], nil
}

// All implements Catalog.
func (l *Library) All(_ context.Context) []domain.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.books)
}

// Len returns the number of books.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.books)
}

// Close releases the search index.
func (l *Library) Close() error {
	return l.index.Close()
}

func (l *Library) match(ctx context.Context, q search.Query) ([]domain.Book, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids, err := l.index.Match(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("match books: %w", err)
	}

	books := make([]domain.Book, 0, len(ids))
	for _, id := range ids {
		if i, ok := l.byID[id]; ok {
			books = append(books, l.books[i])
		}
	}
	return books, nil
}
