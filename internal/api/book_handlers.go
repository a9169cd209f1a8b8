package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/audiobook-mcp/internal/catalog"
	"github.com/listenupapp/audiobook-mcp/internal/domain"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Searches the catalog. Without a query every book is returned, up to the limit.",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a catalog book by ID",
		Tags:        []string{"Books"},
	}, s.handleGetBook)
}

// ListBooksInput contains parameters for searching the catalog.
type ListBooksInput struct {
	Query string `query:"query" doc:"Case-insensitive substring to match"`
	Type  string `query:"type" enum:"title,author,genre,all" default:"all" doc:"Fields to match"`
	Limit int    `query:"limit" minimum:"1" maximum:"100" default:"10" doc:"Maximum number of books"`
}

// BookListResponse contains a page of books.
type BookListResponse struct {
	Books []domain.Book `json:"books" doc:"Books in catalog order"`
	Total int           `json:"total" doc:"Number of books returned"`
}

// ListBooksOutput wraps the book list for Huma.
type ListBooksOutput struct {
	Body BookListResponse
}

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	var books []domain.Book
	if input.Query == "" {
		books = s.catalog.All(ctx)
		if len(books) > input.Limit {
			books = books[:input.Limit]
		}
	} else {
		var err error
		books, err = s.catalog.Search(ctx, input.Query, catalog.Facet(input.Type), input.Limit)
		if err != nil {
			return nil, apiError(err)
		}
	}
	if books == nil {
		books = []domain.Book{}
	}

	return &ListBooksOutput{
		Body: BookListResponse{Books: books, Total: len(books)},
	}, nil
}

// GetBookInput contains parameters for getting a book.
type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// BookOutput wraps a book for Huma.
type BookOutput struct {
	Body domain.Book
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	book, err := s.catalog.Get(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &BookOutput{Body: book}, nil
}
