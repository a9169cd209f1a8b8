package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/listenupapp/audiobook-mcp/internal/domain"
)

// Backend names a match engine.
type Backend string

// Available backends.
const (
	BackendMemory Backend = "memory"
	BackendBleve  Backend = "bleve"
)

// Index matches queries against an ordered set of books.
//
// Thread safety: implementations are safe for concurrent use. Rebuild may run
// while Match calls are in flight.
type Index interface {
	// Rebuild replaces the indexed books. books is in catalog order.
	Rebuild(books []domain.Book) error
	// Match returns IDs of matching books in catalog order.
	Match(ctx context.Context, q Query) ([]string, error)
	Close() error
}

// Options configures an index.
type Options struct {
	Backend Backend      // Defaults to BackendBleve
	Logger  *slog.Logger // Logger for operations (uses stderr if nil)
}

// New creates an empty index for the configured backend.
func New(opts Options) (Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	switch opts.Backend {
	case BackendMemory:
		return NewMemoryIndex(), nil
	case BackendBleve, "":
		return NewBleveIndex(logger)
	default:
		return nil, fmt.Errorf("unknown search backend %q", opts.Backend)
	}
}
