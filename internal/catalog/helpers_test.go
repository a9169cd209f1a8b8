package catalog

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/listenupapp/audiobook-mcp/internal/domain"
	"github.com/listenupapp/audiobook-mcp/internal/search"
	"github.com/listenupapp/audiobook-mcp/internal/validation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLoader() *Loader {
	return NewLoader(validation.New(), discardLogger())
}

// newTestLibraries returns a library per search backend over books.
func newTestLibraries(t *testing.T, books []domain.Book) map[search.Backend]*Library {
	t.Helper()

	libs := map[search.Backend]*Library{}
	for _, backend := range []search.Backend{search.BackendMemory, search.BackendBleve} {
		idx, err := search.New(search.Options{Backend: backend, Logger: discardLogger()})
		require.NoError(t, err)

		lib, err := NewLibrary(books, idx, discardLogger())
		require.NoError(t, err)
		t.Cleanup(func() { _ = lib.Close() })
		libs[backend] = lib
	}
	return libs
}

func titles(books []domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}
