package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/listenupapp/audiobook-mcp/internal/domain"
	domainerrors "github.com/listenupapp/audiobook-mcp/internal/errors"
	"github.com/listenupapp/audiobook-mcp/internal/validation"
)

// Loader reads books from a catalog source.
//
// Supported sources:
//   - "" : the built-in reference library
//   - .yaml, .yml, .toml, .json : a document with a top-level "books" list
//   - .db, .sqlite, .sqlite3 : a SQLite database with a "books" table
//   - a directory : audio files (.m4b, .m4a, .mp3) read with audiometa
type Loader struct {
	validator *validation.Validator
	logger    *slog.Logger
}

// NewLoader creates a loader.
func NewLoader(v *validation.Validator, logger *slog.Logger) *Loader {
	return &Loader{validator: v, logger: logger}
}

// Load reads and validates every book from path, in source order.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Book, error) {
	if path == "" {
		return Reference(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeCatalogUnavailable, "open catalog %s", path)
	}
	if info.IsDir() {
		return l.loadAudioDir(ctx, path)
	}

	var records []Record
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".toml", ".json":
		records, err = readDocument(path, ext)
	case ".db", ".sqlite", ".sqlite3":
		records, err = readSQLite(ctx, path)
	default:
		return nil, domainerrors.Validationf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeCatalogUnavailable, "read catalog %s", path)
	}

	books, err := normalize(records, l.validator)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("read catalog", "path", path, "books", len(books))
	return books, nil
}

func readDocument(path, ext string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc catalogFile
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".toml":
		_, err = toml.Decode(string(data), &doc)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		err = dec.Decode(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", strings.TrimPrefix(ext, "."), err)
	}
	return doc.Books, nil
}
