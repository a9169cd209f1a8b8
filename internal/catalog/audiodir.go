package catalog

import (
	"context"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/simonhull/audiometa"

	"github.com/listenupapp/audiobook-mcp/internal/domain"
	domainerrors "github.com/listenupapp/audiobook-mcp/internal/errors"
	"github.com/listenupapp/audiobook-mcp/internal/id"
)

// audioExtensions are the file types read from catalog directories.
var audioExtensions = map[string]bool{
	".m4b": true,
	".m4a": true,
	".mp3": true,
}

// loadAudioDir builds one book per audio file under root, in lexical path order.
// Unreadable files are skipped.
func (l *Loader) loadAudioDir(ctx context.Context, root string) ([]domain.Book, error) {
	var books []domain.Book

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		book, readErr := readAudioFile(ctx, path)
		if readErr != nil {
			l.logger.Warn("skipping unreadable audio file", "path", path, "error", readErr)
			return nil
		}
		books = append(books, book)
		return nil
	})
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeCatalogUnavailable, "scan %s", root)
	}

	l.logger.Debug("scanned audio directory", "path", root, "books", len(books))
	return books, nil
}

func readAudioFile(ctx context.Context, path string) (domain.Book, error) {
	file, err := audiometa.OpenContext(ctx, path)
	if err != nil {
		return domain.Book{}, err
	}
	defer file.Close()

	title := firstNonEmpty(file.Tags.Album, file.Tags.Title, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	author := strings.TrimSpace(file.Tags.Artist)

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return domain.Book{
		ID:       id.Book(title, author),
		Title:    title,
		Author:   author,
		Duration: int(file.Audio.Duration.Seconds()),
		Chapters: max(len(file.Chapters), 1),
		URL:      (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
