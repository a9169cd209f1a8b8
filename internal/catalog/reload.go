package catalog

import (
	"context"
	"log/slog"

	"github.com/listenupapp/audiobook-mcp/internal/watcher"
)

// Reloader re-reads the catalog source when it changes on disk.
// A failed reload keeps the current library. IDs are derived from title and
// author when missing, so session state keyed by ID survives reloads.
type Reloader struct {
	path    string
	loader  *Loader
	library *Library
	watcher *watcher.Watcher
	logger  *slog.Logger
}

// NewReloader watches path for changes.
func NewReloader(path string, loader *Loader, library *Library, logger *slog.Logger, opts watcher.Options) (*Reloader, error) {
	w, err := watcher.New(logger, opts)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}

	return &Reloader{
		path:    path,
		loader:  loader,
		library: library,
		watcher: w,
		logger:  logger,
	}, nil
}

// Run reloads on every settled change until ctx is canceled.
func (r *Reloader) Run(ctx context.Context) {
	go func() { _ = r.watcher.Start(ctx) }()

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-r.watcher.Errors():
			r.logger.Warn("catalog watcher error", "error", err)
		case ev := <-r.watcher.Events():
			if ev.Type == watcher.EventRemoved {
				// Editors often replace files on save; wait for the new file.
				continue
			}
			r.Reload(ctx)
		}
	}
}

// Reload reads the source and swaps the library contents.
func (r *Reloader) Reload(ctx context.Context) {
	books, err := r.loader.Load(ctx, r.path)
	if err != nil {
		r.logger.Error("catalog reload failed, keeping current catalog", "path", r.path, "error", err)
		return
	}
	if err := r.library.Replace(books); err != nil {
		r.logger.Error("catalog reload failed, keeping current catalog", "path", r.path, "error", err)
		return
	}
	r.logger.Info("catalog reloaded", "path", r.path, "books", len(books))
}

// Stop stops watching.
func (r *Reloader) Stop() error {
	return r.watcher.Stop()
}
