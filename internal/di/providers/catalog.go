package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/listenupapp/audiobook-mcp/internal/catalog"
	"github.com/listenupapp/audiobook-mcp/internal/config"
	"github.com/listenupapp/audiobook-mcp/internal/logger"
	"github.com/listenupapp/audiobook-mcp/internal/search"
	"github.com/listenupapp/audiobook-mcp/internal/validation"
	"github.com/listenupapp/audiobook-mcp/internal/watcher"
)

// CatalogHandle wraps the library with its optional reloader.
type CatalogHandle struct {
	*catalog.Library
	reloader *catalog.Reloader
	cancel   context.CancelFunc
}

// Watching reports whether the catalog source is being watched.
func (h *CatalogHandle) Watching() bool {
	return h.reloader != nil
}

// Shutdown implements do.Shutdownable.
func (h *CatalogHandle) Shutdown() error {
	var errs []error
	if h.cancel != nil {
		h.cancel()
	}
	if h.reloader != nil {
		errs = append(errs, h.reloader.Stop())
	}
	errs = append(errs, h.Close())
	return errors.Join(errs...)
}

// ProvideValidator provides the struct validator.
func ProvideValidator(_ do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideCatalog loads the configured catalog source into a searchable library.
// Without a path the built-in reference catalog is used.
func ProvideCatalog(i do.Injector) (*CatalogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)

	index, err := search.New(search.Options{
		Backend: search.Backend(cfg.Catalog.Backend),
		Logger:  log.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}

	books := catalog.Reference()
	source := "built-in"
	loader := catalog.NewLoader(v, log.Logger)
	if cfg.Catalog.Path != "" {
		books, err = loader.Load(context.Background(), cfg.Catalog.Path)
		if err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		source = cfg.Catalog.Path
	}

	lib, err := catalog.NewLibrary(books, index, log.Logger)
	if err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	handle := &CatalogHandle{Library: lib}

	if cfg.Catalog.Watch {
		reloader, err := catalog.NewReloader(cfg.Catalog.Path, loader, lib, log.Logger, watcher.Options{})
		if err != nil {
			// Non-fatal: the catalog still serves, it just won't reload.
			log.Warn("Catalog watching unavailable", "path", cfg.Catalog.Path, "error", err)
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			go reloader.Run(ctx)
			handle.reloader = reloader
			handle.cancel = cancel
		}
	}

	log.Info("Catalog loaded",
		"source", source,
		"books", lib.Len(),
		"backend", cfg.Catalog.Backend,
		"watching", handle.Watching(),
	)

	return handle, nil
}
