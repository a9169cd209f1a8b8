// Package providers contains dependency injection providers for the audiobook MCP server.
package providers

import (
	"github.com/samber/do/v2"
	"github.com/spf13/pflag"

	"github.com/listenupapp/audiobook-mcp/internal/config"
	"github.com/listenupapp/audiobook-mcp/internal/logger"
)

// ProvideConfig provides the application configuration. Command-line flags
// are used when a *pflag.FlagSet has been provided.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	flags, err := do.Invoke[*pflag.FlagSet](i)
	if err != nil {
		flags = nil
	}
	return config.Load(flags)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Format:      cfg.Logger.Format,
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Debug("Configuration loaded",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"transport", cfg.Server.Transport,
		"catalog_path", cfg.Catalog.Path,
		"catalog_backend", cfg.Catalog.Backend,
	)

	return log, nil
}
