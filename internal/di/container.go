// Package di provides dependency injection configuration for the audiobook MCP server.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/pflag"

	"github.com/listenupapp/audiobook-mcp/internal/config"
	"github.com/listenupapp/audiobook-mcp/internal/di/providers"
	"github.com/listenupapp/audiobook-mcp/internal/logger"
	"github.com/listenupapp/audiobook-mcp/internal/mcp"
	"github.com/listenupapp/audiobook-mcp/internal/session"
	"github.com/listenupapp/audiobook-mcp/internal/tools"
	"github.com/listenupapp/audiobook-mcp/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
// flags may be nil.
func NewContainer(flags *pflag.FlagSet, info providers.BuildInfo) *do.RootScope {
	injector := do.New()

	if flags != nil {
		do.ProvideValue(injector, flags)
	}
	do.ProvideValue(injector, info)

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Catalog and session
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideSession)
	do.Provide(injector, providers.ProvideDispatcher)

	// Transports
	do.Provide(injector, providers.ProvideMCPServer)
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes the core services shared by every transport.
// Transport services start lazily when invoked.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*validation.Validator](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.CatalogHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*session.Session](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*tools.Dispatcher](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*mcp.Server](injector); err != nil {
		return err
	}
	return nil
}

// StartHTTP binds the HTTP server and, when configured, the mDNS advertisement.
func StartHTTP(injector *do.RootScope) (*providers.HTTPServerHandle, error) {
	handle, err := do.Invoke[*providers.HTTPServerHandle](injector)
	if err != nil {
		return nil, err
	}
	if _, err := do.Invoke[*providers.MDNSServiceHandle](injector); err != nil {
		return nil, err
	}
	return handle, nil
}

// Shutdown stops every initialized service in reverse dependency order.
func Shutdown(injector *do.RootScope) error {
	report := injector.Shutdown()
	if report == nil || len(report.Errors) == 0 {
		return nil
	}
	return report
}
