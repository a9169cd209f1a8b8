package providers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"github.com/samber/do/v2"

	"github.com/listenupapp/audiobook-mcp/internal/api"
	"github.com/listenupapp/audiobook-mcp/internal/config"
	"github.com/listenupapp/audiobook-mcp/internal/logger"
	"github.com/listenupapp/audiobook-mcp/internal/mcp"
	"github.com/listenupapp/audiobook-mcp/internal/mdns"
	"github.com/listenupapp/audiobook-mcp/internal/ratelimit"
	"github.com/listenupapp/audiobook-mcp/internal/session"
	"github.com/listenupapp/audiobook-mcp/internal/tools"
)

// buildVersion returns the provided BuildInfo version, or "" if none.
func buildVersion(i do.Injector) string {
	info, err := do.Invoke[BuildInfo](i)
	if err != nil {
		return ""
	}
	return info.Version
}

// ProvideMCPServer provides the MCP protocol server.
func ProvideMCPServer(i do.Injector) (*mcp.Server, error) {
	d := do.MustInvoke[*tools.Dispatcher](i)
	log := do.MustInvoke[*logger.Logger](i)

	return mcp.NewServer(d, buildVersion(i), log.Logger), nil
}

// ProvideRateLimiter provides the per-client HTTP rate limiter.
func ProvideRateLimiter(i do.Injector) (*ratelimit.KeyedRateLimiter, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst), nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	Listener net.Listener
	Port     int
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer binds the HTTP listener and starts serving the REST API
// and the MCP streamable HTTP endpoint in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	d := do.MustInvoke[*tools.Dispatcher](i)
	sess := do.MustInvoke[*session.Session](i)
	handle := do.MustInvoke[*CatalogHandle](i)
	mcpServer := do.MustInvoke[*mcp.Server](i)
	limiter := do.MustInvoke[*ratelimit.KeyedRateLimiter](i)

	handler := api.NewServer(d, sess, handle.Library, api.Options{
		Version:        buildVersion(i),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimiter:    limiter,
		MCP:            mcpServer.HTTPHandler(),
	}, log.Logger)

	ln, err := api.Listen(context.Background(), cfg.Server.Addr, cfg.Server.MaxConnections)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("HTTP server running",
		"addr", ln.Addr().String(),
		"max_connections", cfg.Server.MaxConnections,
		"mcp_path", mdns.MCPPath,
	)

	return &HTTPServerHandle{Server: srv, Listener: ln, Port: api.Port(ln)}, nil
}

// MDNSServiceHandle wraps mdns.Service with Shutdownable.
type MDNSServiceHandle struct {
	*mdns.Service
	started bool
}

// Started reports whether the advertisement is live.
func (h *MDNSServiceHandle) Started() bool {
	return h.started
}

// Shutdown implements do.Shutdownable.
func (h *MDNSServiceHandle) Shutdown() error {
	if h.started && h.Service != nil {
		h.Stop()
	}
	return nil
}

// ProvideMDNSService advertises the HTTP endpoint on the local network.
func ProvideMDNSService(i do.Injector) (*MDNSServiceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Server.AdvertiseMDNS {
		log.Debug("mDNS advertisement disabled by configuration")
		return &MDNSServiceHandle{}, nil
	}

	httpHandle := do.MustInvoke[*HTTPServerHandle](i)
	d := do.MustInvoke[*tools.Dispatcher](i)

	name := "audiobook-mcp"
	if host, err := os.Hostname(); err == nil && host != "" {
		name = "audiobook-mcp on " + host
	}

	svc := mdns.NewService(log.Logger)
	info := mdns.Info{
		Name:    name,
		Version: buildVersion(i),
		Tools:   len(d.Tools()),
	}
	if err := svc.Start(info, httpHandle.Port); err != nil {
		log.Warn("mDNS advertisement unavailable", "error", err)
		// Non-fatal: server works without mDNS (e.g., Docker, cloud)
		return &MDNSServiceHandle{Service: svc}, nil
	}

	return &MDNSServiceHandle{Service: svc, started: true}, nil
}
