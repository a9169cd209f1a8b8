package cli

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/audiobook-mcp/internal/config"
	"github.com/listenupapp/audiobook-mcp/internal/di"
	"github.com/listenupapp/audiobook-mcp/internal/logger"
	"github.com/listenupapp/audiobook-mcp/internal/mcp"
	"github.com/listenupapp/audiobook-mcp/internal/mdns"
)

func (a *app) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP tools over the configured transport",
		Long: "Serve MCP tools over stdio (default) or HTTP. Over stdio, stdout carries only " +
			"protocol frames and logs go to stderr.",
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}
}

func (a *app) runServe(cmd *cobra.Command, _ []string) (err error) {
	injector, err := a.container(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if serr := di.Shutdown(injector); serr != nil && err == nil {
			err = serr
		}
	}()

	cfg := do.MustInvoke[*config.Config](injector)
	log := do.MustInvoke[*logger.Logger](injector)
	ctx := commandContext(cmd)

	log.Info("Starting audiobook MCP server",
		"version", a.version,
		"environment", cfg.App.Environment,
		"transport", cfg.Server.Transport,
	)

	switch cfg.Server.Transport {
	case config.TransportHTTP:
		handle, err := di.StartHTTP(injector)
		if err != nil {
			return err
		}
		log.Info("Serving MCP over HTTP", "url", fmt.Sprintf("http://%s%s", handle.Listener.Addr(), mdns.MCPPath))

		<-ctx.Done()
		log.Info("Shutting down server gracefully...")
		return nil

	default:
		srv := do.MustInvoke[*mcp.Server](injector)
		if err := srv.ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("serve stdio: %w", err)
		}
		log.Info("Stdio session closed")
		return nil
	}
}
