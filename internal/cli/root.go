// Package cli implements the audiobook-mcp command line.
package cli

import (
	"context"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/audiobook-mcp/internal/config"
	"github.com/listenupapp/audiobook-mcp/internal/di"
	"github.com/listenupapp/audiobook-mcp/internal/di/providers"
)

// app carries state shared by every command.
type app struct {
	version string
}

// NewRootCommand builds the command tree. Running the root command without a
// subcommand serves MCP.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:   "audiobook-mcp",
		Short: "MCP tool server for audiobook playback",
		Long: "audiobook-mcp exposes an audiobook catalog and a simulated playback session " +
			"as Model Context Protocol tools over stdio or HTTP.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runServe,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		a.serveCommand(),
		a.toolsCommand(),
		a.callCommand(),
		a.catalogCommand(),
		a.versionCommand(),
	)
	return root
}

// Execute runs the command line with ctx, which is canceled on shutdown signals.
func Execute(ctx context.Context, version string, args []string) error {
	root := NewRootCommand(version)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// container bootstraps the DI container with the command's flags.
func (a *app) container(cmd *cobra.Command) (*do.RootScope, error) {
	injector := di.NewContainer(cmd.Flags(), providers.BuildInfo{Version: a.version})
	if err := di.Bootstrap(injector); err != nil {
		_ = di.Shutdown(injector)
		return nil, err
	}
	return injector, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
