package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/listenupapp/audiobook-mcp/internal/mcp"
)

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), mcp.ServerName, a.version)
			return nil
		},
	}
}
