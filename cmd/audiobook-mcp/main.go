// Package main provides the entry point for the audiobook MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/listenupapp/audiobook-mcp/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version, os.Args[1:]); err != nil {
		cli.PrintError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
