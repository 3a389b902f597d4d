package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gamevault/gamevault/cmd"
	"github.com/gamevault/gamevault/internal/conf"
	"github.com/gamevault/gamevault/internal/logging"
)

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		logging.Fatal("Failed to load configuration", "error", err)
	}

	// Cancel the command context on SIGINT or SIGTERM so population runs
	// and the HTTP server shut down cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logging.Fatal("Command failed", "error", err)
	}
}
