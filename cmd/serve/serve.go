// Package serve implements the HTTP control surface command.
package serve

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	populatecmd "github.com/gamevault/gamevault/cmd/populate"
	"github.com/gamevault/gamevault/internal/api"
	"github.com/gamevault/gamevault/internal/conf"
	"github.com/gamevault/gamevault/internal/datastore"
	"github.com/gamevault/gamevault/internal/errors"
	"github.com/gamevault/gamevault/internal/giantbomb"
	"github.com/gamevault/gamevault/internal/logging"
	"github.com/gamevault/gamevault/internal/observability"
	pipeline "github.com/gamevault/gamevault/internal/populate"
)

const shutdownTimeout = 10 * time.Second

// Command creates the serve command
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), settings)
		},
	}
}

func runServe(ctx context.Context, settings *conf.Settings) error {
	store := datastore.New(settings)
	if store == nil {
		return errors.Newf("no database backend enabled in configuration").
			Component("serve").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Warn("Failed to close database", "error", err)
		}
	}()

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	// The populator is optional; without an API key the server still
	// serves stored records.
	var populator *pipeline.Populator
	if settings.Provider.APIKey != "" {
		client, err := giantbomb.NewClient(populatecmd.ClientConfig(settings), settings.Debug)
		if err != nil {
			return err
		}
		client.SetMetrics(metrics.Populate)
		populator = pipeline.New(client, store, settings, metrics.Populate)
	} else {
		logging.Warn("No provider API key configured, population endpoints are disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())

	controller := api.New(e, store, settings, populator, metrics)
	defer controller.Shutdown()

	// Stop the server when the command context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logging.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	addr := ":" + settings.WebServer.Port
	logging.Info("Starting HTTP server", "addr", addr)
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}
