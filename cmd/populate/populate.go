// Package populate implements the one-shot catalog population command.
package populate

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gamevault/gamevault/internal/conf"
	"github.com/gamevault/gamevault/internal/datastore"
	"github.com/gamevault/gamevault/internal/errors"
	"github.com/gamevault/gamevault/internal/giantbomb"
	pipeline "github.com/gamevault/gamevault/internal/populate"
)

// Command creates the populate command
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "populate [kind]",
		Short: "Populate the catalog from the metadata provider",
		Long: `Pull all records of one entity kind from the metadata provider and store them.
Without an argument every kind is populated in dependency order.

Kinds: rating-board, rating, genre, company, platform, video-game, all`,
		Args: cobra.MaximumNArgs(1),
		ValidArgs: []string{
			datastore.KindRatingBoard,
			datastore.KindRating,
			datastore.KindGenre,
			datastore.KindCompany,
			datastore.KindPlatform,
			datastore.KindVideoGame,
			"all",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "all"
			if len(args) > 0 {
				kind = args[0]
			}
			return runPopulate(cmd.Context(), settings, kind)
		},
	}
	return cmd
}

func runPopulate(ctx context.Context, settings *conf.Settings, kind string) error {
	store := datastore.New(settings)
	if store == nil {
		return errors.Newf("no database backend enabled in configuration").
			Component("populate").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close database: %v\n", err)
		}
	}()

	client, err := giantbomb.NewClient(ClientConfig(settings), settings.Debug)
	if err != nil {
		return err
	}

	populator := pipeline.New(client, store, settings, nil)
	summaries, runErr := populator.Populate(ctx, kind)
	for _, summary := range summaries {
		fmt.Println(summary)
	}
	return runErr
}

// ClientConfig maps provider settings onto the API client configuration.
func ClientConfig(settings *conf.Settings) giantbomb.Config {
	return giantbomb.Config{
		BaseURL:      settings.Provider.BaseURL,
		APIKey:       settings.Provider.APIKey,
		Timeout:      time.Duration(settings.Provider.TimeoutSeconds) * time.Second,
		RequestDelay: time.Duration(settings.Provider.RequestDelayMS) * time.Millisecond,
		MaxRetries:   settings.Provider.MaxRetries,
	}
}
