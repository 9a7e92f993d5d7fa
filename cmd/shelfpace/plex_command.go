package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shelfpace/internal/book"
	"shelfpace/internal/logging"
	"shelfpace/internal/plex"
)

func newPlexCommand(ctx *commandContext) *cobra.Command {
	plexCmd := &cobra.Command{
		Use:   "plex",
		Short: "Media server integration",
	}

	plexCmd.AddCommand(newPlexSyncCommand(ctx))

	return plexCmd
}

func newPlexSyncCommand(ctx *commandContext) *cobra.Command {
	var noPush bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import audiobook albums from the media server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Plex.Enabled {
				return fmt.Errorf("plex sync is disabled; set plex.enabled = true in the config")
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			return ctx.withStore(cmd.Context(), func(ctx context.Context, store *book.Store) error {
				client := plex.NewClient(cfg.Plex, nil)
				var reporter plex.ProgressReporter
				if cfg.Plex.PushProgress && !noPush {
					reporter = client
				}

				syncer := plex.NewSyncer(store, client, reporter, logger, cfg.Plex.DefaultReadingSpeed)
				result, err := syncer.Sync(ctx, time.Now().UTC())
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Sync complete: %d imported, %d updated, %d progress pushes\n",
					result.Imported, result.Updated, result.Pushed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&noPush, "no-push", false, "Skip pushing local progress upstream")
	return cmd
}
