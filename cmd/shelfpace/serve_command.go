package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"shelfpace/internal/api"
	"shelfpace/internal/book"
	"shelfpace/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the read-only stats HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if bind == "" {
				bind = cfg.Paths.APIBind
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			return ctx.withStore(cmd.Context(), func(runCtx context.Context, store *book.Store) error {
				runCtx, stop := signal.NotifyContext(runCtx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				server := api.NewServer(store, cfg, logger)
				fmt.Fprintf(cmd.OutOrStdout(), "Serving stats API on %s\n", bind)
				return server.Serve(runCtx, bind)
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (defaults to paths.api_bind)")
	return cmd
}
