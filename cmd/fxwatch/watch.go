package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"fxwatch/internal/application/port"
	"fxwatch/internal/application/usecase/watch"
	"fxwatch/internal/infrastructure/container"
	"fxwatch/internal/infrastructure/feed"
	"fxwatch/internal/interfaces/console"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Connect to the feed and browse quotes interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		noInput, _ := cmd.Flags().GetBool("no-input")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c, err := container.New(cfg)
		if err != nil {
			return err
		}
		defer c.Close()

		conn := feed.NewConnection(cfg.Feed.WsURL,
			feed.WithRequest(cfg.Feed.Request),
			feed.WithDialTimeout(cfg.DialTimeout()),
		)

		var commands <-chan port.Command
		if !noInput {
			commands = console.ReadCommands(ctx, os.Stdin)
		}

		svc := watch.NewService(watch.ServiceDeps{
			Feed:     conn,
			Store:    c.SnapshotStore(),
			Commands: commands,
			PageSize: cfg.App.PageSize,
			Sink:     console.NewSink(),
		})

		log.Info().
			Str("ws_url", cfg.Feed.WsURL).
			Str("storage", cfg.Storage.Backend).
			Int("page_size", cfg.App.PageSize).
			Msg("fxwatch started")

		if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("watch exited")
			return err
		}
		log.Warn().Msg("exit")
		return nil
	},
}

func init() {
	watchCmd.Flags().Bool("no-input", false, "do not read commands from stdin")
}
