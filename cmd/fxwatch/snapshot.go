package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"fxwatch/internal/application/service"
	"fxwatch/internal/infrastructure/container"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect the stored quote snapshots",
}

var snapshotGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one snapshot (default: the last selected quote)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		}
		return withSnapshots(func(ctx context.Context, svc *service.SnapshotService) error {
			q, err := svc.Get(ctx, key)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(q, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		})
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshot keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSnapshots(func(ctx context.Context, svc *service.SnapshotService) error {
			keys, err := svc.List(ctx)
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		})
	},
}

var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the last selected quote",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSnapshots(func(ctx context.Context, svc *service.SnapshotService) error {
			return svc.ClearSelection(ctx)
		})
	},
}

func withSnapshots(fn func(ctx context.Context, svc *service.SnapshotService) error) error {
	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(context.Background(), service.NewSnapshotService(c.SnapshotStore()))
}

func init() {
	snapshotCmd.AddCommand(snapshotGetCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotClearCmd)
}
