package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fxwatch/internal/infrastructure/config"
	"fxwatch/internal/infrastructure/logger"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "fxwatch",
	Short:         "Watch a live currency quote feed",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", configPath, err)
		}

		level := cfg.App.LogLevel
		if l, _ := cmd.Flags().GetString("log-level"); l != "" {
			level = l
		}
		logger.Setup(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "configs/config.toml", "path to config.toml")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(snapshotCmd)
}
