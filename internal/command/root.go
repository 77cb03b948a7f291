// Package command contains the CLI command constructors.
package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"businessCard/internal/config"
	"businessCard/internal/observability"
)

// RootCommand instantiates the root command, with all sub-commands bound.
func RootCommand() *cobra.Command {
	var (
		envFile string
		dev     bool
	)
	cmd := &cobra.Command{
		Use:          "businesscard [command] [flags]",
		Short:        "Editor access and contact directory backend for the business card site",
		Version:      version(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			load := config.Load
			if dev {
				load = config.LoadWithDefaults
			}
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := observability.InitSlog(cfg.Log)
			logger.DebugContext(cmd.Context(), "configuration loaded", slog.String("config", cfg.String()))
			slog.SetDefault(logger)
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.PersistentFlags().BoolVar(&dev, "dev", false, "fall back to a local SQLite database when none is configured")

	cmd.AddCommand(
		serveCommand(),
		editorCommand(),
		adminCommand(),
		migrateCommand(),
	)
	return cmd
}
