// Package cli defines the command-line interface for notionsync.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/trm-labs/notionsync/internal/env"
	"github.com/trm-labs/notionsync/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	// MappingPath overrides the page mapping file path.
	MappingPath string
	// SettingsPath overrides the synthesis settings file path.
	SettingsPath string
	// EnvFiles lists .env files loaded before reading configuration.
	EnvFiles []string
	// LogLevel is the effective logging level.
	LogLevel logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		LogLevel: logging.LevelInfo,
	}

	var base baseEnv
	if err := parseEnv(&base); err != nil {
		return err
	}
	if base.LogLevel != "" {
		rootOpts.LogLevel = logging.ParseLevel(base.LogLevel)
	}
	rootOpts.EnvFiles = base.EnvFiles

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notionsync",
		Short: "notionsync keeps Notion documentation pages in sync with pull requests",
		Long:  "notionsync routes a pull request to a Notion page by branch prefix, merges the page content with the PR via OpenAI, and replaces the page blocks.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			opts.LogLevel = level
			logger = logging.NewLogger(os.Stderr, level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))

			if len(opts.EnvFiles) > 0 {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				vars, err := env.LoadEnvFiles(wd, opts.EnvFiles)
				if err != nil {
					return err
				}
				if err := env.Apply(vars); err != nil {
					return err
				}
				logger.Debug("env files loaded", "files", opts.EnvFiles)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.MappingPath, "mapping", "m", opts.MappingPath, "Path to the prefix-to-page mapping file")
	cmd.PersistentFlags().StringVar(&opts.SettingsPath, "settings", opts.SettingsPath, "Path to the synthesis settings file")
	cmd.PersistentFlags().StringArrayVar(&opts.EnvFiles, "env-file", opts.EnvFiles, "Path to a .env file to load (repeatable)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSyncCommand(opts),
		newToolsCommand(),
	)

	return cmd
}

// newGroupCommand builds a cobra.Command that groups subcommands.
func newGroupCommand(use, short string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	if len(subcommands) > 0 {
		cmd.AddCommand(subcommands...)
	}
	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
