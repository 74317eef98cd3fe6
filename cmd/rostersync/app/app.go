// Package app provides the application context for the rostersync CLI:
// configuration loading, logger setup, and command wiring.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rosterkit/rostersync/cmd/rostersync/cmd"
	"github.com/rosterkit/rostersync/pkg/errors"
	"github.com/rosterkit/rostersync/pkg/logging"
)

// App represents the rostersync application with its dependencies.
type App struct {
	version string
	commit  string
	date    string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date string) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("", "failed to load configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	return app, nil
}

// Config returns the application configuration.
func (a *App) Config() *cmd.Config {
	return &cmd.Config{
		Token:    a.config.Token,
		Channel:  a.config.Channel,
		Store:    a.config.Store,
		Table:    a.config.Table,
		Manifest: a.config.Manifest,
		DryRun:   a.config.DryRun,
	}
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Execute runs the rostersync CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(logging.WithLogger(ctx, a.logger))
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "rostersync",
		Short:   "Sync channel members into a tabular store",
		Version: a.version,
		Long: `Rostersync fetches the member roster of a chat-workspace channel and
merges it into a named table of a tabular store (Google Sheets, SQLite,
or in-memory). Members already stored survive a run; freshly fetched
members overwrite stored ones with the same ID.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.rostersync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.config.LogFormat, "log-format", a.config.LogFormat, "log format: auto, console, json")
	rootCmd.PersistentFlags().StringVar(&a.config.Token, "token", a.config.Token, "member-source bearer token")
	rootCmd.PersistentFlags().StringVar(&a.config.Channel, "channel", a.config.Channel, "channel (scope) to sync")
	rootCmd.PersistentFlags().StringVar(&a.config.Store, "store", a.config.Store, "store location (memory://, sqlite://path, sheets://spreadsheetID[/tab])")
	rootCmd.PersistentFlags().StringVar(&a.config.Table, "table", a.config.Table, "table name (default \"members\")")

	rootCmd.AddCommand(cmd.NewSyncCommand(a))
	rootCmd.AddCommand(cmd.NewMembersCommand(a))
	rootCmd.AddCommand(cmd.NewVersionCommand(a.version, a.commit, a.date))

	return rootCmd
}

// setup runs after flag parsing: a file named with --config is only known
// now, so it is applied here, and the logger is refreshed so
// -v/-q/--log-level/--log-format take effect.
func (a *App) setup(c *cobra.Command, _ []string) error {
	if c.Flags().Changed("config") {
		if err := a.config.ApplyConfigFile(c.Flags()); err != nil {
			return errors.NewConfigError("config", "failed to read config file", err)
		}
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	c.SetContext(logging.WithLogger(c.Context(), a.logger))
	return nil
}

// ContextWithSignals creates a context cancelled on interrupt or
// termination signals.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// ExitOnError prints the error and exits with a non-zero status.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
