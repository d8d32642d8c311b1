package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mini-time-tracker/internal/config"
	"mini-time-tracker/internal/presenter"
)

var (
	envDir  string
	verbose bool
	apiURL  string
)

var rootCmd = &cobra.Command{
	Use:   "mini-time-tracker",
	Short: "Mini time tracker: log hours per project, capped at 24 per day",
	Long: `mini-time-tracker records work entries (date, project, hours, description)
in a SQL database and serves them over a small JSON API. The same binary
ships the client: a history printer, a one-shot add command and an
interactive terminal form.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, presenter.ErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "directory holding the optional .env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "entry service base URL (overrides API_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(tuiCmd)
}

// setup loads configuration and builds the logger shared by every command.
func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(envDir)
	if err != nil {
		return cfg, nil, err
	}
	if verbose {
		cfg.Log.Level = slog.LevelDebug
	}
	if apiURL != "" {
		cfg.Client.APIURL = apiURL
	}
	logger := config.NewLogger(cfg, os.Stderr)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
