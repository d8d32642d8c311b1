package main

import (
	"github.com/spf13/cobra"

	"mini-time-tracker/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		application, err := app.New(cmd.Context(), logger, cfg)
		if err != nil {
			return err
		}
		logger.Info("migrations applied")
		return application.Close()
	},
}
