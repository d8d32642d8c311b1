package main

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mini-time-tracker/internal/client"
	"mini-time-tracker/internal/config"
	"mini-time-tracker/internal/presenter"
	"mini-time-tracker/internal/tui"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"ls"},
	Short:   "Print all entries grouped by date with totals",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		api := client.NewClient(cfg.Client.APIURL, logger)
		entries, err := api.ListEntries(cmd.Context())
		if err != nil {
			return err
		}
		return presenter.Render(cmd.OutOrStdout(), entries)
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record one entry and print the updated history",
	Example: `  mini-time-tracker add --hours 2.5 --description "code review"
  mini-time-tracker add --date 2024-01-01 --project "Client A" --hours 8 --description "workshop"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		api := client.NewClient(cfg.Client.APIURL, logger)
		s := presenter.NewSession(api, time.Now(), cfg.Client.Projects)
		if err := applyAddFlags(cmd, &s.Form); err != nil {
			return err
		}

		if err := s.Submit(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), presenter.TotalStyle.Render("Entry saved."))
		return presenter.Render(cmd.OutOrStdout(), s.Entries)
	},
}

func init() {
	addCmd.Flags().String("date", "", "entry date YYYY-MM-DD (default today)")
	addCmd.Flags().StringP("project", "p", "", "project name (default first known project)")
	addCmd.Flags().String("hours", "", "hours worked, e.g. 1.5")
	addCmd.Flags().StringP("description", "d", "", "what was done")
}

// applyAddFlags overlays the flags of this invocation on the defaulted form.
// An empty --date or --project keeps the default.
func applyAddFlags(cmd *cobra.Command, f *presenter.Form) error {
	flags := cmd.Flags()
	var vals [4]string
	for i, name := range []string{"date", "project", "hours", "description"} {
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		vals[i] = v
	}
	if vals[0] != "" {
		f.Date = vals[0]
	}
	if vals[1] != "" {
		f.Project = vals[1]
	}
	f.Hours = vals[2]
	f.Description = vals[3]
	return nil
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive entry form and history",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		// The terminal belongs to the program; logs only go to LOG_FILE.
		logger = config.NewLogger(cfg, io.Discard)
		api := client.NewClient(cfg.Client.APIURL, logger)
		m := tui.New(api, time.Now(), cfg.Client.Projects)
		_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}
