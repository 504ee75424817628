package main

import (
	"github.com/spf13/cobra"

	"github.com/pthm/hxdemo/lib/logging"
	"github.com/pthm/hxdemo/tui"
)

func newTUICmd(a *app) *cobra.Command {
	var (
		limit   int
		baseURL string
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse todos in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Todos.DefaultLimit
			}
			if baseURL == "" {
				baseURL = a.cfg.TodosBaseURL()
			}
			// Log lines would corrupt the terminal UI.
			a.logger = logging.Discard()

			fetcher, err := newFetcher(a, baseURL)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), fetcher, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of todos per load (default from config)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "todo source base URL (overrides config)")
	return cmd
}
