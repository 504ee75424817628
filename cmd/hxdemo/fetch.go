package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pthm/hxdemo/lib/todos"
)

func newFetchCmd(a *app) *cobra.Command {
	var (
		limit   int
		baseURL string
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Run one todo fetch and print the resulting state as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Todos.DefaultLimit
			}
			if baseURL == "" {
				baseURL = a.cfg.TodosBaseURL()
			}

			fetcher, err := newFetcher(a, baseURL)
			if err != nil {
				return err
			}
			fetchErr := <-fetcher.FetchTodos(cmd.Context(), limit)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(fetcher.Store().State()); err != nil {
				return err
			}
			if fetchErr != nil {
				return fmt.Errorf("fetch todos: %w", fetchErr)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", todos.DefaultLimit, "number of todos to request")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "todo source base URL (overrides config)")
	return cmd
}

func newFetcher(a *app, baseURL string) (*todos.Fetcher, error) {
	source, err := todos.NewHTTPSource(baseURL, &http.Client{})
	if err != nil {
		return nil, err
	}
	return todos.NewFetcher(todos.NewStore(), source,
		todos.WithLogger(a.logger),
		todos.WithTimeout(a.cfg.Todos.Timeout),
	), nil
}
