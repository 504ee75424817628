package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pthm/hxdemo/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr    string
		baseURL string
		noStub  bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			if baseURL != "" {
				a.cfg.Todos.BaseURL = baseURL
			}
			if noStub {
				a.cfg.Todos.Stub = false
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			srv, err := server.New(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "todo source base URL (default: the stub on --addr)")
	cmd.Flags().BoolVar(&noStub, "no-stub", false, "do not serve the stub todo source at /api/todos")
	return cmd
}
