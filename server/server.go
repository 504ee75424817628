// Package server wires the demo application together: component registry,
// pages, the stub todo source, the todo state stream and operational
// endpoints, all served by echo.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	hxecho "github.com/pthm/hxdemo/adapters/echo"
	"github.com/pthm/hxdemo/components"
	"github.com/pthm/hxdemo/lib/config"
	"github.com/pthm/hxdemo/lib/counter"
	"github.com/pthm/hxdemo/lib/highlight"
	"github.com/pthm/hxdemo/lib/hx"
	"github.com/pthm/hxdemo/lib/todos"
)

const shutdownGrace = 5 * time.Second

// Server is the demo HTTP application.
type Server struct {
	cfg    config.Config
	logger *slog.Logger

	echo       *echo.Echo
	registry   *hx.Registry
	metrics    *prometheus.Registry
	todos      *todos.Store
	fetcher    *todos.Fetcher
	counter    *counter.Store
	components *components.Set

	unsubscribe func()
}

// New builds the application from cfg.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		return nil, errors.New("server: nil logger")
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		echo:    echo.New(),
		metrics: prometheus.NewRegistry(),
		todos:   todos.NewStore(),
		counter: counter.NewStore(),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	source, err := todos.NewHTTPSource(cfg.TodosBaseURL(), &http.Client{})
	if err != nil {
		return nil, fmt.Errorf("server: todo source: %w", err)
	}
	s.fetcher = todos.NewFetcher(s.todos, source,
		todos.WithLogger(logger.With("component", "todos")),
		todos.WithMetrics(todos.NewMetrics(s.metrics)),
		todos.WithTimeout(cfg.Todos.Timeout),
	)
	s.unsubscribe = s.todos.Subscribe(logTransition(logger))

	s.echo.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		middleware.Recover(),
		requestLogger(logger),
		requestMetrics(s.metrics),
	)

	opts := []hxecho.Option{hxecho.WithRegistryOptions(hx.WithLogger(logger.With("component", "hx")))}
	if cfg.Key != "" {
		opts = append(opts, hxecho.WithKey([]byte(cfg.Key)))
	}
	s.registry, err = hxecho.Mount(s.echo, opts...)
	if err != nil {
		return nil, fmt.Errorf("server: mount components: %w", err)
	}

	s.components = components.Init(components.Deps{
		Todos:        s.fetcher,
		Source:       source,
		Counter:      s.counter,
		Highlighter:  highlight.New(),
		Timeout:      cfg.Todos.Timeout,
		DefaultLimit: cfg.Todos.DefaultLimit,
	}, s.registry)

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	e := s.echo
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.cfg.Todos.Stub {
		e.GET("/api/todos", newStub(stubSize).handleList)
	}
	e.GET("/ws/todos", s.handleStream)
	if s.cfg.Metrics.Enabled {
		e.GET(s.cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{})))
	}
	e.GET("/*", s.handlePage)
}

func (s *Server) handlePage(c echo.Context) error {
	r := c.Request()
	page, ok := s.components.Page(r.URL.Path, r.URL.Query())
	if !ok {
		return hxecho.RenderStatus(c, http.StatusNotFound, components.NotFound(r.URL.Path))
	}
	return hxecho.Render(c, page)
}

// Handler returns the application handler.
func (s *Server) Handler() http.Handler { return s.echo }

// Todos returns the todo store the pages render.
func (s *Server) Todos() *todos.Store { return s.todos }

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down, allowing in-flight
// requests a short grace period.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Close releases the store subscriptions made by New.
func (s *Server) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func logTransition(logger *slog.Logger) func(todos.State, todos.Event) {
	return func(st todos.State, e todos.Event) {
		msg, failed := todos.SelectError(st)
		args := []any{"event", e.Type(), "status", st.Status, "count", len(st.List)}
		if failed {
			args = append(args, "error", msg)
		}
		logger.Debug("todo transition", args...)
	}
}
