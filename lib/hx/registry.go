package hx

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/pthm/hxdemo/lib/encoding"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Mountable is implemented by types embedding *Component[P].
type Mountable interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
	attach(reg *Registry)
}

// Registry routes component requests by prefix and owns the props encoder
// every mounted component shares.
//
//	reg, err := hx.NewRegistry([]byte(cfg.Key), hx.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	reg.OnError(func(w http.ResponseWriter, r *http.Request, err error) {
//	    logger.Error("component", "path", r.URL.Path, "error", err)
//	    hx.DefaultErrorHandler(logger)(w, r, err)
//	})
//	reg.Add(todoList, counter)
//	mux.Handle("/_c/", reg.Handler())
//
// A component's URLs are only valid once it has been added: Call and Refresh
// encode props with the registry's encoder.
type Registry struct {
	mu         sync.RWMutex
	encoder    *encoding.Encoder
	components map[string]Mountable
	logger     *slog.Logger
	onError    ErrorHandler
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger for request failures.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(reg *Registry) { reg.logger = l }
}

// NewRegistry creates a registry whose components encode props with key.
// The key signs and seals props; rotating it invalidates every URL already
// rendered into open pages. An empty key is an error.
func NewRegistry(key []byte, opts ...RegistryOption) (*Registry, error) {
	enc, err := encoding.NewEncoder(key)
	if err != nil {
		return nil, fmt.Errorf("hx: registry: %w", err)
	}

	reg := &Registry{
		encoder:    enc,
		components: make(map[string]Mountable),
		logger:     discard,
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg, nil
}

// Encoder returns the registry's props encoder.
func (reg *Registry) Encoder() *encoding.Encoder { return reg.encoder }

// OnError replaces the error handler. The default is DefaultErrorHandler.
func (reg *Registry) OnError(h ErrorHandler) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.onError = h
}

// Add mounts components. It panics when two components share a prefix.
func (reg *Registry) Add(components ...Mountable) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, c := range components {
		prefix := c.HXPrefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("hx: prefix collision for %q", prefix))
		}
		c.attach(reg)
		reg.components[prefix] = c
	}
}

// Handler serves every mounted component. Mount it at "/_c/".
//
// Requests with a method other than GET or HEAD are rejected with 403
// unless they carry HX-Request: true.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}

		c, ok := reg.lookup(r.URL.Path)
		if !ok {
			reg.handleError(w, r, fmt.Errorf("%w: %s", ErrNotFound, r.URL.Path))
			return
		}
		c.HXServeHTTP(w, r)
	})
}

// lookup finds the component whose prefix is the first two segments of path.
func (reg *Registry) lookup(path string) (Mountable, bool) {
	rest, ok := strings.CutPrefix(path, "/_c/")
	if !ok {
		return nil, false
	}
	seg, _, _ := strings.Cut(rest, "/")

	reg.mu.RLock()
	defer reg.mu.RUnlock()
	c, ok := reg.components["/_c/"+seg]
	return c, ok
}

func (reg *Registry) handleError(w http.ResponseWriter, r *http.Request, err error) {
	reg.mu.RLock()
	h := reg.onError
	reg.mu.RUnlock()

	if h == nil {
		h = DefaultErrorHandler(reg.logger)
	}
	h(w, r, err)
}
