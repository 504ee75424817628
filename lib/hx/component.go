package hx

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/hxdemo/lib/encoding"
)

// Lifecycle is implemented by every component.
//
// Hydrate fills the fields of props that are not encoded in URLs. It runs
// before every render and action, and again before rendering the result of
// an action. Render must not have side effects.
type Lifecycle[P any] interface {
	Hydrate(ctx context.Context, props *P) error
	Render(ctx context.Context, props P) templ.Component
}

// Handler runs an action against hydrated props.
type Handler[P any] func(ctx context.Context, props P, r *http.Request) Result[P]

type actionDef[P any] struct {
	name    string
	method  string
	handler Handler[P]
}

// ActionBuilder adjusts a registered action.
type ActionBuilder[P any] struct {
	def *actionDef[P]
}

// Method overrides the default POST.
func (b *ActionBuilder[P]) Method(m string) *ActionBuilder[P] {
	b.def.method = m
	return b
}

// Component is embedded by concrete components. It routes requests, encodes
// props and applies handler results.
type Component[P any] struct {
	name      string
	prefix    string
	sensitive bool
	impl      Lifecycle[P]
	actions   map[string]*actionDef[P]
	encoder   *encoding.Encoder
	reg       *Registry
}

// New creates a component backed by impl.
//
// The URL prefix is /_c/<name>-<hash>, where the hash covers the file and
// line New was called from, so two instances with the same name built in
// different places do not collide.
func New[P any](name string, impl Lifecycle[P]) *Component[P] {
	return &Component[P]{
		name:    name,
		prefix:  "/_c/" + name + "-" + callSiteHash(name, 1),
		impl:    impl,
		actions: make(map[string]*actionDef[P]),
	}
}

func callSiteHash(name string, skip int) string {
	input := name
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}

// Sensitive encrypts props instead of signing them.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

func (c *Component[P]) Name() string   { return c.name }
func (c *Component[P]) Prefix() string { return c.prefix }

// Action registers handler under name, reachable with POST unless
// overridden.
func (c *Component[P]) Action(name string, handler Handler[P]) *ActionBuilder[P] {
	if strings.ContainsAny(name, "/?#") || name == "" {
		panic(fmt.Sprintf("hx: invalid action name %q", name))
	}
	def := &actionDef[P]{name: name, method: http.MethodPost, handler: handler}
	c.actions[name] = def
	return &ActionBuilder[P]{def: def}
}

// SetEncoder sets the props encoder. Registry.Add calls it; tests that
// serve a component without a registry call it directly.
func (c *Component[P]) SetEncoder(enc *encoding.Encoder) {
	c.encoder = enc
}

func (c *Component[P]) HXPrefix() string { return c.prefix }

func (c *Component[P]) attach(reg *Registry) {
	c.reg = reg
	c.encoder = reg.encoder
}

// Refresh targets the component's render route.
func (c *Component[P]) Refresh(props P) *Action {
	return NewAction(c.url("", props), http.MethodGet)
}

// Call targets the named action. It panics for an unregistered name.
func (c *Component[P]) Call(action string, props P) *Action {
	def, ok := c.actions[action]
	if !ok {
		panic(fmt.Sprintf("hx: %s has no action %q", c.name, action))
	}
	return NewAction(c.url(action, props), def.method)
}

// View renders the component inline, hydrating props first.
func (c *Component[P]) View(props P) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := c.impl.Hydrate(ctx, &props); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrHydrationFailed, c.name, err)
		}
		return c.impl.Render(ctx, props).Render(ctx, w)
	})
}

// Defer renders placeholder and replaces it with the component once the
// page has loaded.
func (c *Component[P]) Defer(props P, placeholder templ.Component) templ.Component {
	return lazy(c.url("", props), "load", placeholder)
}

// Lazy is Defer triggered by the placeholder scrolling into view.
func (c *Component[P]) Lazy(props P, placeholder templ.Component) templ.Component {
	return lazy(c.url("", props), "intersect once", placeholder)
}

func lazy(url, trigger string, placeholder templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div hx-get="%s" hx-trigger="%s" hx-swap="outerHTML">`,
			templ.EscapeString(url), trigger); err != nil {
			return err
		}
		if placeholder != nil {
			if err := placeholder.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func (c *Component[P]) url(action string, props P) string {
	path := c.prefix + "/" + action
	if c.encoder == nil {
		return path
	}
	encoded, err := c.encoder.Encode(props, c.sensitive)
	if err != nil {
		c.logger().Error("encode props", "component", c.name, "error", err)
		return path
	}
	return path + "?p=" + encoded
}

// HXServeHTTP serves every route under the component prefix.
func (c *Component[P]) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	var props P
	if c.encoder != nil {
		if err := c.encoder.Decode(r.FormValue("p"), c.sensitive, &props); err != nil {
			c.fail(w, r, fmt.Errorf("%w: %w", ErrBadProps, err))
			return
		}
	}

	ctx := r.Context()
	if err := c.impl.Hydrate(ctx, &props); err != nil {
		c.fail(w, r, fmt.Errorf("%w: %s: %w", ErrHydrationFailed, c.name, err))
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, c.prefix), "/")
	if name == "" {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			c.methodNotAllowed(w, r, http.MethodGet)
			return
		}
		c.respond(w, r, OK(props), false)
		return
	}

	def, ok := c.actions[name]
	if !ok {
		c.fail(w, r, fmt.Errorf("%w: %s/%s", ErrNotFound, c.name, name))
		return
	}
	if r.Method != def.method {
		c.methodNotAllowed(w, r, def.method)
		return
	}

	c.respond(w, r, def.handler(ctx, props, r), true)
}

func (c *Component[P]) methodNotAllowed(w http.ResponseWriter, r *http.Request, allow string) {
	w.Header().Set("Allow", allow)
	c.fail(w, r, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, r.Method, r.URL.Path))
}

// respond applies res. Headers are written before the status line, and the
// body is rendered into a buffer so a render failure can still become an
// error response.
func (c *Component[P]) respond(w http.ResponseWriter, r *http.Request, res Result[P], rehydrate bool) {
	if err := res.Cause(); err != nil {
		c.fail(w, r, err)
		return
	}

	h := w.Header()
	for k, v := range res.Headers() {
		h.Set(k, v)
	}
	if t := BuildTriggerHeader(res.TriggerEvent(), res.TriggerData()); t != "" {
		h.Set("HX-Trigger", t)
	}
	if t := res.TriggerAfterSettle(); t != "" {
		h.Set("HX-Trigger-After-Settle", t)
	}

	status := res.StatusCode()
	if status == 0 {
		status = http.StatusOK
	}

	if url := res.RedirectURL(); url != "" {
		h.Set("HX-Redirect", url)
		w.WriteHeader(status)
		return
	}
	if res.Skipped() {
		return
	}

	ctx := r.Context()
	props := res.Props()
	if rehydrate {
		if err := c.impl.Hydrate(ctx, &props); err != nil {
			c.fail(w, r, fmt.Errorf("%w: %s: %w", ErrHydrationFailed, c.name, err))
			return
		}
	}

	var buf bytes.Buffer
	if err := c.impl.Render(ctx, props).Render(ctx, &buf); err != nil {
		c.fail(w, r, fmt.Errorf("hx: render %s: %w", c.name, err))
		return
	}
	buf.WriteString(RenderFlashesOOB(res.Flashes()))

	h.Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = buf.WriteTo(w)
	}
}

func (c *Component[P]) fail(w http.ResponseWriter, r *http.Request, err error) {
	if c.reg != nil {
		c.reg.handleError(w, r, err)
		return
	}
	DefaultErrorHandler(c.logger())(w, r, err)
}

func (c *Component[P]) logger() *slog.Logger {
	if c.reg != nil {
		return c.reg.logger
	}
	return discard
}
