// Package hxecho mounts an hx component registry on an Echo instance or
// group and renders templ components to an echo.Context.
//
//	e := echo.New()
//	reg, err := hxecho.Mount(e, hxecho.WithKey(key))
//	reg.Add(myComponent)
package hxecho

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxdemo/lib/hx"
)

// Path is where component routes are mounted.
const Path = "/_c/"

// Option configures Mount and MountGroup.
type Option func(*options)

type options struct {
	key     []byte
	regOpts []hx.RegistryOption
}

// WithKey sets the props signing key. Without it a random key is generated,
// so props do not survive a restart.
func WithKey(key []byte) Option {
	return func(o *options) { o.key = key }
}

// WithRegistryOptions passes options through to hx.NewRegistry.
func WithRegistryOptions(opts ...hx.RegistryOption) Option {
	return func(o *options) { o.regOpts = append(o.regOpts, opts...) }
}

// Mount creates a registry and serves it under Path on e.
func Mount(e *echo.Echo, opts ...Option) (*hx.Registry, error) {
	reg, err := newRegistry(opts)
	if err != nil {
		return nil, err
	}
	e.Any(Path+"*", echo.WrapHandler(reg.Handler()))
	return reg, nil
}

// MountGroup is Mount on a group, so component routes share the group's
// middleware. The group must be rooted at "/".
func MountGroup(g *echo.Group, opts ...Option) (*hx.Registry, error) {
	reg, err := newRegistry(opts)
	if err != nil {
		return nil, err
	}
	g.Any(Path+"*", echo.WrapHandler(reg.Handler()))
	return reg, nil
}

func newRegistry(opts []Option) (*hx.Registry, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("hxecho: generate key: %w", err)
		}
	}
	return hx.NewRegistry(key, o.regOpts...)
}

// Render writes component to the response with status 200.
func Render(c echo.Context, component templ.Component) error {
	return RenderStatus(c, http.StatusOK, component)
}

// RenderStatus renders component into a buffer first, so a failed render
// becomes an echo error rather than a truncated page.
func RenderStatus(c echo.Context, status int, component templ.Component) error {
	var buf bytes.Buffer
	if err := component.Render(c.Request().Context(), &buf); err != nil {
		return fmt.Errorf("hxecho: render: %w", err)
	}
	return c.HTMLBlob(status, buf.Bytes())
}
