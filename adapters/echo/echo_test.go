package hxecho

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxdemo/lib/hx"
)

type greetProps struct {
	Name string `msgpack:"n"`
}

type greeter struct {
	*hx.Component[greetProps]
}

func newGreeter() *greeter {
	g := &greeter{}
	g.Component = hx.New[greetProps]("greeter", g)
	g.Action("shout", func(ctx context.Context, p greetProps, r *http.Request) hx.Result[greetProps] {
		p.Name = strings.ToUpper(p.Name)
		return hx.OK(p)
	})
	return g
}

func (g *greeter) Hydrate(ctx context.Context, p *greetProps) error { return nil }

func (g *greeter) Render(ctx context.Context, p greetProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hello "+templ.EscapeString(p.Name)+"</p>")
		return err
	})
}

func serve(e *echo.Echo, method, target string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMountServesComponents(t *testing.T) {
	e := echo.New()
	reg, err := Mount(e, WithKey([]byte("0123456789abcdef0123456789abcdef")))
	if err != nil {
		t.Fatal(err)
	}
	g := newGreeter()
	reg.Add(g)

	rec := serve(e, http.MethodGet, g.Refresh(greetProps{Name: "bob"}).URL, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "<p>hello bob</p>" {
		t.Errorf("body = %q", got)
	}

	rec = serve(e, http.MethodPost, g.Call("shout", greetProps{Name: "bob"}).URL, true)
	if got := rec.Body.String(); got != "<p>hello BOB</p>" {
		t.Errorf("body = %q", got)
	}
}

func TestMountRejectsPlainPost(t *testing.T) {
	e := echo.New()
	reg, err := Mount(e)
	if err != nil {
		t.Fatal(err)
	}
	g := newGreeter()
	reg.Add(g)

	rec := serve(e, http.MethodPost, g.Call("shout", greetProps{}).URL, false)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestMountGroupAppliesMiddleware(t *testing.T) {
	e := echo.New()
	var hits int
	grp := e.Group("", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			hits++
			return next(c)
		}
	})
	reg, err := MountGroup(grp)
	if err != nil {
		t.Fatal(err)
	}
	g := newGreeter()
	reg.Add(g)

	serve(e, http.MethodGet, g.Refresh(greetProps{}).URL, false)
	if hits != 1 {
		t.Errorf("middleware hits = %d, want 1", hits)
	}
}

func TestRender(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := RenderStatus(c, http.StatusTeapot, templ.Raw("<b>hi</b>")); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if rec.Body.String() != "<b>hi</b>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRenderFailure(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	boom := errors.New("boom")
	err := Render(c, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<partial")
		return boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("partial body written: %q", rec.Body.String())
	}
}
