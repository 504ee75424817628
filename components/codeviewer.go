package components

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/a-h/templ"
	"golang.org/x/sync/singleflight"

	"github.com/pthm/hxdemo/lib/hx"
)

//go:embed basicform.go reinitform.go contextform.go counter.go todolist.go
var sources embed.FS

// Example is one tab of the code viewer.
type Example struct {
	Key   string
	Title string
	File  string
}

// Examples lists the code viewer tabs. The first is shown by default.
var Examples = []Example{
	{"basic", "Basic form", "basicform.go"},
	{"reinit", "Re-init form", "reinitform.go"},
	{"context", "Context form", "contextform.go"},
	{"counter", "Counter", "counter.go"},
	{"todo", "Todos", "todolist.go"},
}

func findExample(key string) (Example, bool) {
	for _, e := range Examples {
		if e.Key == key {
			return e, true
		}
	}
	return Example{}, false
}

// Highlighter renders source as HTML.
type Highlighter interface {
	HTML(ctx context.Context, src []byte) (string, error)
}

// CodeProps selects the example to show.
type CodeProps struct {
	Page string `msgpack:"k"`
	HTML string `msgpack:"-"`
}

// CodeViewer renders the highlighted source of an example. Output is cached
// per example; concurrent misses share one highlight pass.
type CodeViewer struct {
	*hx.Component[CodeProps]
	highlighter Highlighter

	mu    sync.RWMutex
	cache map[string]string
	group singleflight.Group
}

func NewCodeViewer(h Highlighter) *CodeViewer {
	c := &CodeViewer{highlighter: h, cache: make(map[string]string)}
	c.Component = hx.New[CodeProps]("codeviewer", c)
	return c
}

func (c *CodeViewer) Hydrate(ctx context.Context, props *CodeProps) error {
	ex, ok := findExample(props.Page)
	if !ok {
		ex = Examples[0]
	}
	props.Page = ex.Key
	html, err := c.highlighted(ctx, ex)
	if err != nil {
		return err
	}
	props.HTML = html
	return nil
}

func (c *CodeViewer) Render(ctx context.Context, props CodeProps) templ.Component {
	return el("div", attrs("id", "code", "class", "w-full overflow-x-auto text-sm", "data-page", props.Page),
		templ.Raw(props.HTML),
	)
}

func (c *CodeViewer) highlighted(ctx context.Context, ex Example) (string, error) {
	c.mu.RLock()
	html, ok := c.cache[ex.Key]
	c.mu.RUnlock()
	if ok {
		return html, nil
	}

	v, err, _ := c.group.Do(ex.Key, func() (any, error) {
		src, err := sources.ReadFile(ex.File)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", ex.File, err)
		}
		html, err := c.highlighter.HTML(ctx, src)
		if err != nil {
			return "", fmt.Errorf("highlight %s: %w", ex.File, err)
		}
		c.mu.Lock()
		c.cache[ex.Key] = html
		c.mu.Unlock()
		return html, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// CodePage renders the tabs and loads the selected example once it scrolls
// into view.
func CodePage(c *CodeViewer, page string) templ.Component {
	if _, ok := findExample(page); !ok {
		page = Examples[0].Key
	}
	tabs := el("div", cls("flex space-x-4 py-2"),
		each(Examples, func(_ int, e Example) templ.Component {
			class := "text-sm"
			if e.Key == page {
				class += " " + activeLink
			}
			return el("a", attrs("href", "/code?page="+e.Key, "class", class), text(e.Title))
		}),
	)
	placeholder := el("p", cls("text-gray-500 text-sm"), text("Loading source..."))
	return el("div", cls("flex w-3/4 flex-col"),
		tabs,
		c.Lazy(CodeProps{Page: page}, placeholder),
	)
}
