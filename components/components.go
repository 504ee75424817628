// Package components holds the demo pages: one hx component per example plus
// the page shell they are rendered in.
package components

import (
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/pthm/hxdemo/lib/counter"
	"github.com/pthm/hxdemo/lib/hx"
	"github.com/pthm/hxdemo/lib/todos"
)

// Deps are the stores and services the components render and act on.
type Deps struct {
	Todos        *todos.Fetcher
	Source       todos.Source
	Counter      *counter.Store
	Highlighter  Highlighter
	Timeout      time.Duration
	DefaultLimit int
}

// Set is every component of the demo, mounted on one registry.
type Set struct {
	TodoList    *TodoList
	Counter     *Counter
	BasicForm   *BasicForm
	ReinitForm  *ReinitForm
	ContextForm *ContextForm
	CodeViewer  *CodeViewer
}

// Init builds the components from deps and adds them to reg.
func Init(deps Deps, reg *hx.Registry) *Set {
	s := &Set{
		TodoList:    NewTodoList(deps.Todos, deps.DefaultLimit),
		Counter:     NewCounter(deps.Counter),
		BasicForm:   NewBasicForm(),
		ReinitForm:  NewReinitForm(deps.Source, deps.Timeout),
		ContextForm: NewContextForm(),
		CodeViewer:  NewCodeViewer(deps.Highlighter),
	}
	reg.Add(s.TodoList, s.Counter, s.BasicForm, s.ReinitForm, s.ContextForm, s.CodeViewer)
	return s
}

// Page returns the full page for path, or false when no page lives there.
func (s *Set) Page(path string, query url.Values) (templ.Component, bool) {
	var title string
	var body templ.Component

	switch path {
	case "/":
		title, body = "Home", Centered(s.BasicForm.View(EmptyBasicProps()))
	case "/reinit":
		title, body = "Re-init", Centered(s.ReinitForm.View(ReinitProps{}))
	case "/context":
		title, body = "Context", Centered(s.ContextForm.View(ContextProps{}))
	case "/counter":
		loading := el("p", cls("text-gray-500 text-sm"), text("Loading counter..."))
		title, body = "Counter", Centered(s.Counter.Defer(CounterProps{}, loading))
	case "/todo":
		title, body = "Todos", Centered(s.TodoList.View(TodoProps{}))
	case "/code":
		title, body = "Code", Centered(CodePage(s.CodeViewer, query.Get("page")))
	default:
		return nil, false
	}
	return Layout(title, path, body), true
}
