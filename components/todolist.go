package components

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/pthm/hxdemo/lib/hx"
	"github.com/pthm/hxdemo/lib/todos"
)

// EventTodosLoading is emitted when a fetch has been issued.
const EventTodosLoading = "todos:loading"

// pollInterval is how often a loading list re-renders itself.
const pollInterval = 500 * time.Millisecond

// TodoProps holds the requested limit. State is read from the store on every
// request.
type TodoProps struct {
	Limit int         `msgpack:"l,omitempty"`
	State todos.State `msgpack:"-"`
}

// TodoList shows the todo store and issues fetches.
type TodoList struct {
	*hx.Component[TodoProps]
	fetcher      *todos.Fetcher
	defaultLimit int
}

func NewTodoList(f *todos.Fetcher, defaultLimit int) *TodoList {
	if defaultLimit <= 0 {
		defaultLimit = todos.DefaultLimit
	}
	c := &TodoList{fetcher: f, defaultLimit: defaultLimit}
	c.Component = hx.New[TodoProps]("todolist", c)
	c.Action("load", c.handleLoad)
	return c
}

func (c *TodoList) Hydrate(ctx context.Context, props *TodoProps) error {
	if props.Limit == 0 {
		props.Limit = c.defaultLimit
	}
	props.State = c.fetcher.Store().State()
	return nil
}

func (c *TodoList) Render(ctx context.Context, props TodoProps) templ.Component {
	return todoListView(c, props)
}

// handleLoad issues a fetch without waiting for it. Started has been applied
// by the time the list re-renders, so the response shows the loading state
// and starts polling.
func (c *TodoList) handleLoad(ctx context.Context, props TodoProps, r *http.Request) hx.Result[TodoProps] {
	done := c.fetcher.FetchTodos(ctx, props.Limit)
	select {
	case err := <-done:
		if errors.Is(err, todos.ErrInvalidLimit) {
			return hx.Err(props, err)
		}
	default:
	}
	return hx.OK(props).Trigger(EventTodosLoading, map[string]any{"limit": props.Limit})
}

func todoListView(c *TodoList, props TodoProps) templ.Component {
	st := props.State
	loading := st.Status == todos.StatusLoading

	root := attrs("id", "todos", "class", "w-1/2 flex flex-col space-y-2", "data-status", string(st.Status))
	if loading {
		root = merge(root, c.Refresh(props).Every(pollInterval).TargetThis().SwapOuter().Attrs())
	}

	load := c.Call("load", props).Target("#todos").SwapOuter().Attrs()
	button := el("button", merge(load, attrs(
		"type", "button",
		"class", "bg-yellow-500 py-1 rounded w-full text-white focus:outline-none disabled:opacity-50",
		"disabled", loading,
	)), text(loadLabel(loading)))

	var errLine templ.Component
	if msg, ok := todos.SelectError(st); ok {
		errLine = el("p", attrs("class", "text-red-400 text-xs", "role", "alert"), text(msg))
	}

	list := todos.SelectList(st)
	var body templ.Component
	if len(list) == 0 {
		body = el("p", cls("text-gray-500 text-sm"), text("No todos loaded."))
	} else {
		body = el("ul", cls("space-y-1"), each(list, func(_ int, t todos.TodoRecord) templ.Component {
			return el("li", attrs("class", "flex items-center space-x-2", "data-id", t.ID),
				void("input", attrs("type", "checkbox", "disabled", true, "checked", t.Completed)),
				el("span", nil, text(t.Title)),
			)
		}))
	}

	return el("div", root,
		button,
		el("p", cls("text-xs text-yellow-100"), textf("Status: %s · %d loaded", st.Status, len(list))),
		errLine,
		body,
	)
}

func loadLabel(loading bool) string {
	if loading {
		return "Loading..."
	}
	return "Load todos"
}
