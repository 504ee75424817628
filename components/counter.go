package components

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/hxdemo/lib/counter"
	"github.com/pthm/hxdemo/lib/hx"
)

// CounterProps carries the last amount typed into the "by amount" input.
type CounterProps struct {
	Amount int `msgpack:"a,omitempty"`
	Value  int `msgpack:"-"`
}

// Counter renders the shared counter store.
type Counter struct {
	*hx.Component[CounterProps]
	store *counter.Store
}

func NewCounter(s *counter.Store) *Counter {
	c := &Counter{store: s}
	c.Component = hx.New[CounterProps]("counter", c)
	c.Action("increment", c.dispatch(counter.Incremented{}))
	c.Action("decrement", c.dispatch(counter.Decremented{}))
	c.Action("reset", c.dispatch(counter.Reset{}))
	c.Action("incrementBy", c.handleIncrementBy)
	return c
}

func (c *Counter) Hydrate(ctx context.Context, props *CounterProps) error {
	if props.Amount == 0 {
		props.Amount = 2
	}
	props.Value = c.store.Value()
	return nil
}

func (c *Counter) Render(ctx context.Context, props CounterProps) templ.Component {
	return counterView(c, props)
}

func (c *Counter) dispatch(e counter.Event) hx.Handler[CounterProps] {
	return func(ctx context.Context, props CounterProps, r *http.Request) hx.Result[CounterProps] {
		c.store.Dispatch(e)
		return hx.OK(props)
	}
}

func (c *Counter) handleIncrementBy(ctx context.Context, props CounterProps, r *http.Request) hx.Result[CounterProps] {
	raw := strings.TrimSpace(r.FormValue("amount"))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return hx.OK(props).Flash(hx.FlashError, fmt.Sprintf("%q is not a number", raw))
	}
	c.store.Dispatch(counter.IncrementedBy{Amount: n})
	props.Amount = n
	return hx.OK(props)
}

func counterView(c *Counter, props CounterProps) templ.Component {
	btn := func(action, label string) templ.Component {
		a := c.Call(action, props).Target("#counter").SwapOuter().Attrs()
		return el("button", merge(a, attrs("type", "button", "class", "bg-gray-700 px-3 py-1 rounded", "aria-label", action)), text(label))
	}

	by := c.Call("incrementBy", props).Target("#counter").SwapOuter().Include("#counter-amount").Attrs()

	return el("div", attrs("id", "counter", "class", "flex flex-col items-center space-y-3"),
		el("div", cls("flex items-center space-x-4"),
			btn("decrement", "-"),
			el("span", attrs("class", "text-4xl text-gray-50", "data-value", strconv.Itoa(props.Value)), textf("%d", props.Value)),
			btn("increment", "+"),
		),
		el("div", cls("flex items-center space-x-2 text-black"),
			void("input", attrs("id", "counter-amount", "name", "amount", "class", "px-2 py-1 w-16", "value", strconv.Itoa(props.Amount))),
			el("button", merge(by, attrs("type", "button", "class", "bg-yellow-500 px-3 py-1 rounded text-white")), text("Add amount")),
			btn("reset", "Reset"),
		),
	)
}
