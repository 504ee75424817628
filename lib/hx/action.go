package hx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// Action is a fluent builder for the hx-* attributes of one request.
// Component.Call and Component.Refresh return one already pointed at the
// component's URL with the props encoded:
//
//	// attributes for a button that loads three todos into the list
//	load := c.Call("load", props).
//	    Vals(map[string]any{"limit": 3}).
//	    Target("#todos").SwapOuter().
//	    Indicator("#spinner").
//	    Attrs()
//
//	// re-render whenever another component reports a change
//	c.Refresh(props).OnEvent("todos:loaded").Attrs()
//
//	// poll every five seconds
//	c.Refresh(props).Every(5 * time.Second).Attrs()
//
// Setters mutate and return the receiver; build a fresh Action per element.
type Action struct {
	URL    string
	Method string

	target    string
	swap      SwapMode
	trigger   string
	confirm   string
	indicator string
	include   string
	pushURL   bool
	vals      map[string]any
}

// NewAction returns an action requesting url with method. An empty method
// means GET. Prefer Component.Call, which also encodes props.
func NewAction(url, method string) *Action {
	if method == "" {
		method = http.MethodGet
	}
	return &Action{URL: url, Method: method}
}

func (a *Action) Target(selector string) *Action {
	a.target = selector
	return a
}

func (a *Action) TargetThis() *Action { return a.Target("this") }

func (a *Action) TargetClosest(selector string) *Action { return a.Target("closest " + selector) }

func (a *Action) TargetFind(selector string) *Action { return a.Target("find " + selector) }

func (a *Action) Swap(mode SwapMode) *Action {
	a.swap = mode
	return a
}

func (a *Action) SwapOuter() *Action     { return a.Swap(SwapOuter) }
func (a *Action) SwapInner() *Action     { return a.Swap(SwapInner) }
func (a *Action) SwapBeforeEnd() *Action { return a.Swap(SwapBeforeEnd) }
func (a *Action) SwapNone() *Action      { return a.Swap(SwapNone) }

// Trigger sets hx-trigger verbatim.
func (a *Action) Trigger(spec string) *Action {
	a.trigger = spec
	return a
}

// Every polls at interval d.
func (a *Action) Every(d time.Duration) *Action {
	if d%time.Second == 0 {
		return a.Trigger(fmt.Sprintf("every %ds", d/time.Second))
	}
	return a.Trigger(fmt.Sprintf("every %dms", d/time.Millisecond))
}

// OnEvent fires when event reaches the body, which is where events emitted
// through HX-Trigger bubble to.
func (a *Action) OnEvent(event string) *Action {
	return a.Trigger(event + " from:body")
}

func (a *Action) OnLoad() *Action { return a.Trigger("load") }

// OnChange fires when a form control changes. Text inputs are debounced.
func (a *Action) OnChange() *Action {
	return a.Trigger("change, keyup changed delay:300ms")
}

func (a *Action) Confirm(msg string) *Action {
	a.confirm = msg
	return a
}

func (a *Action) Indicator(selector string) *Action {
	a.indicator = selector
	return a
}

// Include adds the values of the elements matching selector to the request.
func (a *Action) Include(selector string) *Action {
	a.include = selector
	return a
}

func (a *Action) PushURL() *Action {
	a.pushURL = true
	return a
}

// Vals adds extra request parameters, merged over earlier calls.
func (a *Action) Vals(v map[string]any) *Action {
	if a.vals == nil {
		a.vals = make(map[string]any, len(v))
	}
	for k, val := range v {
		a.vals[k] = val
	}
	return a
}

// Attrs renders the action as templ attributes.
func (a *Action) Attrs() templ.Attributes {
	attrs := templ.Attributes{
		"hx-" + strings.ToLower(a.Method): a.URL,
	}
	set := func(k, v string) {
		if v != "" {
			attrs[k] = v
		}
	}
	set("hx-target", a.target)
	set("hx-swap", string(a.swap))
	set("hx-trigger", a.trigger)
	set("hx-confirm", a.confirm)
	set("hx-indicator", a.indicator)
	set("hx-include", a.include)
	if a.pushURL {
		attrs["hx-push-url"] = "true"
	}
	if len(a.vals) > 0 {
		if data, err := json.Marshal(a.vals); err == nil {
			attrs["hx-vals"] = string(data)
		}
	}
	return attrs
}

// AsLink renders the action as a plain href, for GET actions that should
// also work without JavaScript.
func (a *Action) AsLink() templ.Attributes {
	return templ.Attributes{"href": a.URL}
}
