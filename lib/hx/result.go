package hx

// Result is returned by action handlers to say how the request completes.
// Handlers never write to the ResponseWriter themselves (see Skip); the
// component applies the Result once the handler returns.
//
//	// re-render with the updated props
//	return hx.OK(props)
//
//	// re-render, show a toast and tell listeners the list changed
//	return hx.OK(props).
//	    Flash(hx.FlashSuccess, "Saved").
//	    Trigger("todos:changed", map[string]any{"count": len(props.Items)})
//
//	// let the registry's error handler answer
//	return hx.Err(props, err)
//
//	// navigate the browser elsewhere
//	return hx.Redirect[TodoProps]("/todo")
//
// OK results are re-hydrated and rendered. Err results go to the registry's
// error handler. Skip means the handler wrote the response itself.
//
// Chain methods return a modified copy, so a Result can be built up in
// steps without aliasing.
type Result[P any] struct {
	props              P
	err                error
	redirect           string
	flashes            []Flash
	trigger            string
	triggerData        map[string]any
	triggerAfterSettle string
	headers            map[string]string
	status             int
	skip               bool
}

// OK renders props. Hydrate runs again before the render, so fields the
// handler leaves stale (msgpack:"-") are recomputed.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Err hands err to the error handler, which writes the whole response.
// Anything else chained onto the Result is ignored. To keep the view and
// report the failure as a toast, return OK instead:
//
//	return hx.OK(props).Flash(hx.FlashError, "Could not save")
//
// Decode and hydration failures reach the error handler the same way.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Skip leaves the response to the handler, for streams or downloads:
//
//	w.Header().Set("Content-Type", "text/event-stream")
//	stream(ctx, w)
//	return hx.Skip[TodoProps]()
func Skip[P any]() Result[P] {
	return Result[P]{skip: true}
}

// Redirect sends the browser to url via HX-Redirect. htmx performs a full
// client-side navigation; nothing is rendered.
func Redirect[P any](url string) Result[P] {
	return Result[P]{redirect: url}
}

// Flash queues a toast. Flashes are appended to the response as an
// out-of-band swap into #toasts, one toast per call:
//
//	return hx.OK(props).
//	    Flash(hx.FlashSuccess, "Todo added").
//	    Flash(hx.FlashInfo, "3 items left")
func (r Result[P]) Flash(level, message string) Result[P] {
	r.flashes = append(r.flashes, Flash{Level: level, Message: message})
	return r
}

// Trigger emits event through HX-Trigger, with optional detail data. Other
// components listen with Action.OnEvent:
//
//	// emitter
//	return hx.OK(props).Trigger("todos:loaded", map[string]any{"count": 3})
//
//	// listener
//	c.Refresh(props).OnEvent("todos:loaded").Attrs()
//
// A later call replaces the earlier event.
func (r Result[P]) Trigger(event string, data ...map[string]any) Result[P] {
	r.trigger = event
	if len(data) > 0 {
		r.triggerData = data[0]
	}
	return r
}

// PushURL sets HX-Push-Url.
func (r Result[P]) PushURL(url string) Result[P] {
	return r.Header("HX-Push-Url", url)
}

// TriggerURLSync emits "url:sync" once the swap has settled, after the
// pushed URL is in place.
func (r Result[P]) TriggerURLSync() Result[P] {
	r.triggerAfterSettle = "url:sync"
	return r
}

// Header sets a response header. HX-Trigger and HX-Trigger-After-Settle
// set through Trigger and TriggerURLSync take precedence.
func (r Result[P]) Header(key, value string) Result[P] {
	headers := make(map[string]string, len(r.headers)+1)
	for k, v := range r.headers {
		headers[k] = v
	}
	headers[key] = value
	r.headers = headers
	return r
}

// Status overrides the response status. Zero means 200.
func (r Result[P]) Status(code int) Result[P] {
	r.status = code
	return r
}

func (r Result[P]) Props() P                    { return r.props }
func (r Result[P]) Cause() error                { return r.err }
func (r Result[P]) RedirectURL() string         { return r.redirect }
func (r Result[P]) Flashes() []Flash            { return r.flashes }
func (r Result[P]) TriggerEvent() string        { return r.trigger }
func (r Result[P]) TriggerData() map[string]any { return r.triggerData }
func (r Result[P]) TriggerAfterSettle() string  { return r.triggerAfterSettle }
func (r Result[P]) Headers() map[string]string  { return r.headers }
func (r Result[P]) StatusCode() int             { return r.status }
func (r Result[P]) Skipped() bool               { return r.skip }
