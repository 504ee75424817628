package hx

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// Render writes component as an HTML response. It is for full pages served
// outside a Registry:
//
//	e.GET("/todo", func(c echo.Context) error {
//	    return hx.Render(c.Response(), c.Request(), page)
//	})
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX reports whether r was issued by htmx (HX-Request: true). Handlers
// use it to return a fragment instead of the full page.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted reports whether r is an hx-boost navigation (HX-Boosted). Boosted
// requests expect a whole page even though IsHTMX is true.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// CurrentURL is the browser URL at the time of the request
// (HX-Current-URL), or "" for non-htmx requests.
func CurrentURL(r *http.Request) string {
	return r.Header.Get("HX-Current-URL")
}

// TriggerName is the name attribute of the element that issued the request
// (HX-Trigger-Name). Live validation uses it to mark only that field touched:
//
//	if name := hx.TriggerName(r); name != "" {
//	    props.Touched = append(props.Touched, name)
//	}
func TriggerName(r *http.Request) string {
	return r.Header.Get("HX-Trigger-Name")
}

// TriggerID is the id of the element that issued the request (HX-Trigger).
// It is unrelated to the HX-Trigger response header built by
// BuildTriggerHeader.
func TriggerID(r *http.Request) string {
	return r.Header.Get("HX-Trigger")
}

// TargetID is the id of the element the response will be swapped into
// (HX-Target).
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}

// BuildTriggerHeader formats an HX-Trigger value: the bare event name, or a
// JSON object mapping the event to its detail when data is non-nil.
//
//	BuildTriggerHeader("saved", nil)
//	// saved
//	BuildTriggerHeader("todos:loaded", map[string]any{"count": 3})
//	// {"todos:loaded":{"count":3}}
//
// Detail that cannot be marshalled degrades to the bare name.
func BuildTriggerHeader(event string, data map[string]any) string {
	if event == "" {
		return ""
	}
	if data == nil {
		return event
	}
	out, err := json.Marshal(map[string]any{event: data})
	if err != nil {
		return event
	}
	return string(out)
}
