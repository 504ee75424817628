package hx

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// TestResult is a recorded component response.
type TestResult struct {
	HTML            string
	StatusCode      int
	Headers         http.Header
	TriggeredEvents []string
	Flashes         []Flash
	RedirectURL     string
}

// Server is anything that serves component routes.
type Server interface {
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}

// TestRender hydrates and renders c without HTTP.
func TestRender[P any](ctx context.Context, c Lifecycle[P], props P) (*TestResult, error) {
	if err := c.Hydrate(ctx, &props); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := c.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}
	return &TestResult{HTML: buf.String(), StatusCode: http.StatusOK, Headers: make(http.Header)}, nil
}

// TestAction sends an htmx request to s and records the response. Form
// values are sent url-encoded in the body.
func TestAction(s Server, method, target string, form url.Values) *TestResult {
	var body *strings.Reader
	if len(form) > 0 {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, body)
	if len(form) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("HX-Request", "true")

	rec := httptest.NewRecorder()
	s.HXServeHTTP(rec, req)
	return record(rec)
}

// TestGet is TestAction with GET.
func TestGet(s Server, target string) *TestResult {
	return TestAction(s, http.MethodGet, target, nil)
}

// TestPost is TestAction with POST.
func TestPost(s Server, target string, form url.Values) *TestResult {
	return TestAction(s, http.MethodPost, target, form)
}

func record(rec *httptest.ResponseRecorder) *TestResult {
	res := &TestResult{
		HTML:        rec.Body.String(),
		StatusCode:  rec.Code,
		Headers:     rec.Header(),
		RedirectURL: rec.Header().Get("HX-Redirect"),
	}
	res.TriggeredEvents = parseTriggerHeader(rec.Header().Get("HX-Trigger"))
	res.Flashes = parseFlashes(res.HTML)
	return res
}

func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

func (r *TestResult) HasEvent(event string) bool {
	for _, e := range r.TriggeredEvents {
		if e == event {
			return true
		}
	}
	return false
}

func (r *TestResult) HasFlash(level, message string) bool {
	for _, f := range r.Flashes {
		if f.Level == level && f.Message == message {
			return true
		}
	}
	return false
}

func (r *TestResult) IsOK() bool { return r.StatusCode == http.StatusOK }

// parseTriggerHeader returns the event names of an HX-Trigger value, either
// a JSON object or a comma-separated list.
func parseTriggerHeader(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if strings.HasPrefix(v, "{") {
		var m map[string]json.RawMessage
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil
		}
		events := make([]string, 0, len(m))
		for k := range m {
			events = append(events, k)
		}
		sort.Strings(events)
		return events
	}
	var events []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			events = append(events, p)
		}
	}
	return events
}

var toastRe = regexp.MustCompile(`(?s)<div class="toast toast-([^"]*)"[^>]*>(.*?)</div>`)

func parseFlashes(body string) []Flash {
	var flashes []Flash
	for _, m := range toastRe.FindAllStringSubmatch(body, -1) {
		flashes = append(flashes, Flash{Level: m[1], Message: html.UnescapeString(m[2])})
	}
	return flashes
}
