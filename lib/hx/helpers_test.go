package hx

import (
	"net/http/httptest"
	"testing"
)

func TestRequestHeaders(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("HX-Request", "true")
	r.Header.Set("HX-Boosted", "true")
	r.Header.Set("HX-Current-URL", "http://localhost/todo")
	r.Header.Set("HX-Trigger-Name", "email")
	r.Header.Set("HX-Trigger", "email-input")
	r.Header.Set("HX-Target", "basic-form")

	if !IsHTMX(r) || !IsBoosted(r) {
		t.Error("expected htmx and boosted")
	}
	if CurrentURL(r) != "http://localhost/todo" || TriggerName(r) != "email" ||
		TriggerID(r) != "email-input" || TargetID(r) != "basic-form" {
		t.Errorf("headers not read: %v", r.Header)
	}
	if IsHTMX(httptest.NewRequest("GET", "/", nil)) {
		t.Error("plain request reported as htmx")
	}
}

func TestBuildTriggerHeader(t *testing.T) {
	tests := []struct {
		event string
		data  map[string]any
		want  string
	}{
		{"", nil, ""},
		{"todos:loading", nil, "todos:loading"},
		{"todos:loading", map[string]any{"limit": 10}, `{"todos:loading":{"limit":10}}`},
	}
	for _, tt := range tests {
		if got := BuildTriggerHeader(tt.event, tt.data); got != tt.want {
			t.Errorf("BuildTriggerHeader(%q, %v) = %q, want %q", tt.event, tt.data, got, tt.want)
		}
	}
}
