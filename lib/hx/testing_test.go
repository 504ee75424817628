package hx

import (
	"reflect"
	"testing"
)

func TestParseTriggerHeader(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"saved", []string{"saved"}},
		{"a, b ,c", []string{"a", "b", "c"}},
		{`{"todos:loading":{"limit":3}}`, []string{"todos:loading"}},
		{`{"b":1,"a":null}`, []string{"a", "b"}},
		{`{"b":1,"a":{"x":"y"}}`, []string{"a", "b"}},
		{`{broken`, nil},
	}
	for _, tt := range tests {
		if got := parseTriggerHeader(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseTriggerHeader(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTestResultQueries(t *testing.T) {
	r := &TestResult{
		HTML:            "<p>hello</p>",
		StatusCode:      200,
		TriggeredEvents: []string{"a", "b"},
		Flashes:         []Flash{{Level: FlashSuccess, Message: "ok"}},
	}

	if !r.IsOK() || !r.HTMLContains("hello") {
		t.Error("IsOK/HTMLContains")
	}
	if !r.HasEvent("b") || r.HasEvent("c") {
		t.Error("HasEvent")
	}
	if !r.HasFlash(FlashSuccess, "ok") || r.HasFlash(FlashError, "ok") {
		t.Error("HasFlash")
	}
}

func TestParseFlashesMultiline(t *testing.T) {
	body := `<form></form><div id="toasts" hx-swap-oob="beforeend">` +
		`<div class="toast toast-success" data-auto-dismiss="3000">{
  &#34;name&#34;: &#34;Frank&#34;
}</div><div class="toast toast-info" data-auto-dismiss="3000">next</div></div>`

	got := parseFlashes(body)
	if len(got) != 2 {
		t.Fatalf("parsed %d flashes, want 2: %v", len(got), got)
	}
	if want := "{\n  \"name\": \"Frank\"\n}"; got[0].Message != want {
		t.Errorf("message = %q, want %q", got[0].Message, want)
	}
	if got[1] != (Flash{Level: FlashInfo, Message: "next"}) {
		t.Errorf("second flash = %+v", got[1])
	}
}

func TestParseFlashesNone(t *testing.T) {
	if got := parseFlashes("<div>no toasts</div>"); got != nil {
		t.Errorf("parseFlashes = %v", got)
	}
}
