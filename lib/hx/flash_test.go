package hx

import (
	"context"
	"strings"
	"testing"
)

func TestRenderFlashesOOBEmpty(t *testing.T) {
	if got := RenderFlashesOOB(nil); got != "" {
		t.Errorf("RenderFlashesOOB(nil) = %q", got)
	}
	if got := RenderFlashesOOB([]Flash{}); got != "" {
		t.Errorf("RenderFlashesOOB([]) = %q", got)
	}
}

func TestRenderFlashesOOB(t *testing.T) {
	got := RenderFlashesOOB([]Flash{
		{Level: FlashSuccess, Message: "saved"},
		{Level: FlashWarning, Message: `<script>alert("x")</script>`},
	})

	for _, want := range []string{
		`<div id="toasts" hx-swap-oob="beforeend">`,
		`class="toast toast-success"`,
		`class="toast toast-warning"`,
		`data-auto-dismiss="3000"`,
		`&lt;script&gt;`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %s", want, got)
		}
	}
	if strings.Contains(got, "<script>") {
		t.Error("message was not escaped")
	}
	if n := strings.Count(got, `id="toasts"`); n != 1 {
		t.Errorf("toasts containers = %d, want 1", n)
	}
}

func TestRenderFlashesOOBMarkup(t *testing.T) {
	got := RenderFlashesOOB([]Flash{{Level: FlashError, Message: `Failed to fetch "todos".`}})
	want := `<div id="toasts" hx-swap-oob="beforeend"><div class="toast toast-error" data-auto-dismiss="3000">Failed to fetch &#34;todos&#34;.</div></div>`
	if got != want {
		t.Errorf("got %q", got)
	}
}

func TestFlashesRoundTripThroughParser(t *testing.T) {
	in := []Flash{
		{Level: FlashError, Message: `"lots" is not a number`},
		{Level: FlashInfo, Message: "a & b"},
		{Level: FlashSuccess, Message: "{\n  \"title\": \"abc\"\n}"},
	}
	got := parseFlashes(RenderFlashesOOB(in))

	if len(got) != len(in) {
		t.Fatalf("parsed %d flashes, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("flash %d = %+v, want %+v", i, got[i], in[i])
		}
	}
}

func TestToastContainer(t *testing.T) {
	var sb strings.Builder
	if err := ToastContainer().Render(context.Background(), &sb); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), `id="toasts"`) {
		t.Errorf("container = %q", sb.String())
	}
}
