package hx

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Flash levels.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// Flash is a one-shot toast message. Handlers add them with Result.Flash:
//
//	return hx.OK(props).Flash(hx.FlashError, todos.FailureMessage)
//
// Level selects the toast-<level> class; Message is escaped and may span
// several lines.
type Flash struct {
	Level   string
	Message string
}

// ToastsID is the id of the element flashes are swapped into.
const ToastsID = "toasts"

// RenderFlashesOOB renders flashes as an out-of-band append to #toasts.
// It returns "" for no flashes. Components call it after the main render,
// so one response both swaps the target and shows the toasts:
//
//	<div id="toasts" hx-swap-oob="beforeend">
//	  <div class="toast toast-success" data-auto-dismiss="3000">Saved</div>
//	</div>
//
// data-auto-dismiss is the lifetime in milliseconds, read by the page script.
func RenderFlashesOOB(flashes []Flash) string {
	if len(flashes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<div id="` + ToastsID + `" hx-swap-oob="beforeend">`)
	for _, f := range flashes {
		sb.WriteString(`<div class="toast toast-`)
		sb.WriteString(templ.EscapeString(f.Level))
		sb.WriteString(`" data-auto-dismiss="3000">`)
		sb.WriteString(templ.EscapeString(f.Message))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// ToastContainer renders the empty #toasts element. Place it once in the
// page layout, outside any element a component swaps, typically last in
// <body>.
//
// Without it out-of-band flashes have nowhere to land and are dropped by htmx.
func ToastContainer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="`+ToastsID+`" class="toast-container"></div>`)
		return err
	})
}
