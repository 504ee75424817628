package components

import (
	"github.com/a-h/templ"

	"github.com/pthm/hxdemo/lib/hx"
)

// Route is a page reachable from the nav bar.
type Route struct {
	Path  string
	Title string
}

// Routes lists the pages in nav order.
var Routes = []Route{
	{"/code", "Code"},
	{"/", "Home"},
	{"/reinit", "Re-init"},
	{"/context", "Context"},
	{"/counter", "Counter"},
	{"/todo", "Todos"},
}

const activeLink = "border-b-2 border-blue-200"

// Layout wraps body in the page shell with the nav bar highlighting active.
func Layout(title, active string, body templ.Component) templ.Component {
	head := el("head", nil,
		void("meta", attrs("charset", "utf-8")),
		void("meta", attrs("name", "viewport", "content", "width=device-width, initial-scale=1")),
		el("title", nil, text(title+" · hxdemo")),
		el("script", attrs("src", "https://unpkg.com/htmx.org@2.0.4")),
		el("script", attrs("src", "https://cdn.tailwindcss.com")),
		void("link", attrs("rel", "stylesheet", "href", "https://cdn.jsdelivr.net/npm/prismjs@1/themes/prism-tomorrow.min.css")),
	)

	return templ.Join(
		templ.Raw("<!DOCTYPE html>"),
		el("html", attrs("lang", "en"),
			head,
			el("body", cls("h-screen flex flex-col bg-gray-900 text-gray-300 items-center"),
				Nav(active),
				el("main", cls("w-full flex-1 overflow-y-auto flex flex-col"), body),
				hx.ToastContainer(),
			),
		),
	)
}

// Nav renders the top bar. The link whose path equals active is underlined.
func Nav(active string) templ.Component {
	return el("nav", cls("flex w-full h-10 bg-gray-800 justify-center items-center"),
		el("div", cls("flex ml-10 space-x-4"),
			each(Routes, func(_ int, r Route) templ.Component {
				class := "text-xl"
				if r.Path == active {
					class += " " + activeLink
				}
				return el("a", attrs("href", r.Path, "class", class), text(r.Title))
			}),
		),
	)
}

// Centered lays out page content in the middle of the viewport.
func Centered(c templ.Component) templ.Component {
	return el("div", cls("flex h-full w-full justify-center items-center flex-col"), c)
}

// NotFound is the page for unknown paths.
func NotFound(path string) templ.Component {
	return Layout("Not found", path,
		el("div", cls("h-full flex justify-center items-center"),
			el("h2", cls("text-gray-50"), text("PAGE NOT FOUND")),
		),
	)
}
