// Package hx is a small server-rendered component runtime for templ and HTMX.
//
// A component embeds *Component[P], where P is its props type, and implements
// Lifecycle[P]:
//
//	type TodoList struct {
//	    *hx.Component[TodoProps]
//	    fetcher *todos.Fetcher
//	}
//
//	func NewTodoList(f *todos.Fetcher) *TodoList {
//	    c := &TodoList{fetcher: f}
//	    c.Component = hx.New[TodoProps]("todolist", c)
//	    c.Action("load", c.handleLoad)
//	    return c
//	}
//
// Props travel in the "p" parameter of every component URL, packed by
// lib/encoding. Keep them lean: fields tagged `msgpack:"-"` are never encoded
// and are filled in by Hydrate, which runs before every render and action.
//
// Requests are routed by path under the component prefix: GET "/" renders,
// "/<action>" runs the named action with its registered method. Handlers
// return a Result describing what to do next (render, redirect, flash,
// trigger events) instead of writing to the response.
//
// Components are mounted explicitly:
//
//	reg, err := hx.NewRegistry(key)
//	if err != nil {
//	    return err
//	}
//	reg.Add(todoList, counter)
//	mux.Handle("/_c/", reg.Handler())
//
// Non-GET requests must carry HX-Request: true, which browsers do not send
// cross-origin without a preflight.
package hx
