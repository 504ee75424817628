package forms

import (
	"net/url"

	"github.com/pthm/hxdemo/lib/todos"
)

// ReinitValues is the form re-initialized from a fetched todo.
type ReinitValues struct {
	Title     string `form:"title" json:"title" msgpack:"title" validate:"required,min=3"`
	Completed bool   `form:"completed" json:"completed" msgpack:"completed"`
}

// ReinitFromRecord seeds the form from r.
func ReinitFromRecord(r todos.TodoRecord) ReinitValues {
	return ReinitValues{Title: r.Title, Completed: r.Completed}
}

// ParseReinit reads the form from submitted values.
func ParseReinit(form url.Values) ReinitValues {
	return ReinitValues{
		Title:     form.Get("title"),
		Completed: truthy(form.Get("completed")),
	}
}

// Validate checks v.
func (v ReinitValues) Validate() (Errors, error) {
	return check(v, nil)
}
