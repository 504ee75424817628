package components

import (
	"context"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/pthm/hxdemo/lib/forms"
	"github.com/pthm/hxdemo/lib/hx"
	"github.com/pthm/hxdemo/lib/todos"
)

// ReinitProps is the re-init form. Seq selects which remote todo seeds the
// form; each reload advances it.
type ReinitProps struct {
	Seq     int                `msgpack:"s,omitempty"`
	Loaded  bool               `msgpack:"ok,omitempty"`
	Values  forms.ReinitValues `msgpack:"v"`
	Touched bool               `msgpack:"t,omitempty"`
	Errors  forms.Errors       `msgpack:"-"`
}

// ReinitForm is a form whose initial values come from the todo source. Its
// props carry remote data, so they are sealed rather than signed.
type ReinitForm struct {
	*hx.Component[ReinitProps]
	source  todos.Source
	timeout time.Duration
}

func NewReinitForm(source todos.Source, timeout time.Duration) *ReinitForm {
	c := &ReinitForm{source: source, timeout: timeout}
	c.Component = hx.New[ReinitProps]("reinitform", c)
	c.Sensitive()
	c.Action("reload", c.handleReload)
	c.Action("validate", c.handleValidate)
	c.Action("submit", c.handleSubmit)
	return c
}

func (c *ReinitForm) Hydrate(ctx context.Context, props *ReinitProps) error {
	if !props.Touched {
		props.Errors = forms.Errors{}
		return nil
	}
	errs, err := props.Values.Validate()
	if err != nil {
		return err
	}
	props.Errors = errs
	return nil
}

func (c *ReinitForm) Render(ctx context.Context, props ReinitProps) templ.Component {
	return reinitFormView(c, props)
}

// handleReload fetches the next todo and seeds the form from it. A failed
// fetch keeps the current values.
func (c *ReinitForm) handleReload(ctx context.Context, props ReinitProps, r *http.Request) hx.Result[ReinitProps] {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	records, err := c.source.List(ctx, props.Seq+1)
	if err != nil || len(records) == 0 {
		props.Loaded = true
		return hx.OK(props).Flash(hx.FlashError, todos.FailureMessage)
	}

	return hx.OK(ReinitProps{
		Seq:    props.Seq + 1,
		Loaded: true,
		Values: forms.ReinitFromRecord(records[len(records)-1]),
	})
}

func (c *ReinitForm) handleValidate(ctx context.Context, props ReinitProps, r *http.Request) hx.Result[ReinitProps] {
	props.Values = forms.ParseReinit(r.PostForm)
	props.Touched = true
	return hx.OK(props)
}

func (c *ReinitForm) handleSubmit(ctx context.Context, props ReinitProps, r *http.Request) hx.Result[ReinitProps] {
	props.Values = forms.ParseReinit(r.PostForm)
	props.Touched = true
	errs, err := props.Values.Validate()
	if err != nil {
		return hx.Err(props, err)
	}
	if len(errs) > 0 {
		return hx.OK(props)
	}
	props.Touched = false
	msg, err := valuesMessage(props.Values)
	if err != nil {
		return hx.Err(props, err)
	}
	return hx.OK(props).Flash(hx.FlashSuccess, msg)
}

func reinitFormView(c *ReinitForm, props ReinitProps) templ.Component {
	root := attrs("id", "reinit-form", "class", "flex w-1/2 flex-col space-y-2 text-black")
	if !props.Loaded {
		root = merge(root, c.Call("reload", props).OnLoad().TargetThis().SwapOuter().Attrs())
	}

	live := c.Call("validate", props).Trigger("change").Target("#reinit-form").SwapOuter().Attrs()
	submit := c.Call("submit", props).Target("#reinit-form").SwapOuter().Attrs()
	reload := c.Call("reload", props).Target("#reinit-form").SwapOuter().Attrs()

	return el("div", root,
		el("button", merge(reload, attrs("type", "button", "class", "bg-gray-700 py-1 rounded text-white")), text("Load next todo")),
		el("form", merge(submit, attrs("class", "flex flex-col space-y-1", "autocomplete", "off")),
			textInput("title", "Title", "text", "Title", props.Values.Title, live, props.Errors),
			checkbox("checkbox", "completed", "on", "Completed", props.Values.Completed, live),
			el("button", attrs("type", "submit", "class", submitClass, "disabled", props.Errors.Has("title")), text("Submit")),
			valuesJSON(props.Values),
		),
	)
}
