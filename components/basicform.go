package components

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/hxdemo/lib/forms"
	"github.com/pthm/hxdemo/lib/hx"
)

// BasicProps is the basic form between requests. Errors are recomputed on
// every request and shown only for touched fields.
type BasicProps struct {
	Values  forms.BasicValues `msgpack:"v"`
	Touched []string          `msgpack:"t,omitempty"`
	Errors  forms.Errors      `msgpack:"-"`
	All     forms.Errors      `msgpack:"-"`
}

var basicFields = []string{"name", "email", "select", "single_checkbox", "group_checkbox", "radio"}

// BasicForm validates as the user edits and flashes the values on submit.
type BasicForm struct {
	*hx.Component[BasicProps]
}

func NewBasicForm() *BasicForm {
	c := &BasicForm{}
	c.Component = hx.New[BasicProps]("basicform", c)
	c.Action("validate", c.handleValidate)
	c.Action("submit", c.handleSubmit)
	return c
}

// EmptyBasicProps is the untouched form.
func EmptyBasicProps() BasicProps {
	return BasicProps{Values: forms.EmptyBasic()}
}

func (c *BasicForm) Hydrate(ctx context.Context, props *BasicProps) error {
	if props.Values.GroupCheckbox == nil {
		props.Values.GroupCheckbox = []string{}
	}
	if len(props.Touched) == 0 {
		props.All, props.Errors = forms.Errors{}, forms.Errors{}
		return nil
	}
	all, err := props.Values.Validate()
	if err != nil {
		return err
	}
	props.All = all
	props.Errors = all.Only(props.Touched...)
	return nil
}

func (c *BasicForm) Render(ctx context.Context, props BasicProps) templ.Component {
	return basicFormView(c, props)
}

func (c *BasicForm) handleValidate(ctx context.Context, props BasicProps, r *http.Request) hx.Result[BasicProps] {
	props.Values = forms.ParseBasic(r.PostForm)
	props.Touched = touch(props.Touched, hx.TriggerName(r))
	return hx.OK(props)
}

func (c *BasicForm) handleSubmit(ctx context.Context, props BasicProps, r *http.Request) hx.Result[BasicProps] {
	props.Values = forms.ParseBasic(r.PostForm)
	errs, err := props.Values.Validate()
	if err != nil {
		return hx.Err(props, err)
	}
	if len(errs) > 0 {
		props.Touched = append([]string(nil), basicFields...)
		return hx.OK(props)
	}
	msg, err := valuesMessage(props.Values)
	if err != nil {
		return hx.Err(props, err)
	}
	return hx.OK(EmptyBasicProps()).Flash(hx.FlashSuccess, msg)
}

func basicFormView(c *BasicForm, props BasicProps) templ.Component {
	v, errs := props.Values, props.Errors
	live := c.Call("validate", props).Trigger("change").TargetClosest("form").SwapOuter().Attrs()
	submit := c.Call("submit", props).TargetThis().SwapOuter().Attrs()

	return el("div", cls("flex w-1/2 flex-col text-black"),
		el("form", merge(submit, attrs("id", "basic-form", "class", "flex w-1/2 flex-col space-y-1", "autocomplete", "off")),
			textInput("name", "Name", "text", "Frank", v.Name, live, errs),
			textInput("email", "Email", "email", "frack@gmail.com", v.Email, live, errs),

			el("label", attrs("class", labelClass, "for", "select"), text("Select")),
			el("select", merge(live, attrs("id", "select", "name", "select", "class", inputClass)),
				el("option", attrs("value", "", "selected", v.Select == ""), text("select fav colors")),
				each(forms.Colors, func(_ int, color string) templ.Component {
					return el("option", attrs("value", color, "selected", v.Select == color), text(color))
				}),
			),
			fieldError(errs, "select"),

			checkbox("checkbox", "single_checkbox", "on", "I agree", v.SingleCheckbox, live),
			fieldError(errs, "single_checkbox"),

			el("div", cls("text-yellow-100"), text("Group CheckBox:")),
			el("div", attrs("role", "group"),
				each(forms.Platforms, func(_ int, p string) templ.Component {
					return checkbox("checkbox", "group_checkbox", p, platformLabel(p), v.Checked(p), live)
				}),
			),
			fieldError(errs, "group_checkbox"),

			el("div", attrs("role", "group"),
				el("div", cls("text-yellow-100"), text("Radio")),
				each(forms.Roles, func(_ int, role string) templ.Component {
					return checkbox("radio", "radio", role, strings.ToUpper(role[:1])+role[1:], v.Radio == role, live)
				}),
			),
			fieldError(errs, "radio"),

			el("button", attrs("type", "submit", "class", submitClass, "disabled", forms.SubmitDisabled(props.All)), text("Submit")),
			valuesJSON(v),
		),
	)
}

func platformLabel(p string) string {
	switch p {
	case "insta":
		return "Instagram"
	case "youtube":
		return "Youtube"
	}
	return strings.ToUpper(p[:1]) + p[1:]
}
