package components

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/pthm/hxdemo/lib/forms"
	"github.com/pthm/hxdemo/lib/hx"
)

// ContextProps is the context form. textC follows textA and textB.
type ContextProps struct {
	Values forms.ContextValues `msgpack:"v"`
}

// ContextForm demonstrates a field derived from its siblings.
type ContextForm struct {
	*hx.Component[ContextProps]
}

func NewContextForm() *ContextForm {
	c := &ContextForm{}
	c.Component = hx.New[ContextProps]("contextform", c)
	c.Action("derive", c.handleDerive)
	c.Action("submit", c.handleSubmit)
	return c
}

func (c *ContextForm) Hydrate(ctx context.Context, props *ContextProps) error { return nil }

func (c *ContextForm) Render(ctx context.Context, props ContextProps) templ.Component {
	return contextFormView(c, props)
}

func (c *ContextForm) handleDerive(ctx context.Context, props ContextProps, r *http.Request) hx.Result[ContextProps] {
	props.Values = forms.ParseContext(r.PostForm).Derive()
	return hx.OK(props)
}

func (c *ContextForm) handleSubmit(ctx context.Context, props ContextProps, r *http.Request) hx.Result[ContextProps] {
	v := forms.ParseContext(r.PostForm).Derive()
	msg, err := valuesMessage(v)
	if err != nil {
		return hx.Err(props, err)
	}
	return hx.OK(ContextProps{}).Flash(hx.FlashSuccess, msg)
}

func contextFormView(c *ContextForm, props ContextProps) templ.Component {
	v := props.Values
	live := c.Call("derive", props).OnChange().Target("#context-form").SwapOuter().Attrs()
	submit := c.Call("submit", props).TargetThis().SwapOuter().Attrs()
	none := templ.Attributes{}

	return el("form", merge(submit, attrs("id", "context-form", "class", "flex w-1/2 flex-col space-y-1 text-black", "autocomplete", "off")),
		textInput("textA", "textA", "text", "", v.TextA, live, nil),
		textInput("textB", "textB", "text", "", v.TextB, live, nil),
		textInput("textC", "textC", "text", "", v.TextC, none, nil),
		el("button", attrs("type", "submit", "class", submitClass), text("Submit")),
		valuesJSON(v),
	)
}
