package forms

import (
	"fmt"
	"net/url"
	"strings"
)

// ContextValues is the form whose third field is derived from the other two.
type ContextValues struct {
	TextA string `form:"textA" json:"textA" msgpack:"a"`
	TextB string `form:"textB" json:"textB" msgpack:"b"`
	TextC string `form:"textC" json:"textC" msgpack:"c"`
}

// ParseContext reads the form from submitted values.
func ParseContext(form url.Values) ContextValues {
	return ContextValues{
		TextA: form.Get("textA"),
		TextB: form.Get("textB"),
		TextC: form.Get("textC"),
	}
}

// Derive fills TextC from TextA and TextB once both are non-blank. TextC is
// left as is otherwise.
func (v ContextValues) Derive() ContextValues {
	if strings.TrimSpace(v.TextA) != "" && strings.TrimSpace(v.TextB) != "" {
		v.TextC = fmt.Sprintf("textA: %s, textB: %s", v.TextA, v.TextB)
	}
	return v
}
