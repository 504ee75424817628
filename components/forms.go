package components

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/a-h/templ"

	"github.com/pthm/hxdemo/lib/forms"
)

const (
	labelClass  = "text-yellow-100 text-xs"
	inputClass  = "px-2 py-1 focus:outline-none"
	errorClass  = "text-red-400 text-xs"
	submitClass = "bg-yellow-500 py-1 rounded w-full text-white focus:outline-none disabled:opacity-50"
)

// touch adds name to touched when it names a field.
func touch(touched []string, name string) []string {
	if name == "" || slices.Contains(touched, name) {
		return touched
	}
	return append(touched, name)
}

func fieldError(errs forms.Errors, name string) templ.Component {
	if !errs.Has(name) {
		return nil
	}
	return el("div", attrs("class", errorClass, "data-error", name), text(errs.Get(name)))
}

func textInput(name, label, kind, placeholder, value string, live templ.Attributes, errs forms.Errors) templ.Component {
	return fragment(
		el("label", attrs("class", labelClass, "for", name), text(label)),
		void("input", merge(live, attrs(
			"id", name, "name", name, "type", kind,
			"placeholder", placeholder, "value", value, "class", inputClass,
		))),
		fieldError(errs, name),
	)
}

func checkbox(kind, name, value, label string, checked bool, live templ.Attributes) templ.Component {
	return el("label", cls(labelClass+" flex items-center space-x-2"),
		void("input", merge(live, attrs("type", kind, "name", name, "value", value, "checked", checked))),
		el("div", cls("text-gray-100"), text(label)),
	)
}

func valuesJSON(v any) templ.Component {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil
	}
	return el("pre", cls("font-mono text-gray-200"), text(string(data)))
}

// valuesMessage formats submitted values for the success toast.
func valuesMessage(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format values: %w", err)
	}
	return string(data), nil
}
