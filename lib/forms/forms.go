// Package forms holds the form models behind the demo pages: their fields,
// parsing from submitted values and validation rules.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every form. Field names in errors come from the
// form tag so they match the submitted input names.
var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Errors maps a field name to its first failing message.
type Errors map[string]string

// Has reports whether field failed validation.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string { return e[field] }

// Only returns the subset of e for the given fields. Forms use it to show
// errors for touched inputs only.
func (e Errors) Only(fields ...string) Errors {
	out := make(Errors, len(fields))
	for _, f := range fields {
		if msg, ok := e[f]; ok {
			out[f] = msg
		}
	}
	return out
}

// check validates v and translates failures through messages, keyed by
// "field.tag". Failures without an entry fall back to a generic message.
func check(v any, messages map[string]string) (Errors, error) {
	err := validatorInstance().Struct(v)
	if err == nil {
		return Errors{}, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("forms: validate: %w", err)
	}

	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		field, _, _ := strings.Cut(fe.Field(), "[")
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(messages, field, fe)
	}
	return out, nil
}

func message(messages map[string]string, field string, fe validator.FieldError) string {
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		return fmt.Sprintf("Must be at least %s char", fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s",
			field, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
