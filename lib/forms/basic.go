package forms

import "net/url"

// BasicValues is the basic validation form.
type BasicValues struct {
	Name           string   `form:"name" json:"name" msgpack:"name" validate:"required,min=3"`
	Email          string   `form:"email" json:"email" msgpack:"email" validate:"required,email"`
	SingleCheckbox bool     `form:"single_checkbox" json:"single_checkbox" msgpack:"single_checkbox" validate:"required"`
	GroupCheckbox  []string `form:"group_checkbox" json:"group_checkbox" msgpack:"group_checkbox" validate:"required,min=1,dive,oneof=facebook youtube insta"`
	Select         string   `form:"select" json:"select" msgpack:"select" validate:"required,oneof=red green blue"`
	Radio          string   `form:"radio" json:"radio" msgpack:"radio" validate:"required,oneof=student teacher"`
}

// Choices offered by the basic form.
var (
	Colors    = []string{"red", "green", "blue"}
	Platforms = []string{"facebook", "youtube", "insta"}
	Roles     = []string{"student", "teacher"}
)

var basicMessages = map[string]string{
	"name.min":                 "Must be at least 3 char",
	"email.email":              "Invalid email address",
	"single_checkbox.required": "You must accept",
	"group_checkbox.required":  "You can't leave this blank.",
	"group_checkbox.min":       "You can't leave this blank.",
	"radio.oneof":              "You must accept",
}

// EmptyBasic returns the initial form values.
func EmptyBasic() BasicValues {
	return BasicValues{GroupCheckbox: []string{}}
}

// ParseBasic reads the form from submitted values.
func ParseBasic(form url.Values) BasicValues {
	v := EmptyBasic()
	v.Name = form.Get("name")
	v.Email = form.Get("email")
	v.SingleCheckbox = truthy(form.Get("single_checkbox"))
	v.Select = form.Get("select")
	v.Radio = form.Get("radio")
	for _, g := range form["group_checkbox"] {
		if g != "" {
			v.GroupCheckbox = append(v.GroupCheckbox, g)
		}
	}
	return v
}

// Validate checks v against the basic form rules.
func (v BasicValues) Validate() (Errors, error) {
	return check(v, basicMessages)
}

// Checked reports whether platform is selected in the group checkbox.
func (v BasicValues) Checked(platform string) bool {
	for _, g := range v.GroupCheckbox {
		if g == platform {
			return true
		}
	}
	return false
}

// SubmitDisabled reports whether the submit button is disabled: it is while
// name or email is failing.
func SubmitDisabled(errs Errors) bool {
	return errs.Has("name") || errs.Has("email")
}
