package forms

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxdemo/lib/todos"
)

func validBasic() url.Values {
	return url.Values{
		"name":            {"Frank"},
		"email":           {"frank@example.com"},
		"single_checkbox": {"on"},
		"group_checkbox":  {"facebook", "insta"},
		"select":          {"green"},
		"radio":           {"teacher"},
	}
}

func TestBasicValid(t *testing.T) {
	v := ParseBasic(validBasic())

	errs, err := v.Validate()
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.False(t, SubmitDisabled(errs))
	assert.True(t, v.Checked("insta"))
	assert.False(t, v.Checked("youtube"))
}

func TestBasicEmptyMessages(t *testing.T) {
	errs, err := EmptyBasic().Validate()
	require.NoError(t, err)

	assert.Equal(t, Errors{
		"name":            "Required",
		"email":           "Required",
		"single_checkbox": "You must accept",
		"group_checkbox":  "You can't leave this blank.",
		"select":          "Required",
		"radio":           "Required",
	}, errs)
	assert.True(t, SubmitDisabled(errs))
}

func TestBasicRuleMessages(t *testing.T) {
	tests := []struct {
		field string
		value []string
		want  string
	}{
		{"name", []string{"ab"}, "Must be at least 3 char"},
		{"email", []string{"not-an-email"}, "Invalid email address"},
		{"radio", []string{"parent"}, "You must accept"},
		{"select", []string{"pink"}, "select must be one of the following values: red, green, blue"},
		{"group_checkbox", []string{"myspace"}, "group_checkbox must be one of the following values: facebook, youtube, insta"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			form := validBasic()
			form[tt.field] = tt.value

			errs, err := ParseBasic(form).Validate()
			require.NoError(t, err)
			assert.Equal(t, Errors{tt.field: tt.want}, errs)
		})
	}
}

func TestSubmitDisabledOnlyForNameAndEmail(t *testing.T) {
	assert.False(t, SubmitDisabled(Errors{"radio": "You must accept"}))
	assert.True(t, SubmitDisabled(Errors{"email": "Required"}))
	assert.True(t, SubmitDisabled(Errors{"name": "Required"}))
}

func TestErrorsOnly(t *testing.T) {
	errs := Errors{"name": "Required", "email": "Required"}

	got := errs.Only("email", "radio")

	assert.Equal(t, Errors{"email": "Required"}, got)
	assert.True(t, got.Has("email"))
	assert.Equal(t, "", got.Get("name"))
}

func TestReinit(t *testing.T) {
	v := ReinitFromRecord(todos.TodoRecord{ID: "1", Title: "delectus aut autem", Completed: true})
	assert.Equal(t, ReinitValues{Title: "delectus aut autem", Completed: true}, v)

	errs, err := ParseReinit(url.Values{"title": {"ab"}}).Validate()
	require.NoError(t, err)
	assert.Equal(t, "Must be at least 3 char", errs.Get("title"))
}

func TestContextDerive(t *testing.T) {
	tests := []struct {
		name string
		in   ContextValues
		want string
	}{
		{"both set", ContextValues{TextA: "hello", TextB: "world"}, "textA: hello, textB: world"},
		{"blank b keeps c", ContextValues{TextA: "hello", TextB: "  ", TextC: "kept"}, "kept"},
		{"empty", ContextValues{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Derive().TextC)
		})
	}
}

func TestParseContext(t *testing.T) {
	got := ParseContext(url.Values{"textA": {"a"}, "textB": {"b"}})
	assert.Equal(t, ContextValues{TextA: "a", TextB: "b"}, got)
}
