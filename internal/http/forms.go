package httpx

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/glucolab/labconsole/internal/domain/model"
)

// queryValues adapts url.Values to the form reader helpers, so query
// strings and form bodies share one parsing path.
type queryValues struct{ url.Values }

func (q queryValues) FormValue(name string) string { return q.Get(name) }

// validate is shared: validator instances cache struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// checkStruct runs tag validation and flattens failures into per-field
// messages keyed by the struct field name.
func checkStruct(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": err.Error()}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "invalid value"
	}
}

// Form value readers. HTML forms deliver strings; empty means "not
// provided" which maps to the zero value or a nil pointer.

func formString(r interface{ FormValue(string) string }, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

func formInt(r interface{ FormValue(string) string }, name string) int {
	n, _ := strconv.Atoi(formString(r, name))
	return n
}

func formIntPtr(r interface{ FormValue(string) string }, name string) *int {
	s := formString(r, name)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func formFloatPtr(r interface{ FormValue(string) string }, name string) *float64 {
	s := formString(r, name)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func formFloat(r interface{ FormValue(string) string }, name string) float64 {
	f, _ := strconv.ParseFloat(formString(r, name), 64)
	return f
}

func formStringPtr(r interface{ FormValue(string) string }, name string) *string {
	s := formString(r, name)
	if s == "" {
		return nil
	}
	return &s
}

func formDateTime(r interface{ FormValue(string) string }, name string) model.DateTime {
	d, _ := model.ParseDateTime(formString(r, name))
	return d
}

func formDateTimePtr(r interface{ FormValue(string) string }, name string) *model.DateTime {
	s := formString(r, name)
	if s == "" {
		return nil
	}
	d, err := model.ParseDateTime(s)
	if err != nil {
		return nil
	}
	return &d
}

// formIntList reads a repeated form field, for multi-selects like
// experiment membership.
func formIntList(values []string) []int {
	if len(values) == 0 {
		return nil
	}
	out := make([]int, 0, len(values))
	for _, v := range values {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			out = append(out, n)
		}
	}
	return out
}
