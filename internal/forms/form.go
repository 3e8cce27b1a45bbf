// Package forms describes the multi-field inputs both apps collect, as an
// ordered list of fields with validator rules.
package forms

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Field struct {
	Name        string
	Label       string
	Placeholder string
	Rules       string
	// Choices renders a select instead of a text input.
	Choices []Choice
}

type Choice struct {
	Value string
	Label string
}

type Form struct {
	Name   string
	Action string
	Submit string
	Fields []Field
}

// Values holds trimmed submitted values keyed by field name.
type Values map[string]string

func (v Values) Get(name string) string {
	return v[name]
}

type FieldError struct {
	Field string
	Label string
	Tag   string
}

func (e *FieldError) Error() string {
	if e.Tag == "required" {
		return fmt.Sprintf("%s is required", e.Label)
	}
	return fmt.Sprintf("%s is invalid", e.Label)
}

// Bind trims every field and validates them in order. The first failing field wins.
func (f Form) Bind(in url.Values) (Values, error) {
	out := make(Values, len(f.Fields))
	for _, field := range f.Fields {
		value := strings.TrimSpace(in.Get(field.Name))
		if field.Rules != "" {
			if err := validate.Var(value, field.Rules); err != nil {
				tag := field.Rules
				if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
					tag = verrs[0].Tag()
				}
				return nil, &FieldError{Field: field.Name, Label: field.Label, Tag: tag}
			}
		}
		out[field.Name] = value
	}
	return out, nil
}

// WithChoices returns a copy of the form with choices attached to the named field.
func (f Form) WithChoices(name string, choices []Choice) Form {
	fields := make([]Field, len(f.Fields))
	copy(fields, f.Fields)
	for i := range fields {
		if fields[i].Name == name {
			fields[i].Choices = choices
		}
	}
	f.Fields = fields
	return f
}
