// Package validator wraps go-playground/validator behind a small
// injectable type so handlers share one configured instance.
package validator

import "github.com/go-playground/validator/v10"

// Validator validates structs and single values against `validate` tags.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator ready for use. Custom tags can be added with
// RegisterValidation before the instance is shared.
func New() *Validator {
	return &Validator{v: validator.New()}
}

// Struct validates s against its field tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single value against tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation adds a custom validation function under tag.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}
