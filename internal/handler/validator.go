package handler

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo.Validator.  Field names
// in error messages are the JSON names.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator ready to be set as echo's Validator.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i any) error { return cv.v.Struct(i) }

// bindValid binds the request into dst and validates it.  The returned
// message is empty on success.
func bindValid(c echo.Context, dst any) string {
	if err := c.Bind(dst); err != nil {
		return "invalid request body"
	}
	if err := c.Validate(dst); err != nil {
		return validationMessage(err)
	}
	return ""
}
