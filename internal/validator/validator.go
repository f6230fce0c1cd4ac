// Package validator adapts go-playground/validator to Echo's
// Validator interface so handlers can call c.Validate on bound
// request payloads.
package validator

import (
	"errors"
	"fmt"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// RequestValidator wraps a validator.Validate instance for use as
// echo.Echo.Validator.
type RequestValidator struct {
	validate *playground.Validate
}

// New returns a ready-to-use RequestValidator.
func New() *RequestValidator {
	return &RequestValidator{validate: playground.New()}
}

// Validate runs struct validation and flattens field errors into a
// single readable message, e.g. "username is required; capacity must
// be at least 1". Handlers surface the message verbatim to clients.
func (v *RequestValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// describe turns one field error into a human-readable fragment.
func describe(fe playground.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
