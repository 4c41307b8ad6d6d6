// Package validator adapts go-playground/validator to echo's Validator
// interface.
package validator

import (
	"waypoint/internal/errors"

	validatorv10 "github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validatorv10.Validate
}

// New creates the request-struct validator installed on the echo server.
func New() *echoValidator {
	return &echoValidator{validate: validatorv10.New()}
}

// Validate implements echo.Validator.
func (v *echoValidator) Validate(i any) error {
	return errors.WithStack(v.validate.Struct(i))
}
