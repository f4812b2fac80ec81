// Package validation wraps go-playground/validator for request body checks
// at the HTTP boundary.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"devops-backend/pkg/api"

	"github.com/go-playground/validator/v10"
)

// Validator validates request DTOs against their struct tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate checks the given request struct. A nil return means the request
// passed; otherwise every failed field is reported.
func (v *Validator) Validate(req interface{}) []api.ValidationError {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []api.ValidationError{{
			Field:   "",
			Message: err.Error(),
			Code:    "INVALID",
		}}
	}

	errs := make([]api.ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		errs = append(errs, api.ValidationError{
			Field:   e.Field(),
			Message: errorMessage(e.Tag(), e.Param()),
			Code:    strings.ToUpper(e.Tag()),
		})
	}
	return errs
}

// errorMessage returns a human-readable message for a validation failure.
func errorMessage(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", param)
	case "max":
		return fmt.Sprintf("Must be at most %s characters", param)
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", param)
	default:
		return fmt.Sprintf("Failed %s validation", tag)
	}
}
