package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator builds the request validator used by all handlers. Field
// names in error output come from json tags so clients see the names they
// actually sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationFields converts a validator error into a field-keyed message
// map covering every violated field, not just the first. Returns nil if
// err is not a validation error.
func ValidationFields(err error) map[string][]string {
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return nil
	}

	fields := make(map[string][]string, len(violations))
	for _, violation := range violations {
		field := violation.Field()
		fields[field] = append(fields[field], validationMessage(violation))
	}
	return fields
}

// validationMessage maps a single violation to a human-readable message.
func validationMessage(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", violation.Field())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", violation.Field())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", violation.Field(), violation.Param())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", violation.Field(), violation.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", violation.Field())
	}
}
