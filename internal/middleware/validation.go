package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

// validationMessages extracts per-field messages from a binding error, or nil
// when the error is not a validator error.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	messages := make([]string, 0, len(verrs))
	for _, fieldErr := range verrs {
		messages = append(messages, formatValidationError(fieldErr))
	}
	return messages
}
