// Package api defines the JSON response envelope shared by all HTTP handlers.
package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope returned by every endpoint.
// Success responses carry Data; failures carry a machine readable Error code
// plus a human readable Message. Validation failures enumerate every violated
// field in Errors.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single violated request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OK builds a success envelope.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope with a machine readable error code.
func Fail(code, message string) Response {
	return Response{Success: false, Error: code, Message: message}
}

// ValidationFail builds a failure envelope listing every violated field.
func ValidationFail(fields []FieldError) Response {
	return Response{
		Success: false,
		Error:   "VALIDATION_ERROR",
		Message: "Validation error",
		Errors:  fields,
	}
}

// FieldErrors converts a gin binding error into per-field messages.
// Non-validator errors (malformed JSON etc.) are reported as a single
// body-level entry.
func FieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "invalid request body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short (min " + fe.Param() + ")"
	case "max":
		return "is too long (max " + fe.Param() + ")"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed validation on '" + fe.Tag() + "'"
	}
}
