// Package errors provides request-level error types shared by the MCP tools, the HTTP
// API and the CLI. Identifier validation failures are not errors; they are reported as
// data in identifier.Result.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string // argument name that failed validation
	Value   string // the invalid value (may be empty for long inputs)
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// UnknownSchemeError indicates a scheme hint that names no supported scheme.
type UnknownSchemeError struct {
	Hint      string
	Supported []string
}

func (e *UnknownSchemeError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("unknown scheme %q", e.Hint)
	}
	return fmt.Sprintf("unknown scheme %q (supported: %s)", e.Hint, strings.Join(e.Supported, ", "))
}

// NewUnknownSchemeError creates an UnknownSchemeError.
func NewUnknownSchemeError(hint string, supported []string) *UnknownSchemeError {
	return &UnknownSchemeError{Hint: hint, Supported: supported}
}

// Field returns the argument name an error refers to, or "" when it has none.
// UnknownSchemeError always refers to "scheme".
func Field(err error) string {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve.Field
	}
	var ue *UnknownSchemeError
	if stderrors.As(err, &ue) {
		return "scheme"
	}
	return ""
}

// IsValidation returns true if err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// IsUnknownScheme returns true if err is or wraps an UnknownSchemeError.
func IsUnknownScheme(err error) bool {
	var ue *UnknownSchemeError
	return stderrors.As(err, &ue)
}

// IsBadRequest reports whether err was caused by caller input rather than by the server.
func IsBadRequest(err error) bool {
	return IsValidation(err) || IsUnknownScheme(err)
}
