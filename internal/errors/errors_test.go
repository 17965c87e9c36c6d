package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name: "with field and value",
			err: &ValidationError{
				Field:   "identifiers",
				Value:   "501",
				Message: "at most 500 identifiers per batch",
			},
			expected: "validation failed for identifiers=\"501\": at most 500 identifiers per batch",
		},
		{
			name: "with field only",
			err: &ValidationError{
				Field:   "identifier",
				Message: "is required",
			},
			expected: "validation failed for identifier: is required",
		},
		{
			name: "message only",
			err: &ValidationError{
				Message: "malformed JSON body",
			},
			expected: "validation failed: malformed JSON body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("identifier", "", "is required")

	if err.Field != "identifier" {
		t.Errorf("Field = %q, want %q", err.Field, "identifier")
	}
	if err.Value != "" {
		t.Errorf("Value = %q, want empty", err.Value)
	}
	if err.Message != "is required" {
		t.Errorf("Message = %q, want %q", err.Message, "is required")
	}
}

func TestUnknownSchemeError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *UnknownSchemeError
		expected string
	}{
		{
			name:     "with supported list",
			err:      NewUnknownSchemeError("FR_VAT", []string{"DE_VAT", "IBAN"}),
			expected: `unknown scheme "FR_VAT" (supported: DE_VAT, IBAN)`,
		},
		{
			name:     "without supported list",
			err:      NewUnknownSchemeError("xyz", nil),
			expected: `unknown scheme "xyz"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("UnknownSchemeError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	validationErr := &ValidationError{Message: "test"}
	schemeErr := &UnknownSchemeError{Hint: "x"}
	plainErr := errors.New("plain error")

	if !IsValidation(validationErr) {
		t.Error("IsValidation should return true for ValidationError")
	}
	if !IsValidation(fmt.Errorf("validate: %w", validationErr)) {
		t.Error("IsValidation should return true for a wrapped ValidationError")
	}
	if IsValidation(schemeErr) {
		t.Error("IsValidation should return false for UnknownSchemeError")
	}
	if IsValidation(plainErr) {
		t.Error("IsValidation should return false for plain error")
	}
	if IsValidation(nil) {
		t.Error("IsValidation should return false for nil")
	}
}

func TestIsUnknownScheme(t *testing.T) {
	schemeErr := &UnknownSchemeError{Hint: "x"}

	if !IsUnknownScheme(schemeErr) {
		t.Error("IsUnknownScheme should return true for UnknownSchemeError")
	}
	if !IsUnknownScheme(fmt.Errorf("lookup: %w", schemeErr)) {
		t.Error("IsUnknownScheme should return true for a wrapped UnknownSchemeError")
	}
	if IsUnknownScheme(&ValidationError{}) {
		t.Error("IsUnknownScheme should return false for ValidationError")
	}
	if IsUnknownScheme(nil) {
		t.Error("IsUnknownScheme should return false for nil")
	}
}

func TestIsBadRequest(t *testing.T) {
	if !IsBadRequest(&ValidationError{}) || !IsBadRequest(&UnknownSchemeError{}) {
		t.Error("IsBadRequest should accept both request error types")
	}
	if IsBadRequest(errors.New("boom")) {
		t.Error("IsBadRequest should reject plain errors")
	}
}

func TestField(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", NewValidationError("identifiers", "", "empty"), "identifiers"},
		{"wrapped validation", fmt.Errorf("batch: %w", NewValidationError("identifier", "", "x")), "identifier"},
		{"unknown scheme", NewUnknownSchemeError("x", nil), "scheme"},
		{"plain", errors.New("boom"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Field(tt.err); got != tt.want {
				t.Errorf("Field() = %q, want %q", got, tt.want)
			}
		})
	}
}
