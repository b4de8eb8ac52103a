package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "test message: %s", "value")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_FORMAT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestNewField(t *testing.T) {
	err := NewField(ErrCodeInvalidType, "project.name", "invalid type, expecting a string (got %q)", "true")

	if err.Field != "project.name" {
		t.Errorf("Field = %v, want %v", err.Field, "project.name")
	}

	expected := `INVALID_TYPE: "project.name": invalid type, expecting a string (got "true")`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := WrapField(ErrCodeInvalidFormat, "project.requires-python", cause, "invalid specifier")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeMissingField, "test"),
			code:     ErrCodeMissingField,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeMissingField, "test"),
			code:     ErrCodeInvalidType,
			expected: false,
		},
		{
			name:     "wrapped in plain error",
			err:      fmt.Errorf("context: %w", NewField(ErrCodeDynamicConflict, "project.version", "conflict")),
			code:     ErrCodeDynamicConflict,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeMissingField,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeMissingField,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndField(t *testing.T) {
	err := NewField(ErrCodeUnknownField, "project.made-up", "unexpected field")

	if got := GetCode(err); got != ErrCodeUnknownField {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeUnknownField)
	}
	if got := GetField(err); got != "project.made-up" {
		t.Errorf("GetField() = %v, want %v", got, "project.made-up")
	}

	plain := errors.New("plain")
	if got := GetCode(plain); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := GetField(plain); got != "" {
		t.Errorf("GetField(plain) = %v, want empty", got)
	}
}
