// Package errors provides structured validation errors for pymeta.
//
// Every failure the extractor reports carries a machine-readable code, the
// path of the offending field (e.g. "project.license.file"), and a
// human-readable message suitable for showing to whoever edits the
// pyproject.toml. Errors wrap an optional cause and stay compatible with
// the stdlib errors.Is/As machinery.
//
// # Error Codes
//
// Codes fall into three families:
//   - Schema: MISSING_FIELD, INVALID_TYPE, UNKNOWN_FIELD
//   - Consistency: DYNAMIC_CONFLICT, UNSUPPORTED_DYNAMIC, EXCLUSIVE_FIELDS
//   - Format: INVALID_FORMAT (bad specifier, requirement, name, or email)
//
// FILE_NOT_FOUND and INVALID_PATH exist for the CLI layer, which resolves
// readme and license file references; the core itself never touches the
// filesystem.
//
// # Usage
//
//	err := errors.NewField(errors.ErrCodeInvalidType, "project.name",
//	    "invalid type, expecting a string (got %q)", got)
//	if errors.Is(err, errors.ErrCodeInvalidType) {
//	    // Handle schema error
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the validation taxonomy.
const (
	// Schema errors
	ErrCodeMissingField Code = "MISSING_FIELD"
	ErrCodeInvalidType  Code = "INVALID_TYPE"
	ErrCodeUnknownField Code = "UNKNOWN_FIELD"

	// Consistency errors
	ErrCodeDynamicConflict    Code = "DYNAMIC_CONFLICT"
	ErrCodeUnsupportedDynamic Code = "UNSUPPORTED_DYNAMIC"
	ErrCodeExclusiveFields    Code = "EXCLUSIVE_FIELDS"

	// Format errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// CLI-side resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInvalidPath  Code = "INVALID_PATH"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured validation error with a code, an optional field
// path, and an optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Field   string // Dotted path of the offending field, empty if not field-scoped
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%q: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewField creates a new Error scoped to a field path.
func NewField(code Code, field, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// WrapField creates a field-scoped Error wrapping an existing error.
func WrapField(code Code, field string, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetField extracts the field path from an error, if available.
// Returns empty string if the error is not field-scoped.
func GetField(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
