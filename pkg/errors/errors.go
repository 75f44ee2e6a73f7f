// Package errors provides structured error types for qplanarity.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - UNKNOWN_*: References to things that do not exist
//   - NOT_FOUND_* / *_NOT_FOUND: Missing resources
//   - INTERNAL_*: Broken invariants
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidParameter, "node limit must be at least 3, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidParameter) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidParameter Code = "INVALID_PARAMETER"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Reference errors
	ErrCodeUnknownVertex Code = "UNKNOWN_VERTEX"
	ErrCodeUnknownEdge   Code = "UNKNOWN_EDGE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
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

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// VertexError reports a vertex index outside the valid range of a graph.
type VertexError struct {
	Vertex int // Offending index
	Count  int // Number of vertices; valid indices are 0..Count-1
}

// Error implements the error interface.
func (e *VertexError) Error() string {
	return fmt.Sprintf("vertex %d out of range [0, %d)", e.Vertex, e.Count)
}

// Code returns the error code for this error type.
func (e *VertexError) Code() Code {
	return ErrCodeUnknownVertex
}

// UnknownVertex returns an UNKNOWN_VERTEX *Error whose cause is a [VertexError].
func UnknownVertex(v, count int) *Error {
	return Wrap(ErrCodeUnknownVertex, &VertexError{Vertex: v, Count: count}, "unknown vertex %d", v)
}
