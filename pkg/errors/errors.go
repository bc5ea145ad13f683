// Package errors provides structured error types for chromepdf.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the relay server and the client
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Missing local resources
//   - ENCODING_ERROR: Payload could not be serialized
//   - API_ERROR, NETWORK_ERROR, UNAUTHORIZED, RATE_LIMITED: Remote service failures
//   - INTERNAL_ERROR: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidMargin, "margin takes 1 to 4 values, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidMargin) {
//	    // Handle validation error
//	}
//
// Domain error types outside this package (for example the render client's
// API error) report their code through [Coder], so [GetCode] and [Is] work on
// them as well.
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidMargin Code = "INVALID_MARGIN"
	ErrCodeInvalidTarget Code = "INVALID_TARGET"
	ErrCodeInvalidURL    Code = "INVALID_URL"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Local resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Serialization errors
	ErrCodeEncoding Code = "ENCODING_ERROR"

	// Remote service errors
	ErrCodeAPI          Code = "API_ERROR"
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeRateLimited  Code = "RATE_LIMITED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Coder is implemented by error types that carry a [Code] without being an *Error.
type Coder interface {
	ErrorCode() Code
}

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

// ErrorCode implements [Coder].
func (e *Error) ErrorCode() Code {
	return e.Code
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
// It unwraps the error chain looking for the first [Coder].
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from the first [Coder] in err's chain.
// Returns empty string if there is none.
func GetCode(err error) Code {
	var c Coder
	if errors.As(err, &c) {
		return c.ErrorCode()
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
