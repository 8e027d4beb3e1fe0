// Package errors provides structured error types for tcgaloader.
//
// This package defines error codes and types that enable:
//   - Consistent handling of per-file failures at the batch boundary
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Pathway codes describe why a single network file could not be processed:
//   - EMPTY_FILE: the input file has zero bytes
//   - MALFORMED_SECTION: the sentinel line, the blank-line separator or a
//     required column is missing
//   - UNRESOLVED_IDENTIFIER: an id was used that the node table never defined
//   - CYCLIC_PARENT: parent references loop back on themselves
//
// The remaining codes cover configuration and input validation.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyFile, "file is empty: %s", path)
//	if errors.Is(err, errors.ErrCodeEmptyFile) {
//	    // skip the file and continue the batch
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Per-file pathway errors
	ErrCodeEmptyFile            Code = "EMPTY_FILE"
	ErrCodeMalformedSection     Code = "MALFORMED_SECTION"
	ErrCodeUnresolvedIdentifier Code = "UNRESOLVED_IDENTIFIER"
	ErrCodeCyclicParent         Code = "CYCLIC_PARENT"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidLoadPlan Code = "INVALID_LOAD_PLAN"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// fileScoped lists the codes that abort the current file only.
var fileScoped = map[Code]bool{
	ErrCodeEmptyFile:            true,
	ErrCodeMalformedSection:     true,
	ErrCodeUnresolvedIdentifier: true,
	ErrCodeCyclicParent:         true,
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

// IsFileScoped reports whether err aborts processing of a single network
// file only. The batch continues with the next file after such errors.
func IsFileScoped(err error) bool {
	return fileScoped[GetCode(err)]
}
