// Package errors provides structured error types for the masonry module.
//
// This package defines error codes and types that enable:
//   - Telling caller contract violations apart from bad input files
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - MISSING_*, DUPLICATE_*: Rendering layer contract violations (fatal)
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.MissingKey(3)
//	if errors.Is(err, errors.ErrCodeMissingKey) {
//	    // The caller rendered a child without a key.
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Contract violations. These are programming errors in the rendering
	// layer and are never recovered.
	ErrCodeMissingKey   Code = "MISSING_KEY"
	ErrCodeDuplicateKey Code = "DUPLICATE_KEY"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidKey    Code = "INVALID_KEY"

	// Resource not found errors
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

// UserMessage returns the message of err without its code prefix. Contract
// violations are reported as a stopped layout, and decode failures keep the
// decoder's detail so the offending entry can be found. Errors that are not
// an *Error are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch {
	case IsFatal(e):
		return "layout stopped: " + e.Message
	case e.Code == ErrCodeInvalidFormat && e.Cause != nil:
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// MissingKey reports a child rendered without a key. index is the child's
// position in the container.
func MissingKey(index int) *Error {
	return New(ErrCodeMissingKey, "child %d has no key: every box needs a key", index)
}

// DuplicateKey reports two children sharing one key.
func DuplicateKey(key string, first, second int) *Error {
	return New(ErrCodeDuplicateKey, "key %q used by children %d and %d", key, first, second)
}

// IsFatal reports whether err is a rendering layer contract violation.
// Fatal errors stop the layout driver instead of waiting for the next pass.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeMissingKey, ErrCodeDuplicateKey:
		return true
	}
	return false
}
