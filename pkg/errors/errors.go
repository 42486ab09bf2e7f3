// Package errors provides structured error types for the semtree library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The contract-violation codes mirror the tree's failure taxonomy:
//   - STRUCTURAL_VIOLATION: an illegal child set was supplied to a node
//   - LIFECYCLE_VIOLATION: attach/detach/dirty bookkeeping misuse
//   - ANNOTATION_CONSISTENCY: paired attribute fields disagree
//   - MERGE_CONSISTENCY: merge resolution visited an unmerged descendant
//
// All four indicate that the framework driving the tree produced an
// inconsistent shape; they abort the current rebuild step and are never
// retried or downgraded to log lines.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeStructural, "node %d listed as its own child", id)
//	if errors.Is(err, errors.ErrCodeStructural) {
//	    // Handle contract violation
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Tree contract violations (programming errors in the calling framework)
	ErrCodeStructural Code = "STRUCTURAL_VIOLATION"
	ErrCodeLifecycle  Code = "LIFECYCLE_VIOLATION"
	ErrCodeAnnotation Code = "ANNOTATION_CONSISTENCY"
	ErrCodeMerge      Code = "MERGE_CONSISTENCY"

	// Input validation errors (documents, CLI options)
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidKey      Code = "INVALID_KEY"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IsContractViolation reports whether err carries one of the tree
// contract-violation codes. Callers use this to distinguish "the rebuild
// produced an inconsistent tree" from I/O or document errors.
func IsContractViolation(err error) bool {
	switch GetCode(err) {
	case ErrCodeStructural, ErrCodeLifecycle, ErrCodeAnnotation, ErrCodeMerge:
		return true
	}
	return false
}
