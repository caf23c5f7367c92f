// Package errors provides structured error types for the Pathmark codec.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across library, CLI, and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - CONVERSION_*: Decode/encode failures with document context
//   - SCHEMA_*: Schema table and schema validation failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateID, "element id already registered: %s", id)
//	if errors.Is(err, errors.ErrCodeDuplicateID) {
//	    // Handle collision
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConversion, origErr, "decode %s", path)
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidID      Code = "INVALID_ID"
	ErrCodeInvalidColor   Code = "INVALID_COLOR"
	ErrCodeInvalidVersion Code = "UNSUPPORTED_VERSION"

	// Decode/encode errors
	ErrCodeConversion       Code = "CONVERSION_FAILED"
	ErrCodeDuplicateID      Code = "DUPLICATE_ID"
	ErrCodeUnknownAttribute Code = "UNKNOWN_ATTRIBUTE"
	ErrCodeSchemaInvalid    Code = "SCHEMA_INVALID"

	// Resource errors
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
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ErrCodeConversion
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

// ConversionError annotates a decode or encode failure with the document
// location that produced it. Tag and Attr name the offending element and
// attribute so a document author can find the problem without a stack trace.
type ConversionError struct {
	Tag     string // Element tag (e.g., "DataNode")
	Attr    string // Attribute name (e.g., "CenterX"), may be empty
	Version string // Schema version being decoded or encoded
	Cause   error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	loc := e.Tag
	if e.Attr != "" {
		loc = e.Tag + "/@" + e.Attr
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s): %v", ErrCodeConversion, loc, e.Version, e.Cause)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrCodeConversion, loc, e.Version)
}

// Unwrap returns the wrapped cause.
func (e *ConversionError) Unwrap() error { return e.Cause }

// Conversion creates a ConversionError for the given document location.
func Conversion(version, tag, attr string, cause error) *ConversionError {
	return &ConversionError{Tag: tag, Attr: attr, Version: version, Cause: cause}
}
