// Package shared contains common domain types and errors that are used across
// all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// ErrIO means the storage medium could not be opened, written or read.
	ErrIO = errors.New("storage i/o error")

	// ErrFormat means the stored bytes do not decode into a valid record.
	ErrFormat = errors.New("invalid record format")

	// ErrNotFound is matched in addition to ErrIO when a location does not exist.
	ErrNotFound = errors.New("location not found")

	// ErrInvalidInput covers caller mistakes such as a nil record or an empty location.
	ErrInvalidInput = errors.New("invalid input")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "file", "postgres", "redis", "codec"
	Op      string // Operation that failed, e.g., "Save", "Load"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching against both the kind and the cause.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// IOError is shorthand for WrapError with the ErrIO kind.
func IOError(domain, op, message string, err error) *DomainError {
	return WrapError(domain, op, ErrIO, message, err)
}

// FormatError is shorthand for WrapError with the ErrFormat kind.
func FormatError(domain, op, message string, err error) *DomainError {
	return WrapError(domain, op, ErrFormat, message, err)
}

// IsIO checks if the error is a storage i/o error.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsFormat checks if the error is a record format error.
func IsFormat(err error) bool {
	return errors.Is(err, ErrFormat)
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput checks if the error was caused by bad caller input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// KindOf returns a short label for the error kind: "io", "format",
// "invalid_input" or "unknown".
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case IsFormat(err):
		return "format"
	case IsIO(err):
		return "io"
	case IsInvalidInput(err):
		return "invalid_input"
	default:
		return "unknown"
	}
}
