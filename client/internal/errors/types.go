// Package errors classifies failures of the seeding client so callers can
// tell a rejected payload from a transient outage.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory determines whether a failed call may be attempted again.
type ErrorCategory int

const (
	// Recoverable errors may succeed on a later attempt.
	// Examples: 500 Internal Server Error, connection refused, timeouts.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors fail the same way every time.
	// Examples: 400 Bad Request, 401 Unauthorized, 409 Conflict.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError wraps a remote failure with categorization metadata.
type ClassifiedError struct {
	Category   ErrorCategory
	Operation  string
	StatusCode int    // HTTP status code (0 for network errors)
	Body       string // Response body as returned by the server
	Underlying error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *ClassifiedError) Unwrap() error {
	return e.Underlying
}

// IsIrrecoverable returns true if the error should not be attempted again.
func IsIrrecoverable(err error) bool {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Category == Irrecoverable
	}
	return false
}

// StatusCode extracts the HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.StatusCode
	}
	return 0
}

// ValidationError reports payload fields that are mandatory but missing.
// It is produced before any request is sent.
type ValidationError struct {
	Operation string
	Fields    []string // JSON field names
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing required fields: %s", e.Operation, strings.Join(e.Fields, ", "))
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ErrNotAuthenticated is returned by token operations invoked before Authenticate.
var ErrNotAuthenticated = errors.New("not authenticated")
