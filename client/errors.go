package client

import (
	clerrors "github.com/eureka-residences/erkseed/client/internal/errors"
)

// Error types re-exported so callers can inspect failures with errors.As.
type (
	ValidationError = clerrors.ValidationError
	ClassifiedError = clerrors.ClassifiedError
)

// ErrNotAuthenticated is returned by token operations before Authenticate.
var ErrNotAuthenticated = clerrors.ErrNotAuthenticated

// IsValidation reports whether err was raised before sending because
// required fields were missing.
func IsValidation(err error) bool { return clerrors.IsValidation(err) }

// IsIrrecoverable reports whether retrying err cannot help (4xx other than
// 408 and 429).
func IsIrrecoverable(err error) bool { return clerrors.IsIrrecoverable(err) }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int { return clerrors.StatusCode(err) }
