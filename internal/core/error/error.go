package errx

import (
	"errors"
	"fmt"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// GeocodeErrorMessage describes Nominatim related failures.
	GeocodeErrorMessage = "geocoding request failed"
	// OverpassErrorMessage describes Overpass feature search failures.
	OverpassErrorMessage = "feature search request failed"
	// CacheErrorMessage describes query cache failures.
	CacheErrorMessage = "query cache operation failed"
)

// ErrProviderUnavailable is the fatal configuration class: the geo
// provider client has no live session at call time. It aborts the whole
// analysis and is never absorbed into a partial report.
var ErrProviderUnavailable = errors.New("geo provider client not connected")

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
