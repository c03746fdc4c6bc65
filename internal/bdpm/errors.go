package bdpm

import (
	"errors"
	"fmt"
)

// Common locator errors. None of them abort a pipeline run: a failed lookup
// only costs the report its reference digest.
var (
	// ErrSearchFailed is returned when the registry search request fails.
	ErrSearchFailed = errors.New("registry search request failed")

	// ErrParseFailed is returned when the result page cannot be parsed.
	ErrParseFailed = errors.New("registry result page could not be parsed")

	// ErrDownloadFailed is returned when the matched document cannot be fetched.
	ErrDownloadFailed = errors.New("reference document download failed")
)

// LocateError wraps errors with context about a failed reference lookup.
type LocateError struct {
	// Op is the operation that failed (e.g., "Locate", "download").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *LocateError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("bdpm: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("bdpm: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *LocateError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *LocateError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapLocateError wraps an error as a LocateError if it isn't already one.
func WrapLocateError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var locErr *LocateError
	if errors.As(err, &locErr) {
		return err
	}

	return &LocateError{Op: op, Err: err, Details: details}
}
