package document

import (
	"errors"
	"fmt"
)

// Common normalization errors
var (
	// ErrUnsupportedFormat is returned when the uploaded artifact cannot be
	// decoded into a canonical document. This is fatal for the whole run:
	// every later stage depends on a usable document.
	ErrUnsupportedFormat = errors.New("unsupported or undecodable document format")

	// ErrEmptyArtifact is returned when the uploaded payload has no bytes.
	ErrEmptyArtifact = errors.New("uploaded artifact is empty")

	// ErrRasterizerUnavailable is returned when no PDF rasterizer is
	// installed on the host (pdftoppm not found).
	ErrRasterizerUnavailable = errors.New("pdf rasterizer not available: install poppler-utils (pdftoppm)")
)

// NormalizeError wraps errors with context about a failed normalization.
type NormalizeError struct {
	// Op is the operation that failed (e.g., "Normalize", "FirstPage").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *NormalizeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("document: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("document: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *NormalizeError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *NormalizeError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapNormalizeError wraps an error as a NormalizeError if it isn't already one.
func WrapNormalizeError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var normErr *NormalizeError
	if errors.As(err, &normErr) {
		return err
	}

	return &NormalizeError{Op: op, Err: err, Details: details}
}
