package textextract

import (
	"errors"
	"fmt"
)

// Common extraction errors. All of them are recoverable from the pipeline's
// point of view: the orchestrator degrades to empty text and records a warning.
var (
	// ErrNoText is returned when the engine ran but found no readable text.
	ErrNoText = errors.New("no readable text found")

	// ErrEngineUnavailable is returned when the OCR engine cannot be reached
	// (missing credentials, client construction failure).
	ErrEngineUnavailable = errors.New("ocr engine unavailable")

	// ErrExtractionFailed is returned when the engine call itself failed.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrMissingCredentials is returned when neither GOOGLE_APPLICATION_CREDENTIALS
	// nor GOOGLE_CREDENTIALS environment variables are configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")
)

// ExtractionError wraps errors with context about a failed extraction.
type ExtractionError struct {
	// Op is the operation that failed (e.g., "ExtractFromImage").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("textextract: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("textextract: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *ExtractionError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapExtractionError wraps an error as an ExtractionError if it isn't already one.
func WrapExtractionError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var extErr *ExtractionError
	if errors.As(err, &extErr) {
		return err
	}

	return &ExtractionError{Op: op, Err: err, Details: details}
}
