package llm

import (
	"errors"
	"fmt"
)

// Common generation errors
var (
	// ErrEmptyResponse is returned when the model call succeeds but carries
	// no usable content.
	ErrEmptyResponse = errors.New("model returned no content")

	// ErrGenerationFailed is returned when the chat completion request fails
	// after all retry attempts.
	ErrGenerationFailed = errors.New("model request failed")

	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("missing OpenAI API key: set OPENAI_API_KEY environment variable")
)

// GenerationError wraps errors with additional context about a failed model call.
type GenerationError struct {
	// Op is the operation that failed (e.g., "Generate", "GenerateVision").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("llm: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("llm: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *GenerationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapGenerationError wraps an error as a GenerationError if it isn't already one.
func WrapGenerationError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return err
	}

	return &GenerationError{Op: op, Err: err, Details: details}
}
