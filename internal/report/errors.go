package report

import (
	"errors"
	"fmt"
)

var (
	// ErrModelFailure is returned when the compliance-analysis call errors or
	// returns no content. Unlike every enrichment stage, this has no
	// fallback: the report is the pipeline's deliverable, so the failure is
	// surfaced to the caller as run-ending.
	ErrModelFailure = errors.New("compliance analysis model call failed")

	// ErrNoDocument is returned when no canonical document is available to
	// attach to the analysis request.
	ErrNoDocument = errors.New("no canonical document to analyze")
)

// AssembleError wraps errors with context about a failed report assembly.
type AssembleError struct {
	// Op is the operation that failed (e.g., "Assemble", "Render").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *AssembleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("report: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("report: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *AssembleError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *AssembleError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapAssembleError wraps an error as an AssembleError if it isn't already one.
func WrapAssembleError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var asmErr *AssembleError
	if errors.As(err, &asmErr) {
		return err
	}

	return &AssembleError{Op: op, Err: err, Details: details}
}
