package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput is returned when the diffusion context is absent at
	// submit time. The run is rejected before any external call is made, to
	// avoid wasted cost.
	ErrMissingInput = errors.New("diffusion context is required")
)

// RunError wraps a fatal stage failure with the stage it happened in.
type RunError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	return fmt.Sprintf("pipeline: stage %s failed: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RunError) Unwrap() error {
	return e.Err
}
