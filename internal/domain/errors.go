package domain

import (
	"fmt"
)

// Common error types
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ErrStepExecution wraps a failure inside a single flow step so the
// scheduler can attach the step context when recording it.
type ErrStepExecution struct {
	FlowID string
	Step   int
	Reason string
	Err    error
}

func (e *ErrStepExecution) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("step execution failed [flow %s, step %d]: %s - %v", e.FlowID, e.Step, e.Reason, e.Err)
	}
	return fmt.Sprintf("step execution failed [flow %s, step %d]: %s", e.FlowID, e.Step, e.Reason)
}

func (e *ErrStepExecution) Unwrap() error {
	return e.Err
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}
