package contract

import (
	"fmt"
	"os"

	"github.com/capsight/capsight/schema"
)

// Stable business error codes surfaced to callers for rendering.
const (
	CodeInvalidTransition = "invalid_sprint_transition"
	CodeSprintImmutable   = "sprint_immutable"
	CodeSprintClosed      = "sprint_closed"
	CodeNegativeCapacity  = "negative_capacity"
)

// EngineError is a structured business error with a stable code. It covers
// state conflicts (invalid transitions, mutations of terminal sprints) and the
// one rejected input class, negative capacity hours. Zero-result inputs are
// never errors; they degrade to empty structured results.
type EngineError struct {
	Code    string
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidTransition reports a sprint status change the transition table
// does not permit.
func NewInvalidTransition(from, to schema.SprintStatus) *EngineError {
	return &EngineError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition sprint from %s to %s", from, to),
	}
}

// NewSprintImmutable reports an attempt to edit name/goal/dates of a sprint in
// a terminal state.
func NewSprintImmutable(sprintID string, status schema.SprintStatus) *EngineError {
	return &EngineError{
		Code:    CodeSprintImmutable,
		Message: fmt.Sprintf("sprint %s is %s and can no longer be edited", sprintID, status),
	}
}

// NewSprintClosed reports an attempt to assign or remove tasks on a sprint in
// a terminal state.
func NewSprintClosed(sprintID string, status schema.SprintStatus) *EngineError {
	return &EngineError{
		Code:    CodeSprintClosed,
		Message: fmt.Sprintf("sprint %s is %s and no longer accepts task changes", sprintID, status),
	}
}

// NewNegativeCapacity reports a rejected negative capacity override.
func NewNegativeCapacity(hours float64) *EngineError {
	return &EngineError{
		Code:    CodeNegativeCapacity,
		Message: fmt.Sprintf("capacity hours must be non-negative, received %.2f", hours),
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarning logs a warning.
func LogWarning(msg string) {
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}
