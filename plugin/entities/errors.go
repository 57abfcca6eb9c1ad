package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error patterns.
// These allow both errors.Is() checks and errors.As() for detailed information.
var (
	// ErrConstruction is returned when the construction service fails for a
	// candidate type during resolution. The whole resolution attempt fails;
	// no partial list is cached.
	ErrConstruction = errors.New("handler construction failed")

	// ErrUnsupportedOperation is returned when a caller attempts to mutate
	// a set whose type universe is closed.
	ErrUnsupportedOperation = errors.New("operation not supported: candidate set is closed")

	// ErrDisposed is returned when a resolution or access is attempted
	// after disposal. Disposed registries never resurrect state.
	ErrDisposed = errors.New("registry is disposed")
)

// ConstructionError indicates the construction service failed for one
// candidate type. Names the offending candidate and carries the cause.
type ConstructionError struct {
	Candidate CandidateType
	Cause     error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("handler construction failed for %s: %v", e.Candidate.String(), e.Cause)
}

// Unwrap exposes the underlying construction failure.
func (e *ConstructionError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is() checks.
// This allows: errors.Is(err, entities.ErrConstruction)
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}
