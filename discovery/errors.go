package discovery

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error patterns.
var (
	// ErrInvalidManifest is returned when a manifest file cannot be parsed
	// or fails schema validation.
	ErrInvalidManifest = errors.New("invalid handler manifest")

	// ErrDuplicateHandler is returned when two manifests declare the same
	// handler name.
	ErrDuplicateHandler = errors.New("duplicate handler name")
)

// InvalidManifestError names the manifest file that failed.
type InvalidManifestError struct {
	Path  string
	Cause error
}

func (e *InvalidManifestError) Error() string {
	return fmt.Sprintf("invalid handler manifest %s: %v", e.Path, e.Cause)
}

// Unwrap exposes the parse or validation failure.
func (e *InvalidManifestError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is() checks.
func (e *InvalidManifestError) Is(target error) bool {
	return target == ErrInvalidManifest
}

// DuplicateHandlerError names the colliding handler and both manifests
// that declared it.
type DuplicateHandlerError struct {
	Name  string
	Path  string
	First string
}

func (e *DuplicateHandlerError) Error() string {
	return fmt.Sprintf("duplicate handler name %q declared by %s, first declared by %s", e.Name, e.Path, e.First)
}

// Is implements error matching for errors.Is() checks.
func (e *DuplicateHandlerError) Is(target error) bool {
	return target == ErrDuplicateHandler
}
