/*
errors.go - Centralized error types for the lifecycle engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these errors with entity-specific context.

ERROR CATEGORIES:
  1. NotFound      - referenced entity is not in the collection
  2. Validation    - required field missing or numeric constraint violated
  3. Transition    - requested status change is not in the transition table
  4. Precondition  - domain rule blocking an otherwise-valid operation

PROPAGATION POLICY:
  Every mutator validates fully before mutating; on failure it returns the
  error immediately with no partial state change. Nothing here is fatal -
  all errors are recoverable at the call site.

USAGE:
  if errors.Is(err, lifecycle.ErrInvalidTransition) {
      // surface to the user, entity state is unchanged
  }

SEE ALSO:
  - transition.go: produces TransitionError
  - store.go: produces NotFoundError
*/
package lifecycle

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced entity does not exist in the
	// collection.
	ErrNotFound = errors.New("entity not found")

	// ErrValidation is returned when a required field is missing or a numeric
	// constraint is violated.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition is returned when a requested status change is not
	// in the entity's transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPreconditionFailed is returned when a domain rule blocks an
	// otherwise-valid operation (e.g. deleting a non-draft entity).
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrStaleVersion is returned when an optimistic version check fails
	// during a read-modify-write cycle.
	ErrStaleVersion = errors.New("stale entity version")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError identifies the missing entity by kind and id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// TransitionError names both statuses in human-readable form.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// PreconditionError carries the rule that blocked the operation.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

func (e *PreconditionError) Unwrap() error { return ErrPreconditionFailed }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientError returns true if the error is due to invalid client input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrPreconditionFailed) ||
		errors.Is(err, ErrStaleVersion)
}
