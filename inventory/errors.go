/*
errors.go - Centralized error types for the inventory core

PURPOSE:

	All error types in one place for consistency and discoverability.
	Calling layers (api, store) wrap these with transport context.

ERROR CATEGORIES:
 1. Validation errors - Precondition violations on allocator input
 2. Lookup errors - Missing projects in a store

The allocator has exactly one structural failure mode: a non-positive
expansion count. Everything else (unrecognized enum values) resolves to a
documented default and is observable through calculation details, never
through an error.

USAGE:

	if errors.Is(err, inventory.ErrInvalidCount) {
	    // 400 to the client
	}
*/
package inventory

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidCount is returned when an allocator is asked to produce a
	// non-positive number of units.
	ErrInvalidCount = errors.New("unit count must be positive")

	// ErrProjectNotFound is returned when a referenced project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports a precondition violation on allocator input.
type ValidationError struct {
	Field   string
	Value   int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidCount
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidCount)
}

// IsNotFound returns true if the error indicates a missing project.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProjectNotFound)
}
