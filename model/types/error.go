package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error taxonomy shared by the model, registry and executables. Callers
// should match with errors.Is rather than comparing messages.
var (
	// ErrDuplicateConcept is a configuration error raised when a registry is
	// seeded with two concepts sharing a name.
	ErrDuplicateConcept = errors.New("duplicate concept")

	// ErrInvalidSeed is a configuration error raised when a registry is
	// seeded with a nil concept or one without a name.
	ErrInvalidSeed = errors.New("invalid seed")

	// ErrMissingConcept is raised when a template placeholder or a function
	// input cannot be resolved in the active registry.
	ErrMissingConcept = errors.New("missing concept")

	// ErrMissingValue is raised when the value of a pending concept is read.
	ErrMissingValue = errors.New("missing value")

	// ErrNoActiveRegistry is raised when an executable runs with no registry
	// bound to its context or to the process wide slot.
	ErrNoActiveRegistry = errors.New("no active registry")

	// ErrOutputMismatch is raised when a transform yields a different number
	// of values than the declared outputs.
	ErrOutputMismatch = errors.New("output count mismatch")
)

// MissingConceptError names the unresolved key and the keys that were available.
type MissingConceptError struct {
	Name      string
	Available []string
	Pending   bool
}

func (e *MissingConceptError) Error() string {
	available := append([]string(nil), e.Available...)
	sort.Strings(available)
	state := "not found"
	if e.Pending {
		state = "pending"
	}
	return fmt.Sprintf("missing concept %q (%s), available: [%s]", e.Name, state, strings.Join(available, ", "))
}

// Is reports ErrMissingConcept equivalence.
func (e *MissingConceptError) Is(target error) bool {
	return target == ErrMissingConcept
}

// NewMissingConceptError creates a missing concept error.
func NewMissingConceptError(name string, available []string) error {
	return &MissingConceptError{Name: name, Available: available}
}

// NewPendingConceptError creates a missing concept error for a concept that exists but has no content yet.
func NewPendingConceptError(name string, available []string) error {
	return &MissingConceptError{Name: name, Available: available, Pending: true}
}

// NewDuplicateConceptError creates a configuration error for a repeated seed name.
func NewDuplicateConceptError(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateConcept, name)
}

// NewInvalidSeedError creates a configuration error for the seed at index.
func NewInvalidSeedError(index int, reason string) error {
	return fmt.Errorf("%w at %d: %v", ErrInvalidSeed, index, reason)
}

// NewMissingValueError creates a missing value error for the named concept.
func NewMissingValueError(name string) error {
	return fmt.Errorf("%w: concept %q has no content", ErrMissingValue, name)
}

// NewOutputMismatchError reports a transform output count mismatch.
func NewOutputMismatchError(component string, expected, actual int) error {
	return fmt.Errorf("%w: %v declared %d outputs, got %d", ErrOutputMismatch, component, expected, actual)
}
