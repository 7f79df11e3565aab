package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingConceptError(t *testing.T) {
	testCases := []struct {
		name        string
		err         error
		expectIs    error
		expectInMsg []string
	}{
		{
			name:        "absent key",
			err:         NewMissingConceptError("topic", []string{"b", "a"}),
			expectIs:    ErrMissingConcept,
			expectInMsg: []string{`"topic"`, "not found", "[a, b]"},
		},
		{
			name:        "pending key",
			err:         NewPendingConceptError("summary", []string{"summary"}),
			expectIs:    ErrMissingConcept,
			expectInMsg: []string{`"summary"`, "pending"},
		},
		{
			name:        "wrapped",
			err:         fmt.Errorf("fill: %w", NewMissingConceptError("x", nil)),
			expectIs:    ErrMissingConcept,
			expectInMsg: []string{`"x"`},
		},
		{
			name:        "duplicate",
			err:         NewDuplicateConceptError("topic"),
			expectIs:    ErrDuplicateConcept,
			expectInMsg: []string{"duplicate concept", `"topic"`},
		},
		{
			name:        "invalid seed",
			err:         NewInvalidSeedError(1, "nil concept"),
			expectIs:    ErrInvalidSeed,
			expectInMsg: []string{"invalid seed at 1", "nil concept"},
		},
		{
			name:        "output mismatch",
			err:         NewOutputMismatchError("split", 2, 3),
			expectIs:    ErrOutputMismatch,
			expectInMsg: []string{"2 outputs", "got 3"},
		},
	}

	for _, tc := range testCases {
		assert.True(t, errors.Is(tc.err, tc.expectIs), tc.name)
		for _, fragment := range tc.expectInMsg {
			assert.Contains(t, tc.err.Error(), fragment, tc.name)
		}
	}

	var missing *MissingConceptError
	assert.True(t, errors.As(NewMissingConceptError("topic", []string{"a"}), &missing))
	assert.Equal(t, "topic", missing.Name)
	assert.False(t, errors.Is(NewMissingValueError("x"), ErrMissingConcept))
}
