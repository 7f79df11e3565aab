package concept

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/conceptflow/model/types"
)

func TestConcept_Value(t *testing.T) {
	testCases := []struct {
		name          string
		concept       *Concept
		expect        string
		expectErr     error
		expectInputed bool
	}{
		{name: "seed", concept: Seed("topic", "otters"), expect: "otters", expectInputed: true},
		{name: "empty seed", concept: Seed("topic", ""), expect: "", expectInputed: true},
		{name: "pending", concept: New("summary"), expectErr: types.ErrMissingValue},
		{name: "pending list", concept: NewList("items"), expectErr: types.ErrMissingValue},
	}

	for _, tc := range testCases {
		actual, err := tc.concept.Value()
		assert.Equal(t, tc.expectInputed, tc.concept.Inputted, tc.name)
		assert.Equal(t, 0, tc.concept.Level, tc.name)
		if tc.expectErr != nil {
			assert.True(t, errors.Is(err, tc.expectErr), tc.name)
			assert.False(t, tc.concept.Resolved(), tc.name)
			continue
		}
		assert.NoError(t, err, tc.name)
		assert.Equal(t, tc.expect, actual, tc.name)
	}
}

func TestConcept_AssignContent(t *testing.T) {
	c := New("summary")
	c.AssignContent("first")
	c.AssignContent("second")
	value, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, "second", value)
	assert.False(t, c.Inputted)
}

func TestConcept_Items(t *testing.T) {
	list := NewList("steps").WithLevel(2)
	list.AssignContent("plan\nexecute\nreview")

	items, err := list.Items()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "steps_0", items[0].Name)
	assert.Equal(t, "steps_2", items[2].Name)
	value, _ := items[1].Value()
	assert.Equal(t, "execute", value)
	assert.Equal(t, 2, items[1].Level)

	_, err = Seed("topic", "otters").Items()
	assert.Error(t, err)
}

func TestConcept_Clone(t *testing.T) {
	c := Seed("topic", "otters")
	clone := c.Clone()
	clone.AssignContent("beavers")
	value, _ := c.Value()
	assert.Equal(t, "otters", value)
	assert.Equal(t, "topic[0]: otters", c.String())
	assert.Equal(t, "summary[0]: <pending>", New("summary").String())
}
