package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcho_Generate(t *testing.T) {
	model := NewEcho("gpt")
	ctx := context.Background()

	testCases := []struct {
		prompt string
		expect string
	}{
		{prompt: "Tell me about otters", expect: "Response of gpt: to (Tell me about otters)"},
		{prompt: "", expect: "Response of gpt: to ()"},
	}
	for _, tc := range testCases {
		actual, err := model.Generate(ctx, tc.prompt)
		require.NoError(t, err)
		assert.Equal(t, tc.expect, actual)
	}
	memory := model.Memory()
	require.Len(t, memory, 2)
	assert.Equal(t, Exchange{Prompt: "Tell me about otters", Response: "Response of gpt: to (Tell me about otters)"}, memory[0])

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := model.Generate(cancelled, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, model.Memory(), 2)
}

func TestCached_Generate(t *testing.T) {
	model := NewEcho("gpt")
	cached := NewCached(model, time.Minute)
	ctx := context.Background()

	first, err := cached.Generate(ctx, "a")
	require.NoError(t, err)
	second, err := cached.Generate(ctx, "a")
	require.NoError(t, err)
	_, _ = cached.Generate(ctx, "b")

	assert.Equal(t, first, second)
	assert.Len(t, model.Memory(), 2)
	hits, misses := cached.Stats()
	assert.EqualValues(t, 1, hits)
	assert.EqualValues(t, 2, misses)

	cached.Flush()
	_, _ = cached.Generate(ctx, "a")
	assert.Len(t, model.Memory(), 3)
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	calls := 0
	failing := Func(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", errors.New("unavailable")
	})
	cached := NewCached(failing, 0)
	_, err := cached.Generate(context.Background(), "a")
	assert.Error(t, err)
	_, err = cached.Generate(context.Background(), "a")
	assert.Error(t, err)
	assert.Equal(t, 2, calls)

	upper := Text(func(prompt string) string { return prompt + "!" })
	actual, err := upper.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi!", actual)
}
