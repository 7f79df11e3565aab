// Package llm defines the text generation boundary used by model-backed
// executables, with a deterministic echo model and a caching decorator.
package llm

import "context"

// Generator turns a resolved prompt into a response
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Func adapts a function to Generator
type Func func(ctx context.Context, prompt string) (string, error)

// Generate calls f
func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Text adapts an infallible text function to Generator
func Text(fn func(prompt string) string) Generator {
	return Func(func(_ context.Context, prompt string) (string, error) {
		return fn(prompt), nil
	})
}
