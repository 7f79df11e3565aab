package executable

import (
	"context"
	"fmt"

	"github.com/viant/conceptflow/model/concept"
	"github.com/viant/structology/conv"
)

// Typed adapts fn to a Transform; input concept values are converted into T
// by matching concept names to T's fields.
func Typed[T any](fn func(ctx context.Context, input *T) ([]string, error)) Transform {
	options := conv.DefaultOptions()
	options.IgnoreUnmapped = true
	converter := conv.NewConverter(options)
	return func(ctx context.Context, inputs map[string]*concept.Concept) ([]string, error) {
		values := make(map[string]interface{}, len(inputs))
		for name, c := range inputs {
			value, err := c.Value()
			if err != nil {
				return nil, err
			}
			values[name] = value
		}
		input := new(T)
		if err := converter.Convert(values, input); err != nil {
			return nil, fmt.Errorf("failed to convert inputs to %T: %w", input, err)
		}
		return fn(ctx, input)
	}
}

// Values adapts fn to a Transform over plain input values
func Values(fn func(values map[string]string) []string) Transform {
	return func(ctx context.Context, inputs map[string]*concept.Concept) ([]string, error) {
		values := make(map[string]string, len(inputs))
		for name, c := range inputs {
			value, err := c.Value()
			if err != nil {
				return nil, err
			}
			values[name] = value
		}
		return fn(values), nil
	}
}
