package executable

import (
	"context"
	"strings"

	"github.com/viant/conceptflow/model/concept"
	"github.com/viant/conceptflow/model/graph"
	"github.com/viant/conceptflow/model/types"
	"github.com/viant/conceptflow/runtime/registry"
)

// Transform computes output values from named input concepts. It must yield
// one value per declared output.
type Transform func(ctx context.Context, inputs map[string]*concept.Concept) ([]string, error)

// Symbolic runs a deterministic transform over named registry concepts
type Symbolic struct {
	name      string
	transform Transform
	inputs    []string
	outputs   []string
}

func (s *Symbolic) Kind() graph.Kind { return graph.KindLeaf }

func (s *Symbolic) Name() string { return s.name }

func (s *Symbolic) Inputs() []string { return append([]string(nil), s.inputs...) }

func (s *Symbolic) Outputs() []string { return append([]string(nil), s.outputs...) }

// Run resolves inputs, applies the transform and wraps each value as a
// concept named by the matching declared output.
func (s *Symbolic) Run(ctx context.Context) ([]*concept.Concept, error) {
	reg, err := registry.Current(ctx)
	if err != nil {
		return nil, err
	}
	inputs := make(map[string]*concept.Concept, len(s.inputs))
	for _, name := range s.inputs {
		c, ok := reg.Lookup(name)
		if !ok {
			return nil, types.NewMissingConceptError(name, reg.Names())
		}
		if !c.Resolved() {
			return nil, types.NewPendingConceptError(name, reg.Names())
		}
		inputs[name] = c
	}
	values, err := s.transform(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if len(values) != len(s.outputs) {
		return nil, types.NewOutputMismatchError(s.name, len(s.outputs), len(values))
	}
	ret := make([]*concept.Concept, len(values))
	for i, value := range values {
		ret[i] = concept.New(s.outputs[i])
		ret[i].AssignContent(value)
	}
	return ret, nil
}

// NewSymbolic creates a function-backed executable
func NewSymbolic(transform Transform, inputs, outputs []string, opts ...Option) *Symbolic {
	o := newOptions(strings.Join(outputs, ","), opts)
	return &Symbolic{
		name:      o.name,
		transform: transform,
		inputs:    append([]string(nil), inputs...),
		outputs:   append([]string(nil), outputs...),
	}
}
