package builder

import (
	"context"
	"fmt"

	"github.com/viant/conceptflow/extension"
	"github.com/viant/conceptflow/model"
	"github.com/viant/conceptflow/model/concept"
	"github.com/viant/conceptflow/model/graph"
	"github.com/viant/conceptflow/model/prompt"
	"github.com/viant/conceptflow/runtime/executable"
	"github.com/viant/conceptflow/runtime/orchestrator"
)

// PromptLoader loads prompt templates referenced by location
type PromptLoader interface {
	LoadPrompt(ctx context.Context, workflow *model.Workflow, location string) (string, error)
}

// Service creates executables and orchestrators from declarative steps
type Service struct {
	models       *extension.Models
	functions    *extension.Functions
	loader       PromptLoader
	defaultModel string
}

// Build creates a node from a step tree
func (s *Service) Build(ctx context.Context, step *graph.Step) (graph.Node, error) {
	return s.build(ctx, nil, step)
}

// BuildAll creates one node per step
func (s *Service) BuildAll(ctx context.Context, steps []*graph.Step) ([]graph.Node, error) {
	ret := make([]graph.Node, 0, len(steps))
	for _, step := range steps {
		node, err := s.build(ctx, nil, step)
		if err != nil {
			return nil, err
		}
		ret = append(ret, node)
	}
	return ret, nil
}

// BuildWorkflow creates the workflow pipeline; prompt locations resolve
// against the workflow source.
func (s *Service) BuildWorkflow(ctx context.Context, workflow *model.Workflow) (graph.Node, error) {
	if workflow == nil || workflow.Pipeline == nil {
		return nil, fmt.Errorf("workflow pipeline was empty")
	}
	return s.build(ctx, workflow, workflow.Pipeline)
}

func (s *Service) build(ctx context.Context, workflow *model.Workflow, step *graph.Step) (graph.Node, error) {
	if step == nil {
		return nil, fmt.Errorf("step was nil")
	}
	kind, err := step.Kind()
	if err != nil {
		return nil, err
	}
	switch kind {
	case graph.KindChain:
		chain := orchestrator.NewChain()
		if step.Name != "" {
			chain.WithName(step.Name)
		}
		for _, child := range step.Chain {
			node, err := s.build(ctx, workflow, child)
			if err != nil {
				return nil, err
			}
			chain.Add(node)
		}
		return chain, nil
	case graph.KindThreads:
		threads := orchestrator.NewThreads()
		if step.Name != "" {
			threads.WithName(step.Name)
		}
		for _, child := range step.Threads {
			node, err := s.build(ctx, workflow, child)
			if err != nil {
				return nil, err
			}
			threads.Add(node)
		}
		return threads, nil
	}
	if step.IsProbabilistic() {
		return s.probabilistic(ctx, workflow, step)
	}
	return s.symbolic(step)
}

func (s *Service) probabilistic(ctx context.Context, workflow *model.Workflow, step *graph.Step) (graph.Node, error) {
	template := step.Prompt
	if step.PromptURL != "" {
		if s.loader == nil {
			return nil, fmt.Errorf("step %v: prompt loader was not configured", step.Label())
		}
		var err error
		if template, err = s.loader.LoadPrompt(ctx, workflow, step.PromptURL); err != nil {
			return nil, fmt.Errorf("step %v: %w", step.Label(), err)
		}
	}
	parsed, err := prompt.New(template)
	if err != nil {
		return nil, fmt.Errorf("step %v: %w", step.Label(), err)
	}
	modelName := step.Model
	if modelName == "" {
		modelName = s.defaultModel
	}
	generator, err := s.models.Lookup(modelName)
	if err != nil {
		return nil, fmt.Errorf("step %v: %w", step.Label(), err)
	}
	var options []executable.Option
	if step.Name != "" {
		options = append(options, executable.WithName(step.Name))
	}
	if step.List {
		options = append(options, executable.AsList())
	}
	return executable.NewProbabilistic(generator, parsed, step.Output, options...), nil
}

func (s *Service) symbolic(step *graph.Step) (graph.Node, error) {
	fn, err := s.functions.Lookup(step.Function)
	if err != nil {
		return nil, fmt.Errorf("step %v: %w", step.Label(), err)
	}
	var options []executable.Option
	if step.Name != "" {
		options = append(options, executable.WithName(step.Name))
	}
	return executable.NewSymbolic(transform(fn, step.Inputs), step.Inputs, step.Outputs, options...), nil
}

// transform passes input values to fn in declared order
func transform(fn extension.Function, names []string) executable.Transform {
	names = append([]string(nil), names...)
	return func(ctx context.Context, inputs map[string]*concept.Concept) ([]string, error) {
		args := make([]string, len(names))
		for i, name := range names {
			value, err := inputs[name].Value()
			if err != nil {
				return nil, err
			}
			args[i] = value
		}
		return fn(ctx, args)
	}
}

// New creates a builder
func New(models *extension.Models, functions *extension.Functions, opts ...Option) *Service {
	ret := &Service{models: models, functions: functions}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
