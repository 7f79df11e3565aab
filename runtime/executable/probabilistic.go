package executable

import (
	"context"
	"sync"

	"github.com/viant/conceptflow/model/concept"
	"github.com/viant/conceptflow/model/graph"
	"github.com/viant/conceptflow/model/prompt"
	"github.com/viant/conceptflow/runtime/registry"
	"github.com/viant/conceptflow/service/llm"
)

// Probabilistic fills a prompt from the active registry and wraps the
// generator response as a single output concept.
type Probabilistic struct {
	name      string
	generator llm.Generator
	prompt    *prompt.Prompt
	output    string
	list      bool
	history   []string
	mu        sync.Mutex
}

func (p *Probabilistic) Kind() graph.Kind { return graph.KindLeaf }

func (p *Probabilistic) Name() string { return p.name }

// Inputs returns prompt placeholders
func (p *Probabilistic) Inputs() []string { return p.prompt.Inputs() }

// Outputs returns the output concept name
func (p *Probabilistic) Outputs() []string { return []string{p.output} }

// ListOutputs returns the output name when it is a list concept
func (p *Probabilistic) ListOutputs() []string {
	if !p.list {
		return nil
	}
	return []string{p.output}
}

// Prompt returns the prompt template
func (p *Probabilistic) Prompt() *prompt.Prompt { return p.prompt }

// Run generates the output concept; the registry is only read.
func (p *Probabilistic) Run(ctx context.Context) ([]*concept.Concept, error) {
	reg, err := registry.Current(ctx)
	if err != nil {
		return nil, err
	}
	text, err := p.prompt.Fill(reg)
	if err != nil {
		return nil, err
	}
	response, err := p.generator.Generate(ctx, text)
	if err != nil {
		return nil, err
	}
	output := concept.New(p.output)
	if p.list {
		output = concept.NewList(p.output)
	}
	output.AssignContent(response)

	p.mu.Lock()
	p.history = append(p.history, response)
	p.mu.Unlock()
	return []*concept.Concept{output}, nil
}

// History returns generated responses in call order
func (p *Probabilistic) History() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.history...)
}

// NewProbabilistic creates a model-backed executable
func NewProbabilistic(generator llm.Generator, template *prompt.Prompt, output string, opts ...Option) *Probabilistic {
	o := newOptions(output, opts)
	return &Probabilistic{
		name:      o.name,
		generator: generator,
		prompt:    template,
		output:    output,
		list:      o.list,
	}
}
