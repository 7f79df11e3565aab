package model

import (
	"fmt"

	"github.com/viant/conceptflow/model/graph"
	"github.com/viant/conceptflow/model/state"
)

// Workflow represents a concept workflow definition
type Workflow struct {

	// Source provides information about the origin of the workflow
	Source *Source `json:"source,omitempty" yaml:"source,omitempty"`
	// Name is the unique identifier for the workflow
	Name string `json:"name" yaml:"name"`

	// Description provides a human-readable description of the workflow
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Version specifies the workflow version
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Init parameters seed the registry as inputted concepts
	Init state.Parameters `json:"init,omitempty" yaml:"init,omitempty"`

	// Pipeline defines the composition tree of the workflow
	Pipeline *graph.Step `json:"pipeline,omitempty" yaml:"pipeline,omitempty"`
}

// Source describes where a workflow was loaded from
type Source struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Validate performs a structural validation of the workflow. The returned
// slice is empty when the workflow is sound. Concept dependencies are checked
// separately, once the pipeline is built.
func (w *Workflow) Validate() []error {
	var issues []error
	if w.Pipeline == nil {
		return append(issues, fmt.Errorf("pipeline is nil"))
	}

	seeds := map[string]bool{}
	for _, param := range w.Init {
		if param.Name == "" {
			issues = append(issues, fmt.Errorf("init parameter name was empty"))
			continue
		}
		if seeds[param.Name] {
			issues = append(issues, fmt.Errorf("duplicate init parameter %v", param.Name))
		}
		seeds[param.Name] = true
	}

	seen := map[string]bool{}
	var walk func(step *graph.Step)
	walk = func(step *graph.Step) {
		if step == nil {
			issues = append(issues, fmt.Errorf("step was nil"))
			return
		}
		if step.ID != "" {
			if seen[step.ID] {
				issues = append(issues, fmt.Errorf("duplicate step id %s", step.ID))
			}
			seen[step.ID] = true
		}
		kind, err := step.Kind()
		if err != nil {
			issues = append(issues, err)
			return
		}
		switch kind {
		case graph.KindChain, graph.KindThreads:
			for _, child := range step.Steps() {
				walk(child)
			}
		case graph.KindLeaf:
			issues = append(issues, validateLeaf(step)...)
		}
	}
	walk(w.Pipeline)
	return issues
}

func validateLeaf(step *graph.Step) []error {
	var issues []error
	if step.IsProbabilistic() {
		if step.Prompt != "" && step.PromptURL != "" {
			issues = append(issues, fmt.Errorf("step %s: prompt and promptURL are mutually exclusive", step.Label()))
		}
		if step.Output == "" {
			issues = append(issues, fmt.Errorf("step %s: output is required", step.Label()))
		}
		if len(step.Inputs) > 0 || len(step.Outputs) > 0 {
			issues = append(issues, fmt.Errorf("step %s: prompt inputs are derived from the template", step.Label()))
		}
		return issues
	}
	if len(step.Outputs) == 0 {
		issues = append(issues, fmt.Errorf("step %s: function %s requires outputs", step.Label(), step.Function))
	}
	if step.Output != "" || step.Model != "" || step.List {
		issues = append(issues, fmt.Errorf("step %s: output, model and list apply to prompt steps only", step.Label()))
	}
	outputs := map[string]bool{}
	for _, output := range step.Outputs {
		if outputs[output] {
			issues = append(issues, fmt.Errorf("step %s: duplicate output %s", step.Label(), output))
		}
		outputs[output] = true
	}
	return issues
}

// NewWorkflow creates a new workflow with the given name
func NewWorkflow(name string) *Workflow {
	return &Workflow{Name: name}
}

// WithDescription sets the description of the workflow
func (w *Workflow) WithDescription(description string) *Workflow {
	w.Description = description
	return w
}

// WithVersion sets the version of the workflow
func (w *Workflow) WithVersion(version string) *Workflow {
	w.Version = version
	return w
}

// WithInit adds a seed value to the workflow
func (w *Workflow) WithInit(name string, value string) *Workflow {
	w.Init.Add(name, value)
	return w
}

// WithPipeline sets the root step of the workflow
func (w *Workflow) WithPipeline(pipeline *graph.Step) *Workflow {
	w.Pipeline = pipeline
	return w
}

// AllSteps returns steps indexed by ID
func (w *Workflow) AllSteps() map[string]*graph.Step {
	steps := make(map[string]*graph.Step)
	var traverse func(step *graph.Step)
	traverse = func(step *graph.Step) {
		if step == nil {
			return
		}
		if step.ID != "" {
			steps[step.ID] = step
		}
		for _, child := range step.Steps() {
			traverse(child)
		}
	}
	traverse(w.Pipeline)
	return steps
}

// Clone creates a deep copy of the workflow
func (w *Workflow) Clone() *Workflow {
	if w == nil {
		return nil
	}
	clone := &Workflow{
		Name:        w.Name,
		Description: w.Description,
		Version:     w.Version,
		Init:        w.Init.Clone(),
		Pipeline:    w.Pipeline.Clone(),
	}
	if w.Source != nil {
		source := *w.Source
		clone.Source = &source
	}
	return clone
}
