package graph

import "fmt"

// Step is a declarative composition tree node. Exactly one of Chain,
// Threads, Prompt/PromptURL or Function defines its kind.
type Step struct {
	ID        string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Chain     []*Step  `json:"chain,omitempty" yaml:"chain,omitempty"`
	Threads   []*Step  `json:"threads,omitempty" yaml:"threads,omitempty"`
	Prompt    string   `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	PromptURL string   `json:"promptURL,omitempty" yaml:"promptURL,omitempty"`
	Model     string   `json:"model,omitempty" yaml:"model,omitempty"`
	Output    string   `json:"output,omitempty" yaml:"output,omitempty"`
	List      bool     `json:"list,omitempty" yaml:"list,omitempty"`
	Function  string   `json:"function,omitempty" yaml:"function,omitempty"`
	Inputs    []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs   []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// NewChainStep creates a sequential step
func NewChainStep(name string, steps ...*Step) *Step {
	return &Step{Name: name, Chain: append(make([]*Step, 0, len(steps)), steps...)}
}

// NewThreadsStep creates a batch step
func NewThreadsStep(name string, steps ...*Step) *Step {
	return &Step{Name: name, Threads: append(make([]*Step, 0, len(steps)), steps...)}
}

// NewPromptStep creates a model-backed step
func NewPromptStep(template, model, output string) *Step {
	return &Step{Prompt: template, Model: model, Output: output}
}

// NewFunctionStep creates a function-backed step
func NewFunctionStep(function string, inputs []string, outputs ...string) *Step {
	return &Step{Function: function, Inputs: inputs, Outputs: outputs}
}

// IsProbabilistic returns true for model-backed steps
func (s *Step) IsProbabilistic() bool {
	return s.Prompt != "" || s.PromptURL != ""
}

// IsSymbolic returns true for function-backed steps
func (s *Step) IsSymbolic() bool {
	return s.Function != ""
}

// Kind infers the node kind
func (s *Step) Kind() (Kind, error) {
	defined := 0
	kind := Kind(0)
	if s.Chain != nil {
		defined++
		kind = KindChain
	}
	if s.Threads != nil {
		defined++
		kind = KindThreads
	}
	if s.IsProbabilistic() {
		defined++
		kind = KindLeaf
	}
	if s.IsSymbolic() {
		defined++
		kind = KindLeaf
	}
	switch defined {
	case 0:
		return 0, fmt.Errorf("step %v: one of chain, threads, prompt or function is required", s.Label())
	case 1:
		return kind, nil
	}
	return 0, fmt.Errorf("step %v: chain, threads, prompt and function are mutually exclusive", s.Label())
}

// Steps returns child steps of a composite step
func (s *Step) Steps() []*Step {
	if s.Chain != nil {
		return s.Chain
	}
	return s.Threads
}

// AddStep appends a child to a chain or threads step
func (s *Step) AddStep(step *Step) *Step {
	if s.Threads != nil {
		s.Threads = append(s.Threads, step)
		return s
	}
	s.Chain = append(s.Chain, step)
	return s
}

// WithList marks the model output as a list concept
func (s *Step) WithList() *Step {
	s.List = true
	return s
}

// WithName sets the step name
func (s *Step) WithName(name string) *Step {
	s.Name = name
	return s
}

// Label returns the step identity used in messages
func (s *Step) Label() string {
	switch {
	case s.ID != "":
		return s.ID
	case s.Name != "":
		return s.Name
	case s.Output != "":
		return s.Output
	case len(s.Outputs) > 0:
		return fmt.Sprint(s.Outputs)
	}
	return "<anonymous>"
}

// Clone creates a deep copy of the step tree
func (s *Step) Clone() *Step {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Inputs = append([]string(nil), s.Inputs...)
	clone.Outputs = append([]string(nil), s.Outputs...)
	clone.Chain = cloneSteps(s.Chain)
	clone.Threads = cloneSteps(s.Threads)
	return &clone
}

func cloneSteps(steps []*Step) []*Step {
	if steps == nil {
		return nil
	}
	ret := make([]*Step, len(steps))
	for i, step := range steps {
		ret[i] = step.Clone()
	}
	return ret
}
