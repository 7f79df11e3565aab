package orchestrator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/conceptflow/model/graph"
	"github.com/viant/conceptflow/model/prompt"
	"github.com/viant/conceptflow/model/types"
	"github.com/viant/conceptflow/runtime/executable"
	"github.com/viant/conceptflow/service/llm"
)

func TestValidate(t *testing.T) {
	model := llm.NewEcho("echo")
	testCases := []struct {
		description string
		root        graph.Node
		available   []string
		isolated    bool
		expect      []string
	}{
		{
			description: "chain in dependency order",
			root:        NewChain(ask(model, "{topic}", "a"), ask(model, "{a}", "b")),
			available:   []string{"topic"},
		},
		{
			description: "chain reversed",
			root:        NewChain(ask(model, "{a}", "b"), ask(model, "{topic}", "a")),
			available:   []string{"topic"},
			expect:      []string{"a"},
		},
		{
			description: "threads siblings",
			root:        NewThreads(ask(model, "{topic}", "a"), ask(model, "{a}", "b")),
			available:   []string{"topic"},
			expect:      []string{"a"},
		},
		{
			description: "threads outputs visible after the batch",
			root:        NewChain(NewThreads(ask(model, "{topic}", "a"), upper("topic", "b")), ask(model, "{a} {b}", "c")),
			available:   []string{"topic"},
		},
		{
			description: "threads leaf reads earlier nested composite",
			root:        NewThreads(NewChain(ask(model, "{topic}", "a")), ask(model, "{a}", "b")),
			available:   []string{"topic"},
		},
		{
			description: "threads nested composite reads earlier nested composite",
			root:        NewThreads(NewChain(ask(model, "{topic}", "a")), NewChain(upper("a", "b"))),
			available:   []string{"topic"},
		},
		{
			description: "threads nested composite does not read earlier leaf",
			root:        NewThreads(ask(model, "{topic}", "a"), NewChain(upper("a", "b"))),
			available:   []string{"topic"},
			expect:      []string{"a"},
		},
		{
			description: "isolated threads leaf does not read nested composite",
			root:        NewThreads(NewChain(ask(model, "{topic}", "a")), ask(model, "{a}", "b")),
			available:   []string{"topic"},
			isolated:    true,
			expect:      []string{"a"},
		},
		{
			description: "isolated threads outputs visible after the batch",
			root:        NewChain(NewThreads(NewChain(ask(model, "{topic}", "a")), upper("topic", "b")), ask(model, "{a} {b}", "c")),
			available:   []string{"topic"},
			isolated:    true,
		},
		{
			description: "list items visible after the list",
			root:        NewChain(executable.NewProbabilistic(model, prompt.MustNew("{topic}"), "facts", executable.AsList()), upper("facts_1", "b")),
			available:   []string{"topic"},
		},
		{
			description: "items of a text concept",
			root:        NewChain(ask(model, "{topic}", "a"), upper("a_0", "b")),
			available:   []string{"topic"},
			expect:      []string{"a_0"},
		},
		{
			description: "every missing input reported",
			root:        NewChain(ask(model, "{x} {y}", "a"), upper("z", "b")),
			expect:      []string{"x", "y", "z"},
		},
	}

	for _, tc := range testCases {
		validate := Validate
		if tc.isolated {
			validate = ValidateIsolated
		}
		issues := validate(tc.root, tc.available...)
		var missing []string
		for _, issue := range issues {
			var target *types.MissingConceptError
			if assert.True(t, errors.As(issue, &target), tc.description) {
				missing = append(missing, target.Name)
			}
			assert.True(t, errors.Is(issue, types.ErrMissingConcept), tc.description)
		}
		assert.EqualValues(t, tc.expect, missing, tc.description)
	}
}
