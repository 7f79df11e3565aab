package builder

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/conceptflow/extension"
	"github.com/viant/conceptflow/model/concept"
	"github.com/viant/conceptflow/model/graph"
	"github.com/viant/conceptflow/runtime/orchestrator"
	"github.com/viant/conceptflow/runtime/registry"
	"github.com/viant/conceptflow/service/dao/workflow"
	"github.com/viant/conceptflow/service/llm"
)

func newService(opts ...Option) *Service {
	models := extension.NewModels()
	models.Register("echo", llm.NewEcho("echo"))
	return New(models, extension.NewFunctions(), opts...)
}

func TestService_Build(t *testing.T) {
	srv := newService(WithDefaultModel("echo"))
	step := graph.NewChainStep("main",
		graph.NewPromptStep("Tell me about {topic}", "", "summary"),
		graph.NewThreadsStep("",
			graph.NewPromptStep("Shorten {summary}", "echo", "short"),
			graph.NewFunctionStep("upper", []string{"topic", "summary"}, "loudTopic", "loudSummary"),
		),
	)

	root, err := srv.Build(context.Background(), step)
	require.NoError(t, err)
	assert.Equal(t, graph.KindChain, root.Kind())
	assert.Equal(t, "main", root.Name())
	assert.Equal(t, 3, orchestrator.CountLeaves(root))

	reg, err := registry.New([]*concept.Concept{concept.Seed("topic", "otters")})
	require.NoError(t, err)
	_, err = orchestrator.Run(context.Background(), root, reg)
	require.NoError(t, err)
	assert.EqualValues(t, map[string]string{
		"topic":       "otters",
		"summary":     "Response of echo: to (Tell me about otters)",
		"short":       "Response of echo: to (Shorten Response of echo: to (Tell me about otters))",
		"loudTopic":   "OTTERS",
		"loudSummary": "RESPONSE OF ECHO: TO (TELL ME ABOUT OTTERS)",
	}, reg.Values())
}

func TestService_BuildErrors(t *testing.T) {
	testCases := []struct {
		description string
		step        *graph.Step
		expect      string
	}{
		{description: "unknown model", step: graph.NewPromptStep("hi", "gpt", "a"), expect: "unknown model"},
		{description: "no default model", step: graph.NewPromptStep("hi", "", "a"), expect: "unknown model"},
		{description: "unknown function", step: graph.NewFunctionStep("reverse", nil, "a"), expect: "unknown function"},
		{description: "bad template", step: graph.NewPromptStep("hi {", "echo", "a"), expect: "a"},
		{description: "no loader", step: &graph.Step{PromptURL: "p.txt", Model: "echo", Output: "a"}, expect: "prompt loader"},
		{description: "no kind", step: &graph.Step{Name: "empty"}, expect: "empty"},
	}

	srv := newService()
	for _, tc := range testCases {
		_, err := srv.Build(context.Background(), tc.step)
		if assert.Error(t, err, tc.description) {
			assert.Contains(t, err.Error(), tc.expect, tc.description)
		}
	}
}

func TestService_BuildAll(t *testing.T) {
	srv := newService()
	nodes, err := srv.BuildAll(context.Background(), []*graph.Step{
		graph.NewPromptStep("{topic}", "echo", "a").WithName("first").WithList(),
		graph.NewFunctionStep("join", []string{"a", "topic"}, "b"),
	})
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "first", nodes[0].Name())
	assert.Equal(t, "b", nodes[1].Name())
}

func TestService_BuildWorkflow(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	require.NoError(t, fs.Upload(ctx, "mem://localhost/builder/flow.yaml", 0644, strings.NewReader(`init:
  topic: otters
pipeline:
  chain:
    - promptURL: summary.txt
      model: echo
      output: summary
`)))
	require.NoError(t, fs.Upload(ctx, "mem://localhost/builder/summary.txt", 0644, strings.NewReader("Tell me about {topic}")))
	loader := workflow.New(workflow.WithFS(fs))
	wf, err := loader.Load(ctx, "mem://localhost/builder/flow.yaml")
	require.NoError(t, err)

	srv := newService(WithPromptLoader(loader))
	root, err := srv.BuildWorkflow(ctx, wf)
	require.NoError(t, err)

	reg, err := registry.New([]*concept.Concept{concept.Seed("topic", "otters")})
	require.NoError(t, err)
	_, err = orchestrator.Run(ctx, root, reg)
	require.NoError(t, err)
	summary, ok := reg.Lookup("summary")
	require.True(t, ok)
	value, err := summary.Value()
	require.NoError(t, err)
	assert.Equal(t, "Response of echo: to (Tell me about otters)", value)
}
