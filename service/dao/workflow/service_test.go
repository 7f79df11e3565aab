package workflow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/conceptflow/model/graph"
)

const ottersYAML = `name: otters
description: otter facts
init:
  topic: otters
pipeline:
  chain:
    - prompt: "Tell me about {topic}"
      model: echo
      output: summary
    - name: fanout
      threads:
        - promptURL: prompts/short.txt
          model: echo
          output: short
          list: true
        - function: upper
          inputs: summary
          outputs: [loud]
`

func TestService_DecodeYAML(t *testing.T) {
	srv := New()
	workflow, err := srv.DecodeYAML([]byte(ottersYAML))
	require.NoError(t, err)

	assert.Equal(t, "otters", workflow.Name)
	assert.Equal(t, "otter facts", workflow.Description)
	assert.Nil(t, workflow.Source)
	assert.EqualValues(t, map[string]string{"topic": "otters"}, workflow.Init.ToMap())

	root := workflow.Pipeline
	require.NotNil(t, root)
	assert.Equal(t, "otters", root.ID)
	require.Len(t, root.Chain, 2)

	first := root.Chain[0]
	assert.Equal(t, "otters/0", first.ID)
	assert.Equal(t, "Tell me about {topic}", first.Prompt)
	assert.Equal(t, "summary", first.Output)

	fanout := root.Chain[1]
	assert.Equal(t, "otters/fanout", fanout.ID)
	kind, err := fanout.Kind()
	require.NoError(t, err)
	assert.Equal(t, graph.KindThreads, kind)
	require.Len(t, fanout.Threads, 2)
	assert.True(t, fanout.Threads[0].List)
	assert.Equal(t, "prompts/short.txt", fanout.Threads[0].PromptURL)
	assert.EqualValues(t, []string{"summary"}, fanout.Threads[1].Inputs)
	assert.EqualValues(t, []string{"loud"}, fanout.Threads[1].Outputs)
	assert.Equal(t, "otters/fanout/1", fanout.Threads[1].ID)
}

func TestService_DecodeYAML_Errors(t *testing.T) {
	testCases := []struct {
		description string
		document    string
		expect      string
	}{
		{
			description: "unknown step key",
			document:    "pipeline:\n  chain:\n    - prompt: hi\n      output: a\n      retries: 3\n",
			expect:      "unsupported step key",
		},
		{
			description: "unknown workflow key",
			document:    "pipelines:\n  chain: []\n",
			expect:      "unsupported workflow key",
		},
		{
			description: "chain is not a sequence",
			document:    "pipeline:\n  chain: abc\n",
			expect:      "should be a sequence",
		},
		{
			description: "list is not a boolean",
			document:    "pipeline:\n  prompt: hi\n  output: a\n  list: maybe\n",
			expect:      "expected boolean",
		},
		{
			description: "structural validation",
			document:    "pipeline:\n  prompt: hi\n  function: upper\n",
			expect:      "mutually exclusive",
		},
		{
			description: "missing pipeline",
			document:    "name: empty\n",
			expect:      "pipeline is nil",
		},
	}

	srv := New()
	for _, tc := range testCases {
		_, err := srv.DecodeYAML([]byte(tc.document))
		if assert.Error(t, err, tc.description) {
			assert.Contains(t, err.Error(), tc.expect, tc.description)
		}
	}
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	require.NoError(t, fs.Upload(ctx, "mem://localhost/flows/otters.yaml", 0644, strings.NewReader(ottersYAML)))
	require.NoError(t, fs.Upload(ctx, "mem://localhost/flows/prompts/short.txt", 0644, strings.NewReader("Shorten {summary}")))
	srv := New(WithFS(fs))

	workflow, err := srv.Load(ctx, "mem://localhost/flows/otters")
	require.NoError(t, err)
	require.NotNil(t, workflow.Source)
	assert.Equal(t, "mem://localhost/flows/otters.yaml", workflow.Source.URL)
	assert.Equal(t, "otters", workflow.Name)

	template, err := srv.LoadPrompt(ctx, workflow, workflow.Pipeline.Chain[1].Threads[0].PromptURL)
	require.NoError(t, err)
	assert.Equal(t, "Shorten {summary}", template)

	_, err = srv.Load(ctx, "mem://localhost/flows/missing.yaml")
	assert.Error(t, err)
}

func TestService_LoadAnonymous(t *testing.T) {
	srv := New(WithRootNodeName("root"))
	workflow, err := srv.DecodeYAML([]byte("root:\n  prompt: hi\n  output: a\n"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(workflow.Name, "anonymous-"))
	assert.Equal(t, workflow.Name, workflow.Pipeline.ID)
}
