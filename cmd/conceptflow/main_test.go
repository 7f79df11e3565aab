package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

const ottersYAML = `name: otters
init:
  topic: otters
pipeline:
  chain:
    - prompt: "Tell me about {topic}"
      output: summary
    - function: upper
      inputs: [summary]
      outputs: [loud]
`

const brokenYAML = `name: broken
pipeline:
  chain:
    - prompt: "Shorten {summary}"
      output: short
`

func upload(t *testing.T, URL, content string) {
	t.Helper()
	require.NoError(t, afs.New().Upload(context.Background(), URL, 0644, strings.NewReader(content)))
}

func execute(args ...string) (string, error) {
	root := newRootCmd("test")
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunCmd(t *testing.T) {
	upload(t, "mem://localhost/cli/otters.yaml", ottersYAML)

	testCases := []struct {
		description string
		args        []string
		expect      []string
	}{
		{
			description: "text",
			args:        []string{"run", "mem://localhost/cli/otters.yaml"},
			expect: []string{
				"[0] topic: otters",
				"[0] summary: Response of echo: to (Tell me about otters)",
				"[1] loud: RESPONSE OF ECHO: TO (TELL ME ABOUT OTTERS)",
			},
		},
		{
			description: "override",
			args:        []string{"run", "mem://localhost/cli/otters.yaml", "--set", "topic=beavers", "--concurrency", "2"},
			expect:      []string{"[0] summary: Response of echo: to (Tell me about beavers)"},
		},
		{
			description: "yaml",
			args:        []string{"run", "mem://localhost/cli/otters.yaml", "-f", "yaml"},
			expect:      []string{"workflow: otters", "state: completed", "name: loud"},
		},
	}

	for _, tc := range testCases {
		output, err := execute(tc.args...)
		require.NoError(t, err, tc.description)
		for _, expect := range tc.expect {
			assert.Contains(t, output, expect, tc.description)
		}
	}
}

func TestRunCmd_JSON(t *testing.T) {
	upload(t, "mem://localhost/cli/otters.yaml", ottersYAML)
	output, err := execute("run", "mem://localhost/cli/otters.yaml", "--format", "json")
	require.NoError(t, err)

	view := &runView{}
	require.NoError(t, json.Unmarshal([]byte(output), view))
	assert.Equal(t, "completed", view.State)
	assert.Equal(t, 2, view.Level)
	require.Len(t, view.Concepts, 3)
	assert.Equal(t, "loud", view.Concepts[2].Name)
}

func TestRunCmd_Errors(t *testing.T) {
	upload(t, "mem://localhost/cli/broken.yaml", brokenYAML)

	testCases := []struct {
		description string
		args        []string
		expect      string
	}{
		{description: "bad format", args: []string{"run", "mem://localhost/cli/broken.yaml", "--format", "xml"}, expect: "unsupported format"},
		{description: "bad set", args: []string{"run", "mem://localhost/cli/broken.yaml", "--set", "topic"}, expect: "expected name=value"},
		{description: "missing concept", args: []string{"run", "mem://localhost/cli/broken.yaml"}, expect: "missing concept"},
		{description: "bad concurrency", args: []string{"run", "mem://localhost/cli/broken.yaml", "--concurrency", "0"}, expect: "threads.concurrency"},
		{description: "missing workflow", args: []string{"run", "mem://localhost/cli/none.yaml"}, expect: "failed to load workflow"},
	}

	for _, tc := range testCases {
		_, err := execute(tc.args...)
		if assert.Error(t, err, tc.description) {
			assert.Contains(t, err.Error(), tc.expect, tc.description)
		}
	}
}

func TestValidateCmd(t *testing.T) {
	upload(t, "mem://localhost/cli/otters.yaml", ottersYAML)
	upload(t, "mem://localhost/cli/broken.yaml", brokenYAML)

	output, err := execute("validate", "mem://localhost/cli/otters.yaml")
	require.NoError(t, err)
	assert.Contains(t, output, "workflow otters is valid")

	output, err = execute("validate", "mem://localhost/cli/broken.yaml")
	assert.Error(t, err)
	assert.Contains(t, output, `missing concept "summary"`)
}

func TestRunCmd_TraceOutput(t *testing.T) {
	upload(t, "mem://localhost/cli/otters.yaml", ottersYAML)

	for _, name := range []string{"first.json", "second.json"} {
		output := filepath.Join(t.TempDir(), name)
		_, err := execute("run", "mem://localhost/cli/otters.yaml", "--trace", "--trace-output", output)
		require.NoError(t, err, name)

		data, err := os.ReadFile(output)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "run otters", name)
	}
}
