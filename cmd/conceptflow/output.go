package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/viant/conceptflow/model/execution"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type printer func(w io.Writer, run *execution.Run) error

// runView is the serialised form of a run
type runView struct {
	ID        string        `json:"id" yaml:"id"`
	Workflow  string        `json:"workflow" yaml:"workflow"`
	State     string        `json:"state" yaml:"state"`
	Level     int           `json:"level" yaml:"level"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
	TimeTaken string        `json:"timeTaken" yaml:"timeTaken"`
	Concepts  []conceptView `json:"concepts" yaml:"concepts"`
}

type conceptView struct {
	Name     string  `json:"name" yaml:"name"`
	Level    int     `json:"level" yaml:"level"`
	Inputted bool    `json:"inputted,omitempty" yaml:"inputted,omitempty"`
	Content  *string `json:"content" yaml:"content"`
}

func newRunView(run *execution.Run) *runView {
	ret := &runView{
		ID:        run.ID,
		Workflow:  run.Workflow,
		State:     string(run.State),
		Level:     run.Level,
		Error:     run.Error,
		TimeTaken: run.TimeTaken().Round(time.Millisecond).String(),
	}
	for _, c := range run.Concepts {
		ret.Concepts = append(ret.Concepts, conceptView{Name: c.Name, Level: c.Level, Inputted: c.Inputted, Content: c.Content})
	}
	return ret
}

func newPrinter(format string) (printer, error) {
	switch format {
	case formatText:
		return printText, nil
	case formatJSON:
		return func(w io.Writer, run *execution.Run) error {
			encoder := json.NewEncoder(w)
			encoder.SetIndent("", "  ")
			return encoder.Encode(newRunView(run))
		}, nil
	case formatYAML:
		return func(w io.Writer, run *execution.Run) error {
			encoder := yaml.NewEncoder(w)
			encoder.SetIndent(2)
			if err := encoder.Encode(newRunView(run)); err != nil {
				return err
			}
			return encoder.Close()
		}, nil
	}
	return nil, fmt.Errorf("unsupported format %q, expected %v, %v or %v", format, formatText, formatJSON, formatYAML)
}

func printText(w io.Writer, run *execution.Run) error {
	view := newRunView(run)
	if _, err := fmt.Fprintf(w, "run %v (%v) %v level=%d\n", view.ID, view.Workflow, view.State, view.Level); err != nil {
		return err
	}
	for _, c := range view.Concepts {
		content := "<pending>"
		if c.Content != nil {
			content = *c.Content
		}
		if _, err := fmt.Fprintf(w, "[%d] %v: %v\n", c.Level, c.Name, content); err != nil {
			return err
		}
	}
	if view.Error != "" {
		_, err := fmt.Fprintf(w, "error: %v\n", view.Error)
		return err
	}
	return nil
}
