package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/conceptflow/internal/yml"
	"github.com/viant/conceptflow/model"
	"github.com/viant/conceptflow/model/graph"
	"github.com/viant/conceptflow/model/state"
	"gopkg.in/yaml.v3"
)

// Service loads workflow definitions and prompt templates
type Service struct {
	fs           afs.Service
	rootNodeName string
}

// DecodeYAML decodes a workflow from YAML
func (s *Service) DecodeYAML(encoded []byte) (*model.Workflow, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(encoded, &node); err != nil {
		return nil, err
	}
	return s.ParseWorkflow("", &node)
}

// Load loads a workflow from YAML at the specified URL; relative promptURL
// locations resolve against the workflow location.
func (s *Service) Load(ctx context.Context, URL string) (*model.Workflow, error) {
	if filepath.Ext(URL) == "" {
		URL += ".yaml"
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow from %s: %w", URL, err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to decode workflow from %s: %w", URL, err)
	}
	return s.ParseWorkflow(URL, &node)
}

// LoadPrompt loads a prompt template; relative locations resolve against
// the workflow source.
func (s *Service) LoadPrompt(ctx context.Context, workflow *model.Workflow, location string) (string, error) {
	URL := location
	if url.IsRelative(location) && workflow != nil && workflow.Source != nil && workflow.Source.URL != "" {
		parent, _ := url.Split(workflow.Source.URL, file.Scheme)
		URL = url.Join(parent, location)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return "", fmt.Errorf("failed to load prompt from %s: %w", URL, err)
	}
	return string(data), nil
}

// ParseWorkflow converts a YAML document into a validated workflow
func (s *Service) ParseWorkflow(URL string, node *yaml.Node) (*model.Workflow, error) {
	workflow := &model.Workflow{
		Name: getWorkflowNameFromURL(URL),
	}
	if URL != "" {
		workflow.Source = &model.Source{URL: URL}
	}
	if err := s.parseWorkflow((*yml.Node)(node).Root(), workflow); err != nil {
		return nil, fmt.Errorf("failed to parse workflow %s: %w", URL, err)
	}
	if workflow.Name == "" {
		workflow.Name = generateAnonymousName()
	}
	if workflow.Pipeline != nil {
		assignStepIDs(workflow.Pipeline, workflow.Name)
	}
	if issues := workflow.Validate(); len(issues) > 0 {
		return nil, issues[0]
	}
	return workflow, nil
}

// assignStepIDs sets path IDs: the root takes the workflow name, children
// append their name or position.
func assignStepIDs(step *graph.Step, ID string) {
	if step.ID == "" {
		step.ID = ID
	}
	for i, child := range step.Steps() {
		segment := child.Name
		if segment == "" {
			segment = strconv.Itoa(i)
		}
		if child.ID == "" {
			child.ID = step.ID + "/" + segment
		}
		assignStepIDs(child, child.ID)
	}
}

func (s *Service) parseWorkflow(node *yml.Node, workflow *model.Workflow) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%v: workflow should be a mapping", node.Position())
	}
	rootNodeName := strings.ToLower(s.rootNodeName)
	return node.Pairs(func(key string, valueNode *yml.Node) error {
		var err error
		switch strings.ToLower(key) {
		case "name":
			workflow.Name, err = valueNode.Text()
		case "description":
			workflow.Description, err = valueNode.Text()
		case "version":
			workflow.Version, err = valueNode.Text()
		case "init":
			workflow.Init, err = parseParameters(valueNode)
		case rootNodeName:
			workflow.Pipeline, err = s.parseStep(valueNode)
		default:
			return fmt.Errorf("%v: unsupported workflow key %q", valueNode.Position(), key)
		}
		if err != nil {
			return fmt.Errorf("%v: %w", key, err)
		}
		return nil
	})
}

// parseStep converts a YAML mapping into a graph.Step
func (s *Service) parseStep(node *yml.Node) (*graph.Step, error) {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("step node should be a mapping")
	}
	step := &graph.Step{}
	err := node.Pairs(func(key string, valueNode *yml.Node) error {
		var err error
		switch strings.ToLower(key) {
		case "id":
			step.ID, err = valueNode.Text()
		case "name":
			step.Name, err = valueNode.Text()
		case "chain":
			step.Chain, err = s.parseSteps(valueNode)
		case "threads":
			step.Threads, err = s.parseSteps(valueNode)
		case "prompt":
			step.Prompt, err = valueNode.Text()
		case "prompturl":
			step.PromptURL, err = valueNode.Text()
		case "model":
			step.Model, err = valueNode.Text()
		case "output":
			step.Output, err = valueNode.Text()
		case "list":
			step.List, err = valueNode.Bool()
		case "function":
			step.Function, err = valueNode.Text()
		case "inputs":
			step.Inputs, err = valueNode.Strings()
		case "outputs":
			step.Outputs, err = valueNode.Strings()
		default:
			return fmt.Errorf("%v: unsupported step key %q", valueNode.Position(), key)
		}
		if err != nil {
			return fmt.Errorf("%v: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return step, nil
}

func (s *Service) parseSteps(node *yml.Node) ([]*graph.Step, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%v: steps should be a sequence", node.Position())
	}
	ret := make([]*graph.Step, 0, len(node.Content))
	err := node.Items(func(index int, item *yml.Node) error {
		step, err := s.parseStep(item)
		if err != nil {
			return fmt.Errorf("[%d]: %w", index, err)
		}
		ret = append(ret, step)
		return nil
	})
	return ret, err
}

// parseParameters converts an init mapping into seed parameters
func parseParameters(node *yml.Node) (state.Parameters, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%v: parameters node should be a mapping", node.Position())
	}
	params := state.Parameters{}
	err := node.Pairs(func(key string, valueNode *yml.Node) error {
		value, err := valueNode.Text()
		if err != nil {
			return fmt.Errorf("%v: %w", key, err)
		}
		params.Add(key, value)
		return nil
	})
	return params, err
}

// New creates a new workflow service instance
func New(opts ...Option) *Service {
	ret := &Service{
		fs:           afs.New(),
		rootNodeName: "pipeline",
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
