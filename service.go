package conceptflow

import (
	"context"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/conceptflow/extension"
	"github.com/viant/conceptflow/model/concept"
	"github.com/viant/conceptflow/runtime/orchestrator"
	"github.com/viant/conceptflow/runtime/registry"
	"github.com/viant/conceptflow/service/builder"
	"github.com/viant/conceptflow/service/dao/run/memory"
	"github.com/viant/conceptflow/service/dao/workflow"
	"github.com/viant/conceptflow/service/event"
	"github.com/viant/conceptflow/service/llm"
	"github.com/viant/conceptflow/tracing"
)

type namedModel struct {
	name  string
	model llm.Generator
}

type namedFunction struct {
	name string
	fn   extension.Function
}

// Service represents the conceptflow engine
type Service struct {
	runtime          *Runtime
	config           *Config
	logger           *slog.Logger
	fs               afs.Service
	rootNodeName     string
	defaultModel     string
	models           *extension.Models
	functions        *extension.Functions
	pendingModels    []namedModel
	pendingFunctions []namedFunction
	eventHandlers    []event.Handler
	listeners        []registry.Listener
	callback         orchestrator.Callback
	slot             *registry.Slot
	initErr          error
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	if s.initErr = s.config.Validate(); s.initErr != nil {
		return
	}
	if s.config.Tracing.Enabled {
		s.initErr = tracing.Init(s.config.Tracing.ServiceName, s.config.Tracing.Version, s.config.Tracing.Output)
	}
	for _, item := range s.pendingModels {
		s.RegisterModel(item.name, item.model)
	}
	for _, item := range s.pendingFunctions {
		s.functions.Register(item.name, item.fn)
	}
	s.runtime.builder = builder.New(s.models, s.functions,
		builder.WithPromptLoader(s.runtime.workflowDAO),
		builder.WithDefaultModel(s.defaultModel))
	s.runtime.events = event.New(s.eventHandlers...)
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.rootNodeName == "" {
		s.rootNodeName = "pipeline"
	}
	s.models = extension.NewModels()
	s.functions = extension.NewFunctions()
	s.runtime.service = s
	if s.runtime.workflowDAO == nil {
		s.runtime.workflowDAO = workflow.New(workflow.WithRootNodeName(s.rootNodeName), workflow.WithFS(s.fs))
	}
	if s.runtime.runDAO == nil {
		s.runtime.runDAO = memory.New()
	}
}

// Err returns the configuration or tracing setup error, if any
func (s *Service) Err() error {
	return s.initErr
}

// Shutdown flushes and stops the process tracing provider and closes its
// output file; it is a no-op when tracing was never installed.
func (s *Service) Shutdown(ctx context.Context) error {
	return tracing.Shutdown(ctx)
}

// Config returns the engine configuration
func (s *Service) Config() *Config {
	return s.config
}

// Runtime returns the run facade
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Models returns the model registry
func (s *Service) Models() *extension.Models {
	return s.models
}

// Functions returns the function registry
func (s *Service) Functions() *extension.Functions {
	return s.functions
}

// RegisterModel registers a named model; with caching enabled it is wrapped
// in a response cache.
func (s *Service) RegisterModel(name string, model llm.Generator) {
	if s.config.Cache.Enabled {
		model = llm.NewCached(model, s.config.Cache.TTL)
	}
	s.models.Register(name, model)
}

// RegisterFunction registers a named function
func (s *Service) RegisterFunction(name string, fn extension.Function) {
	s.functions.Register(name, fn)
}

// NewRegistry creates a registry seeded with seeds that reports overwrites
// to the logger, the event handlers and the configured listeners.
func (s *Service) NewRegistry(seeds ...*concept.Concept) (*registry.Registry, error) {
	return s.newRegistry(context.Background(), "", seeds)
}

func (s *Service) newRegistry(ctx context.Context, runID string, seeds []*concept.Concept) (*registry.Registry, error) {
	publisher := event.NewPublisher[*registry.Overwrite](s.runtime.events)
	listeners := append([]registry.Listener{func(overwrite *registry.Overwrite) {
		attrs := []any{
			slog.String("run_id", runID),
			slog.String("concept", overwrite.Name),
			slog.Int("previous_level", overwrite.Previous.Level),
			slog.Int("current_level", overwrite.Current.Level),
		}
		if s.config.Overwrite.Diff && overwrite.Diff != "" {
			attrs = append(attrs, slog.String("diff", overwrite.Diff))
		}
		s.logger.WarnContext(ctx, "concept_overwrite", attrs...)
		publisher.Publish(ctx, event.NewEvent(&event.Context{
			RunID:     runID,
			Node:      overwrite.Name,
			EventType: event.TypeOverwrite,
			Level:     overwrite.Current.Level,
		}, overwrite))
	}}, s.listeners...)
	return registry.New(seeds,
		registry.WithListeners(listeners...),
		registry.WithDiffContext(s.config.Overwrite.Context))
}

// New creates a conceptflow service
func New(options ...Option) *Service {
	ret := &Service{runtime: &Runtime{}}
	ret.init(options)
	return ret
}
