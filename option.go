package conceptflow

import (
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/conceptflow/extension"
	"github.com/viant/conceptflow/model/execution"
	"github.com/viant/conceptflow/runtime/orchestrator"
	"github.com/viant/conceptflow/runtime/registry"
	"github.com/viant/conceptflow/service/dao"
	"github.com/viant/conceptflow/service/event"
	"github.com/viant/conceptflow/service/llm"
	"github.com/viant/conceptflow/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the Service
type Option func(s *Service)

// WithConfig sets the engine configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithModel registers a named language model
func WithModel(name string, model llm.Generator) Option {
	return func(s *Service) {
		s.pendingModels = append(s.pendingModels, namedModel{name: name, model: model})
	}
}

// WithFunction registers a named function
func WithFunction(name string, fn extension.Function) Option {
	return func(s *Service) {
		s.pendingFunctions = append(s.pendingFunctions, namedFunction{name: name, fn: fn})
	}
}

// WithDefaultModel sets the model used by steps that name none
func WithDefaultModel(name string) Option {
	return func(s *Service) {
		s.defaultModel = name
	}
}

// WithEventHandlers subscribes handlers to run, node and overwrite events
func WithEventHandlers(handlers ...event.Handler) Option {
	return func(s *Service) {
		s.eventHandlers = append(s.eventHandlers, handlers...)
	}
}

// WithOverwriteListeners adds listeners attached to every run registry
func WithOverwriteListeners(listeners ...registry.Listener) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, listeners...)
	}
}

// WithCallback sets the callback invoked for every published concept
func WithCallback(callback orchestrator.Callback) Option {
	return func(s *Service) {
		s.callback = callback
	}
}

// WithAmbientRegistry activates each run registry in the default slot for
// the duration of the run, so leaves may resolve it without a context handle.
func WithAmbientRegistry() Option {
	return func(s *Service) {
		s.slot = registry.Default
	}
}

// WithFS sets the storage service used for workflow and prompt locations
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithRootNodeName sets the YAML key holding the root step
func WithRootNodeName(name string) Option {
	return func(s *Service) {
		s.rootNodeName = name
	}
}

// WithRunDAO sets the run record store
func WithRunDAO(runDAO dao.Service[string, execution.Run]) Option {
	return func(s *Service) {
		s.runtime.runDAO = runDAO
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter. The first
// successful initialisation wins until Service.Shutdown.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
