package orchestrator

import (
	"context"

	"github.com/viant/conceptflow/model/concept"
	"github.com/viant/conceptflow/runtime/registry"
	"github.com/viant/conceptflow/service/event"
)

// Callback is invoked for every concept published to the run registry. With
// concurrency above one it may be called from several goroutines.
type Callback func(ctx context.Context, c *concept.Concept)

// Option represents run option
type Option func(r *runner)

// WithConcurrency sets the maximum number of Threads children running at
// once; values below two run batches sequentially.
func WithConcurrency(n int) Option {
	return func(r *runner) {
		r.concurrency = n
	}
}

// WithValidation checks dependencies statically before any leaf runs
func WithValidation() Option {
	return func(r *runner) {
		r.validate = true
	}
}

// WithCallback sets the publication callback
func WithCallback(callback Callback) Option {
	return func(r *runner) {
		r.callback = callback
	}
}

// WithEvents publishes node events for runID
func WithEvents(service *event.Service, runID string) Option {
	return func(r *runner) {
		r.events = event.NewPublisher[*NodeResult](service)
		r.runID = runID
	}
}

// WithSlot activates the registry in slot for the duration of the run
func WithSlot(slot *registry.Slot) Option {
	return func(r *runner) {
		r.slot = slot
	}
}

// WithStartLevel sets the initial level
func WithStartLevel(level int) Option {
	return func(r *runner) {
		r.startLevel = level
	}
}
