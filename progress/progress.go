package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/conceptflow/internal/clock"
)

// Delta is a signed counter change
type Delta struct {
	Total     int
	Running   int
	Completed int
	Failed    int
	Published int
}

// Counters is a point in time view of a run
type Counters struct {
	RunID     string    `json:"runId"`
	Workflow  string    `json:"workflow,omitempty"`
	StartedAt time.Time `json:"startedAt"`
	Total     int       `json:"total"`
	Running   int       `json:"running"`
	Completed int       `json:"completed"`
	Failed    int       `json:"failed"`
	Published int       `json:"published"`
}

// Pending returns leaves not started yet
func (c Counters) Pending() int {
	return c.Total - c.Running - c.Completed - c.Failed
}

// Progress tracks leaf counters; it is safe for concurrent use.
type Progress struct {
	counters Counters
	onChange func(Counters)
	mu       sync.Mutex
}

// Update applies d. The onChange callback receives a copy outside the lock.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.counters.Total += d.Total
	p.counters.Running += d.Running
	p.counters.Completed += d.Completed
	p.counters.Failed += d.Failed
	p.counters.Published += d.Published
	snapshot := p.counters
	cb := p.onChange
	p.mu.Unlock()
	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns current counters
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counters
}

// OnChange replaces the change callback; nil disables it.
func (p *Progress) OnChange(cb func(Counters)) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.onChange = cb
	p.mu.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker and embeds it in a derived context
func WithNewTracker(ctx context.Context, runID, workflow string, onChange func(Counters)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		counters: Counters{RunID: runID, Workflow: workflow, StartedAt: clock.Now()},
		onChange: onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext returns the tracker carried by ctx
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies d to the tracker carried by ctx, if any
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
