package execution

import (
	"sync"
	"time"

	"github.com/viant/conceptflow/internal/clock"
	"github.com/viant/conceptflow/model/concept"
)

// Run represents a single execution of a composition tree
type Run struct {
	ID         string             `json:"id" yaml:"id"`
	Workflow   string             `json:"workflow,omitempty" yaml:"workflow,omitempty"`
	State      State              `json:"state" yaml:"state"`
	Level      int                `json:"level" yaml:"level"`
	Leaves     int                `json:"leaves" yaml:"leaves"`
	Concepts   []*concept.Concept `json:"concepts,omitempty" yaml:"concepts,omitempty"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" yaml:"updatedAt"`
	FinishedAt *time.Time         `json:"finishedAt,omitempty" yaml:"finishedAt,omitempty"`
	mu         sync.RWMutex
}

// GetState returns the run state
func (r *Run) GetState() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.State
}

// Start marks the run as running
func (r *Run) Start(leaves int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.State = StateRunning
	r.Leaves = leaves
	r.UpdatedAt = clock.Now()
}

// Finish records the final level, the level-ordered registry dump and the
// failure, if any.
func (r *Run) Finish(level int, concepts []*concept.Concept, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := clock.Now()
	r.Level = level
	r.Concepts = concepts
	r.UpdatedAt = now
	r.FinishedAt = &now
	r.State = StateCompleted
	if err != nil {
		r.State = StateFailed
		r.Error = err.Error()
	}
}

// Values returns resolved concept values by name
func (r *Run) Values() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make(map[string]string, len(r.Concepts))
	for _, c := range r.Concepts {
		if value, err := c.Value(); err == nil {
			ret[c.Name] = value
		}
	}
	return ret
}

// TimeTaken returns run duration; zero while the run is not finished
func (r *Run) TimeTaken() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.CreatedAt)
}

// Clone returns a copy sharing concept pointers
func (r *Run) Clone() *Run {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &Run{
		ID:        r.ID,
		Workflow:  r.Workflow,
		State:     r.State,
		Level:     r.Level,
		Leaves:    r.Leaves,
		Concepts:  append([]*concept.Concept(nil), r.Concepts...),
		Error:     r.Error,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.FinishedAt != nil {
		finished := *r.FinishedAt
		clone.FinishedAt = &finished
	}
	return clone
}

// NewRun creates a pending run
func NewRun(id, workflow string) *Run {
	now := clock.Now()
	return &Run{
		ID:        id,
		Workflow:  workflow,
		State:     StatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
