package event

import (
	"time"

	"github.com/viant/conceptflow/internal/clock"
	"github.com/viant/conceptflow/internal/idgen"
)

// Event types
const (
	TypeRunStarted    = "run.started"
	TypeRunCompleted  = "run.completed"
	TypeRunFailed     = "run.failed"
	TypeNodeStarted   = "node.started"
	TypeNodeCompleted = "node.completed"
	TypeNodeFailed    = "node.failed"
	TypeOverwrite     = "concept.overwrite"
)

// Context identifies the run and node an event belongs to
type Context struct {
	RunID       string `json:"runId"`
	Node        string `json:"node,omitempty"`
	Kind        string `json:"kind,omitempty"`
	EventType   string `json:"eventType"`
	Level       int    `json:"level"`
	TimeTakenMs int    `json:"timeTakenMs,omitempty"`
}

type Event[T any] struct {
	ID        string                 `json:"id"`
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		ID:        idgen.New(),
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}

// Type returns the event type
func (e *Event[T]) Type() string {
	if e.Context == nil {
		return ""
	}
	return e.Context.EventType
}
