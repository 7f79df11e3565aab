package execution

// State represents the lifecycle state of a run
type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// IsTerminal returns true once a run finished, successfully or not
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}
