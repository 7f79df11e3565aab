package registry

import (
	"context"
	"sync"

	"github.com/viant/conceptflow/model/types"
)

type registryKeyT struct{}

var registryKey registryKeyT

// WithRegistry returns a context carrying r
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, registryKey, r)
}

// FromContext returns the registry bound to ctx
func FromContext(ctx context.Context) (*Registry, bool) {
	if ctx == nil {
		return nil, false
	}
	r, ok := ctx.Value(registryKey).(*Registry)
	return r, ok && r != nil
}

// Current returns the registry bound to ctx, falling back to the Default slot.
func Current(ctx context.Context) (*Registry, error) {
	if r, ok := FromContext(ctx); ok {
		return r, nil
	}
	return Default.Current()
}

// Slot holds at most one active registry.
type Slot struct {
	current *Registry
	mu      sync.RWMutex
}

// Default is the process wide slot
var Default = &Slot{}

// Set activates r, replacing any active registry
func (s *Slot) Set(r *Registry) {
	s.mu.Lock()
	s.current = r
	s.mu.Unlock()
}

// Current returns the active registry
func (s *Slot) Current() (*Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, types.ErrNoActiveRegistry
	}
	return s.current, nil
}

// Clear deactivates the slot
func (s *Slot) Clear() {
	s.Set(nil)
}

// Use activates r for the duration of fn. The slot is cleared when fn
// returns, fails or panics.
func (s *Slot) Use(r *Registry, fn func() error) error {
	s.Set(r)
	defer s.Clear()
	return fn()
}
