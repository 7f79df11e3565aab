package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/viant/conceptflow/internal/clock"
	"github.com/viant/conceptflow/model/concept"
	"github.com/viant/conceptflow/model/types"
)

// Registry holds the concepts of a single workflow run. It is safe for
// concurrent use.
type Registry struct {
	concepts    map[string]*concept.Concept
	order       []string
	listeners   []Listener
	diffContext int
	tracked     bool
	journal     []*concept.Concept
	mu          sync.RWMutex
}

// New creates a registry from seed concepts; seeds must be non nil, named and
// distinct.
func New(seeds []*concept.Concept, options ...Option) (*Registry, error) {
	ret := &Registry{concepts: make(map[string]*concept.Concept, len(seeds)), diffContext: 3}
	for _, option := range options {
		option(ret)
	}
	for i, seed := range seeds {
		switch {
		case seed == nil:
			return nil, types.NewInvalidSeedError(i, "nil concept")
		case seed.Name == "":
			return nil, types.NewInvalidSeedError(i, "empty name")
		}
		if _, ok := ret.concepts[seed.Name]; ok {
			return nil, types.NewDuplicateConceptError(seed.Name)
		}
		ret.concepts[seed.Name] = seed
		ret.order = append(ret.order, seed.Name)
	}
	return ret, nil
}

// RegisterListeners attaches overwrite listeners
func (r *Registry) RegisterListeners(listeners ...Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listeners...)
}

// Lookup returns a concept by name
func (r *Registry) Lookup(name string) (*concept.Concept, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.concepts[name]
	return c, ok
}

// Has returns true if name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns concept names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns number of concepts
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Concepts returns a copy of the name to concept mapping
func (r *Registry) Concepts() map[string]*concept.Concept {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make(map[string]*concept.Concept, len(r.concepts))
	for k, v := range r.concepts {
		ret[k] = v
	}
	return ret
}

// Values returns content of every resolved concept
func (r *Registry) Values() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make(map[string]string, len(r.concepts))
	for k, v := range r.concepts {
		if value, err := v.Value(); err == nil {
			ret[k] = value
		}
	}
	return ret
}

// Update stores c under its name. Storing the already registered object is a
// no-op; storing a distinct object under a taken name overwrites it and
// notifies listeners with an Overwrite event.
func (r *Registry) Update(c *concept.Concept) {
	r.Publish(c)
}

// Publish stores all concepts within a single critical section, in order.
// Listeners are invoked after the lock is released.
func (r *Registry) Publish(concepts ...*concept.Concept) {
	var events []*Overwrite
	r.mu.Lock()
	listeners := r.listeners
	for _, c := range concepts {
		if c == nil {
			continue
		}
		if event := r.store(c, len(listeners) > 0); event != nil {
			events = append(events, event)
		}
	}
	r.mu.Unlock()
	for _, event := range events {
		for _, listener := range listeners {
			listener(event)
		}
	}
}

func (r *Registry) store(c *concept.Concept, observed bool) *Overwrite {
	previous, ok := r.concepts[c.Name]
	if ok && previous == c {
		return nil
	}
	r.concepts[c.Name] = c
	if r.tracked {
		r.journal = append(r.journal, c)
	}
	if !ok {
		r.order = append(r.order, c.Name)
		return nil
	}
	if !observed {
		return nil
	}
	return &Overwrite{
		Name:     c.Name,
		Previous: previous,
		Current:  c,
		Diff:     contentDiff(c.Name, previous, c, r.diffContext),
		At:       clock.Now(),
	}
}

// Snapshot returns a registry with the current entries and no listeners.
// Concepts are shared with the source; the snapshot is meant for reads.
func (r *Registry) Snapshot() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := &Registry{
		concepts:    make(map[string]*concept.Concept, len(r.concepts)),
		order:       append([]string(nil), r.order...),
		diffContext: r.diffContext,
	}
	for k, v := range r.concepts {
		ret.concepts[k] = v
	}
	return ret
}

// Fork returns a snapshot that records every write; see Published.
func (r *Registry) Fork() *Registry {
	ret := r.Snapshot()
	ret.tracked = true
	return ret
}

// Published returns concepts written to a forked registry, in write order
func (r *Registry) Published() []*concept.Concept {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*concept.Concept(nil), r.journal...)
}

// Sorted returns concepts ordered by level, then registration order
func (r *Registry) Sorted() []*concept.Concept {
	r.mu.RLock()
	ret := make([]*concept.Concept, 0, len(r.order))
	for _, name := range r.order {
		ret = append(ret, r.concepts[name])
	}
	r.mu.RUnlock()
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Level < ret[j].Level
	})
	return ret
}

func (r *Registry) String() string {
	builder := strings.Builder{}
	for _, c := range r.Sorted() {
		builder.WriteString(c.String())
		builder.WriteString("\n")
	}
	return builder.String()
}
