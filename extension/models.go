package extension

import (
	"fmt"
	"sort"
	"sync"

	"github.com/viant/conceptflow/service/llm"
)

// Models provides named language models
type Models struct {
	models map[string]llm.Generator
	mux    sync.RWMutex
}

// Lookup returns a model by name
func (m *Models) Lookup(name string) (llm.Generator, error) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	model, ok := m.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model %q, available: %v", name, m.names())
	}
	return model, nil
}

// Register registers a model under name, replacing any previous one
func (m *Models) Register(name string, model llm.Generator) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.models[name] = model
}

// Names returns registered model names
func (m *Models) Names() []string {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return m.names()
}

func (m *Models) names() []string {
	ret := make([]string, 0, len(m.models))
	for name := range m.models {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// NewModels creates a model registry
func NewModels() *Models {
	return &Models{models: make(map[string]llm.Generator)}
}
