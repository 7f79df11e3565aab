package llm

import (
	"context"
	"fmt"
	"sync"
)

// Exchange is a remembered prompt/response pair
type Exchange struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// Echo is a deterministic model that answers with its name and the prompt
type Echo struct {
	name   string
	memory []Exchange
	mu     sync.Mutex
}

// Name returns model name
func (e *Echo) Name() string {
	return e.name
}

// Generate returns "Response of <name>: to (<prompt>)"
func (e *Echo) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	response := fmt.Sprintf("Response of %s: to (%s)", e.name, prompt)
	e.mu.Lock()
	e.memory = append(e.memory, Exchange{Prompt: prompt, Response: response})
	e.mu.Unlock()
	return response, nil
}

// Memory returns exchanges in call order
func (e *Echo) Memory() []Exchange {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Exchange(nil), e.memory...)
}

// NewEcho creates an echo model
func NewEcho(name string) *Echo {
	return &Echo{name: name}
}
