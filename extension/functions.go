package extension

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Function computes output values from input values given in declared order
type Function func(ctx context.Context, args []string) ([]string, error)

// Functions provides named functions
type Functions struct {
	functions map[string]Function
	mux       sync.RWMutex
}

// Lookup returns a function by name
func (f *Functions) Lookup(name string) (Function, error) {
	f.mux.RLock()
	defer f.mux.RUnlock()
	fn, ok := f.functions[name]
	if !ok {
		names := make([]string, 0, len(f.functions))
		for candidate := range f.functions {
			names = append(names, candidate)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown function %q, available: %v", name, names)
	}
	return fn, nil
}

// Register registers a function under name, replacing any previous one
func (f *Functions) Register(name string, fn Function) {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.functions[name] = fn
}

// NewFunctions creates a function registry with the built-in string
// functions: upper, lower, lines and join.
func NewFunctions() *Functions {
	ret := &Functions{functions: make(map[string]Function)}
	ret.Register("upper", eachArg(strings.ToUpper))
	ret.Register("lower", eachArg(strings.ToLower))
	ret.Register("lines", eachArg(normalizeLines))
	ret.Register("join", func(ctx context.Context, args []string) ([]string, error) {
		return []string{strings.Join(args, "\n")}, nil
	})
	return ret
}

func eachArg(fn func(string) string) Function {
	return func(ctx context.Context, args []string) ([]string, error) {
		ret := make([]string, len(args))
		for i, arg := range args {
			ret[i] = fn(arg)
		}
		return ret, nil
	}
}

// normalizeLines trims every line and drops empty ones
func normalizeLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
