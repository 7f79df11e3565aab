package orchestrator

import (
	"strings"

	"github.com/viant/conceptflow/model/graph"
)

type composite struct {
	name  string
	nodes []graph.Node
}

func (c *composite) Nodes() []graph.Node {
	return append([]graph.Node(nil), c.nodes...)
}

func (c *composite) label(kind graph.Kind) string {
	if c.name != "" {
		return c.name
	}
	names := make([]string, 0, len(c.nodes))
	for _, node := range c.nodes {
		names = append(names, node.Name())
	}
	return kind.String() + "(" + strings.Join(names, ",") + ")"
}

// Chain runs children sequentially
type Chain struct {
	composite
}

func (c *Chain) Kind() graph.Kind { return graph.KindChain }

func (c *Chain) Name() string { return c.label(graph.KindChain) }

// WithName sets the chain name
func (c *Chain) WithName(name string) *Chain {
	c.name = name
	return c
}

// Add appends children
func (c *Chain) Add(nodes ...graph.Node) *Chain {
	c.nodes = append(c.nodes, nodes...)
	return c
}

// NewChain creates a sequential composite
func NewChain(nodes ...graph.Node) *Chain {
	return &Chain{composite{nodes: append([]graph.Node(nil), nodes...)}}
}

// Threads runs children as a single batch
type Threads struct {
	composite
}

func (t *Threads) Kind() graph.Kind { return graph.KindThreads }

func (t *Threads) Name() string { return t.label(graph.KindThreads) }

// WithName sets the threads name
func (t *Threads) WithName(name string) *Threads {
	t.name = name
	return t
}

// Add appends children
func (t *Threads) Add(nodes ...graph.Node) *Threads {
	t.nodes = append(t.nodes, nodes...)
	return t
}

// NewThreads creates a batch composite
func NewThreads(nodes ...graph.Node) *Threads {
	return &Threads{composite{nodes: append([]graph.Node(nil), nodes...)}}
}
