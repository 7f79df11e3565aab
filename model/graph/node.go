package graph

import (
	"context"

	"github.com/viant/conceptflow/model/concept"
)

// Kind discriminates composition tree nodes
type Kind int

const (
	KindLeaf Kind = iota + 1
	KindChain
	KindThreads
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindChain:
		return "chain"
	case KindThreads:
		return "threads"
	}
	return "unknown"
}

type (
	// Node represents a composition tree node
	Node interface {
		Kind() Kind
		Name() string
	}

	// Leaf produces concepts without writing to the registry
	Leaf interface {
		Node
		Run(ctx context.Context) ([]*concept.Concept, error)
	}

	// Composite orchestrates its direct children
	Composite interface {
		Node
		Nodes() []Node
	}

	// Dependent declares the concept names a leaf reads and produces
	Dependent interface {
		Inputs() []string
		Outputs() []string
	}

	// ListProducer is a leaf whose listed outputs are list concepts; their
	// items are published as <name>_<index> next to them.
	ListProducer interface {
		ListOutputs() []string
	}
)
