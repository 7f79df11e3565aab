package orchestrator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/conceptflow/model/graph"
	"github.com/viant/conceptflow/model/types"
)

// Validate walks the tree without running it and reports every leaf input
// that would not be resolvable, given the available concept names, for a
// sequential run. Chain children see outputs of earlier children. Threads
// leaves see outputs of earlier nested composites in the batch, never those
// of sibling leaves.
func Validate(root graph.Node, available ...string) []error {
	return validate(root, false, available)
}

// ValidateIsolated is Validate for a concurrent run, where every Threads
// child only sees what was available when the batch started.
func ValidateIsolated(root graph.Node, available ...string) []error {
	return validate(root, true, available)
}

func validate(root graph.Node, isolated bool, available []string) []error {
	var issues []error
	if root == nil {
		return append(issues, fmt.Errorf("root node was nil"))
	}
	visible := map[string]bool{}
	for _, name := range available {
		visible[name] = true
	}

	var walk func(node graph.Node, visible map[string]bool)
	walk = func(node graph.Node, visible map[string]bool) {
		switch node.Kind() {
		case graph.KindLeaf:
			dependent, ok := node.(graph.Dependent)
			if !ok {
				return
			}
			for _, input := range dependent.Inputs() {
				if !visible[input] && !visible[listOf(input)] {
					issues = append(issues, fmt.Errorf("%v: %w", node.Name(), types.NewMissingConceptError(input, keys(visible))))
				}
			}
			for _, output := range dependent.Outputs() {
				visible[output] = true
			}
			if producer, ok := node.(graph.ListProducer); ok {
				for _, output := range producer.ListOutputs() {
					visible[output+listSuffix] = true
				}
			}
		case graph.KindChain:
			composite, err := asComposite(node)
			if err != nil {
				issues = append(issues, err)
				return
			}
			for _, child := range composite.Nodes() {
				walk(child, visible)
			}
		case graph.KindThreads:
			composite, err := asComposite(node)
			if err != nil {
				issues = append(issues, err)
				return
			}
			var produced []map[string]bool
			for _, child := range composite.Nodes() {
				if !isolated && child.Kind() != graph.KindLeaf {
					walk(child, visible)
					continue
				}
				branch := copyOf(visible)
				walk(child, branch)
				produced = append(produced, branch)
			}
			for _, branch := range produced {
				for name := range branch {
					visible[name] = true
				}
			}
		default:
			issues = append(issues, fmt.Errorf("node %v: unsupported kind %v", node.Name(), node.Kind()))
		}
	}
	walk(root, visible)
	return issues
}

// listSuffix marks a visible list whose item count is only known at run time
const listSuffix = "_*"

// listOf returns the list marker an item name such as facts_2 would belong to
func listOf(name string) string {
	index := strings.LastIndexByte(name, '_')
	if index <= 0 || index == len(name)-1 {
		return ""
	}
	for _, r := range name[index+1:] {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return name[:index] + listSuffix
}

func copyOf(src map[string]bool) map[string]bool {
	ret := make(map[string]bool, len(src))
	for k, v := range src {
		ret[k] = v
	}
	return ret
}

func keys(m map[string]bool) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		if strings.HasSuffix(k, listSuffix) {
			continue
		}
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
