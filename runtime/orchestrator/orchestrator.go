package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/viant/conceptflow/internal/clock"
	"github.com/viant/conceptflow/model/concept"
	"github.com/viant/conceptflow/model/graph"
	"github.com/viant/conceptflow/progress"
	"github.com/viant/conceptflow/runtime/registry"
	"github.com/viant/conceptflow/service/event"
	"github.com/viant/conceptflow/tracing"
)

// NodeResult is the payload of node events
type NodeResult struct {
	Outputs []string `json:"outputs,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type runner struct {
	concurrency int
	validate    bool
	startLevel  int
	callback    Callback
	events      *event.Publisher[*NodeResult]
	runID       string
	slot        *registry.Slot
	root        *registry.Registry
}

// Run executes root against reg and returns the final level. The first
// failure aborts the run and is returned unchanged; reg then holds whatever
// was published before the failure.
func Run(ctx context.Context, root graph.Node, reg *registry.Registry, options ...Option) (int, error) {
	if root == nil {
		return 0, fmt.Errorf("root node was nil")
	}
	if reg == nil {
		return 0, fmt.Errorf("registry was nil")
	}
	r := &runner{root: reg}
	for _, option := range options {
		option(r)
	}
	if r.validate {
		validate := Validate
		if r.concurrency > 1 {
			validate = ValidateIsolated
		}
		if issues := validate(root, resolvedNames(reg)...); len(issues) > 0 {
			return r.startLevel, issues[0]
		}
	}
	progress.UpdateCtx(ctx, progress.Delta{Total: CountLeaves(root)})
	cursor := NewCursor(r.startLevel)
	exec := func() error {
		return r.run(ctx, root, reg, cursor)
	}
	var err error
	if r.slot != nil {
		err = r.slot.Use(reg, exec)
	} else {
		err = exec()
	}
	return cursor.Value(), err
}

func (r *runner) run(ctx context.Context, node graph.Node, reg *registry.Registry, cursor *Cursor) error {
	switch node.Kind() {
	case graph.KindChain:
		composite, err := asComposite(node)
		if err != nil {
			return err
		}
		return r.chain(ctx, composite, reg, cursor)
	case graph.KindThreads:
		composite, err := asComposite(node)
		if err != nil {
			return err
		}
		return r.threads(ctx, composite, reg, cursor)
	case graph.KindLeaf:
		leaf, err := asLeaf(node)
		if err != nil {
			return err
		}
		outputs, err := r.leaf(ctx, leaf, reg, cursor.Value())
		if err != nil {
			return err
		}
		r.publish(ctx, reg, outputs)
		cursor.Advance()
		return nil
	}
	return fmt.Errorf("node %v: unsupported kind %v", node.Name(), node.Kind())
}

func (r *runner) chain(ctx context.Context, node graph.Composite, reg *registry.Registry, cursor *Cursor) (err error) {
	ctx, span := tracing.StartSpan(ctx, "chain "+node.Name(), "")
	span.WithInt("node.level", cursor.Value())
	defer func() { tracing.EndSpan(span, err) }()

	for _, child := range node.Nodes() {
		if child.Kind() != graph.KindLeaf {
			if err = r.run(ctx, child, reg, cursor); err != nil {
				return err
			}
			continue
		}
		leaf, err := asLeaf(child)
		if err != nil {
			return err
		}
		outputs, err := r.leaf(ctx, leaf, reg, cursor.Value())
		if err != nil {
			return err
		}
		r.publish(ctx, reg, outputs)
		cursor.Advance()
	}
	return nil
}

func (r *runner) threads(ctx context.Context, node graph.Composite, reg *registry.Registry, cursor *Cursor) (err error) {
	cursor.Advance()
	ctx, span := tracing.StartSpan(ctx, "threads "+node.Name(), "")
	span.WithInt("node.level", cursor.Value())
	defer func() { tracing.EndSpan(span, err) }()

	var outputs []*concept.Concept
	if r.concurrency < 2 {
		outputs, err = r.sequentialBatch(ctx, node.Nodes(), reg, cursor)
	} else {
		outputs, err = r.isolatedBatch(ctx, node.Nodes(), reg, cursor)
	}
	if err != nil {
		return err
	}
	r.publish(ctx, reg, outputs)
	return nil
}

// sequentialBatch runs children one at a time on the shared cursor. Leaves
// read reg and have their outputs buffered; nested composites write through,
// so later siblings see their outputs and continue from the level they reached.
func (r *runner) sequentialBatch(ctx context.Context, children []graph.Node, reg *registry.Registry, cursor *Cursor) ([]*concept.Concept, error) {
	var outputs []*concept.Concept
	for _, child := range children {
		if child.Kind() != graph.KindLeaf {
			if err := r.run(ctx, child, reg, cursor); err != nil {
				return nil, err
			}
			continue
		}
		leaf, err := asLeaf(child)
		if err != nil {
			return nil, err
		}
		items, err := r.leaf(ctx, leaf, reg, cursor.Value())
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, items...)
	}
	return outputs, nil
}

// isolatedBatch fans children out against a snapshot taken at batch start.
// Nested composites run on a private fork and cursor starting at the batch
// level; their writes are published when they complete and the parent cursor
// is raised to the highest level reached.
func (r *runner) isolatedBatch(ctx context.Context, children []graph.Node, reg *registry.Registry, cursor *Cursor) ([]*concept.Concept, error) {
	level := cursor.Value()
	snapshot := reg.Snapshot()
	buffered := make([][]*concept.Concept, len(children))
	reached := make([]int, len(children))

	err := r.fanOut(ctx, len(children), func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		child := children[i]
		if child.Kind() == graph.KindLeaf {
			leaf, err := asLeaf(child)
			if err != nil {
				return err
			}
			buffered[i], err = r.leaf(ctx, leaf, snapshot, level)
			return err
		}
		fork := snapshot.Fork()
		branch := cursor.Fork()
		if err := r.run(ctx, child, fork, branch); err != nil {
			return err
		}
		r.publish(ctx, reg, fork.Published())
		reached[i] = branch.Value()
		return nil
	})
	if err != nil {
		return nil, err
	}
	var outputs []*concept.Concept
	for _, items := range buffered {
		outputs = append(outputs, items...)
	}
	for _, value := range reached {
		cursor.Raise(value)
	}
	return outputs, nil
}

func (r *runner) fanOut(ctx context.Context, n int, task func(ctx context.Context, i int) error) error {
	if n < 2 {
		for i := 0; i < n; i++ {
			if err := task(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}
	p := pool.New().WithMaxGoroutines(r.concurrency).WithContext(ctx).WithCancelOnError().WithFirstError()
	for i := 0; i < n; i++ {
		index := i
		p.Go(func(ctx context.Context) error {
			return task(ctx, index)
		})
	}
	return p.Wait()
}

func (r *runner) leaf(ctx context.Context, leaf graph.Leaf, view *registry.Registry, level int) ([]*concept.Concept, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := tracing.StartSpan(ctx, "leaf "+leaf.Name(), "")
	span.WithInt("node.level", level)
	started := clock.Now()
	r.emit(ctx, event.TypeNodeStarted, leaf, level, started, &NodeResult{})
	progress.UpdateCtx(ctx, progress.Delta{Running: 1})

	outputs, err := leaf.Run(registry.WithRegistry(ctx, view))
	if err == nil {
		for _, output := range outputs {
			output.Level = level
		}
		outputs, err = withItems(outputs)
	}
	if err != nil {
		progress.UpdateCtx(ctx, progress.Delta{Running: -1, Failed: 1})
		r.emit(ctx, event.TypeNodeFailed, leaf, level, started, &NodeResult{Error: err.Error()})
		tracing.EndSpan(span, err)
		return nil, err
	}
	names := make([]string, 0, len(outputs))
	for _, output := range outputs {
		names = append(names, output.Name)
	}
	progress.UpdateCtx(ctx, progress.Delta{Running: -1, Completed: 1})
	r.emit(ctx, event.TypeNodeCompleted, leaf, level, started, &NodeResult{Outputs: names})
	tracing.EndSpan(span, nil)
	return outputs, nil
}

// withItems appends the item concepts of every list output right after it
func withItems(outputs []*concept.Concept) ([]*concept.Concept, error) {
	ret := make([]*concept.Concept, 0, len(outputs))
	for _, output := range outputs {
		ret = append(ret, output)
		if !output.IsList() {
			continue
		}
		items, err := output.Items()
		if err != nil {
			return nil, err
		}
		ret = append(ret, items...)
	}
	return ret, nil
}

// publish writes outputs into reg in one critical section; callbacks and
// counters only observe writes to the run registry.
func (r *runner) publish(ctx context.Context, reg *registry.Registry, outputs []*concept.Concept) {
	if len(outputs) == 0 {
		return
	}
	reg.Publish(outputs...)
	if reg != r.root {
		return
	}
	progress.UpdateCtx(ctx, progress.Delta{Published: len(outputs)})
	if r.callback != nil {
		for _, output := range outputs {
			r.callback(ctx, output)
		}
	}
}

func (r *runner) emit(ctx context.Context, eventType string, node graph.Node, level int, started time.Time, result *NodeResult) {
	if r.events == nil {
		return
	}
	r.events.Publish(ctx, event.NewEvent(&event.Context{
		RunID:       r.runID,
		Node:        node.Name(),
		Kind:        node.Kind().String(),
		EventType:   eventType,
		Level:       level,
		TimeTakenMs: int(clock.Since(started).Milliseconds()),
	}, result))
}

// CountLeaves returns number of leaves in the tree
func CountLeaves(node graph.Node) int {
	if node == nil {
		return 0
	}
	if node.Kind() == graph.KindLeaf {
		return 1
	}
	composite, ok := node.(graph.Composite)
	if !ok {
		return 0
	}
	count := 0
	for _, child := range composite.Nodes() {
		count += CountLeaves(child)
	}
	return count
}

func asLeaf(node graph.Node) (graph.Leaf, error) {
	leaf, ok := node.(graph.Leaf)
	if !ok {
		return nil, fmt.Errorf("node %v: expected leaf, but had %T", node.Name(), node)
	}
	return leaf, nil
}

func asComposite(node graph.Node) (graph.Composite, error) {
	composite, ok := node.(graph.Composite)
	if !ok {
		return nil, fmt.Errorf("node %v: expected composite, but had %T", node.Name(), node)
	}
	return composite, nil
}

func resolvedNames(reg *registry.Registry) []string {
	values := reg.Values()
	ret := make([]string, 0, len(values))
	for name := range values {
		ret = append(ret, name)
	}
	return ret
}
