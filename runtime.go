package conceptflow

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/viant/conceptflow/internal/idgen"
	"github.com/viant/conceptflow/model"
	"github.com/viant/conceptflow/model/concept"
	"github.com/viant/conceptflow/model/execution"
	"github.com/viant/conceptflow/model/graph"
	"github.com/viant/conceptflow/progress"
	"github.com/viant/conceptflow/runtime/orchestrator"
	"github.com/viant/conceptflow/service/builder"
	"github.com/viant/conceptflow/service/dao"
	"github.com/viant/conceptflow/service/dao/workflow"
	"github.com/viant/conceptflow/service/event"
	"github.com/viant/conceptflow/tracing"
)

// Runtime loads, builds and runs concept workflows
type Runtime struct {
	service     *Service
	workflowDAO *workflow.Service
	runDAO      dao.Service[string, execution.Run]
	builder     *builder.Service
	events      *event.Service
}

// LoadWorkflow loads a workflow definition from a URL
func (r *Runtime) LoadWorkflow(ctx context.Context, location string) (*model.Workflow, error) {
	return r.workflowDAO.Load(ctx, location)
}

// DecodeWorkflow decodes a YAML workflow definition
func (r *Runtime) DecodeWorkflow(data []byte) (*model.Workflow, error) {
	return r.workflowDAO.DecodeYAML(data)
}

// Build creates the runnable tree of a workflow
func (r *Runtime) Build(ctx context.Context, wf *model.Workflow) (graph.Node, error) {
	if err := r.service.Err(); err != nil {
		return nil, err
	}
	return r.builder.BuildWorkflow(ctx, wf)
}

// Validate builds the workflow and checks every step input against the init
// parameters and earlier outputs, without running anything.
func (r *Runtime) Validate(ctx context.Context, wf *model.Workflow) []error {
	if issues := wf.Validate(); len(issues) > 0 {
		return issues
	}
	root, err := r.Build(ctx, wf)
	if err != nil {
		return []error{err}
	}
	if r.service.config.Threads.Concurrency > 1 {
		return orchestrator.ValidateIsolated(root, wf.Init.Names()...)
	}
	return orchestrator.Validate(root, wf.Init.Names()...)
}

// RunWorkflow runs a workflow seeded with its init parameters overridden by
// values.
func (r *Runtime) RunWorkflow(ctx context.Context, wf *model.Workflow, values map[string]string) (*execution.Run, error) {
	root, err := r.Build(ctx, wf)
	if err != nil {
		return nil, err
	}
	params := wf.Init.Merge(values)
	seeds := make([]*concept.Concept, 0, len(params))
	for _, param := range params {
		seeds = append(seeds, concept.Seed(param.Name, param.Value))
	}
	return r.execute(ctx, wf.Name, root, seeds)
}

// Run runs a composition tree against a fresh registry seeded with seeds.
// The returned run record is present even when the run failed.
func (r *Runtime) Run(ctx context.Context, root graph.Node, seeds ...*concept.Concept) (*execution.Run, error) {
	if err := r.service.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("root node was nil")
	}
	return r.execute(ctx, root.Name(), root, seeds)
}

func (r *Runtime) execute(ctx context.Context, name string, root graph.Node, seeds []*concept.Concept) (_ *execution.Run, err error) {
	srv := r.service
	runID := idgen.New()
	reg, err := srv.newRegistry(ctx, runID, seeds)
	if err != nil {
		return nil, err
	}
	run := execution.NewRun(runID, name)
	run.Start(orchestrator.CountLeaves(root))
	if err = r.runDAO.Save(ctx, run); err != nil {
		return nil, err
	}

	ctx, _ = progress.WithNewTracker(ctx, runID, name, nil)
	ctx, span := tracing.StartSpan(ctx, "run "+name, "")
	span.WithAttributes(map[string]string{"run.id": runID})
	defer func() { tracing.EndSpan(span, err) }()

	publisher := event.NewPublisher[*execution.Run](r.events)
	publisher.Publish(ctx, event.NewEvent(&event.Context{RunID: runID, Node: name, EventType: event.TypeRunStarted}, run.Clone()))
	srv.logger.InfoContext(ctx, "run_started", slog.String("run_id", runID), slog.String("workflow", name), slog.Int("leaves", run.Leaves))

	options := []orchestrator.Option{
		orchestrator.WithConcurrency(srv.config.Threads.Concurrency),
		orchestrator.WithEvents(r.events, runID),
	}
	if srv.config.Validation.Enabled {
		options = append(options, orchestrator.WithValidation())
	}
	if srv.callback != nil {
		options = append(options, orchestrator.WithCallback(srv.callback))
	}
	if srv.slot != nil {
		options = append(options, orchestrator.WithSlot(srv.slot))
	}
	level, err := orchestrator.Run(ctx, root, reg, options...)
	run.Finish(level, reg.Sorted(), err)
	if saveErr := r.runDAO.Save(ctx, run); saveErr != nil && err == nil {
		err = saveErr
	}

	eventType := event.TypeRunCompleted
	if err != nil {
		eventType = event.TypeRunFailed
		srv.logger.ErrorContext(ctx, "run_failed", slog.String("run_id", runID), slog.String("workflow", name), slog.Any("error", err))
	} else {
		srv.logger.InfoContext(ctx, "run_completed", slog.String("run_id", runID), slog.String("workflow", name), slog.Int("level", level), slog.Duration("duration", run.TimeTaken()))
	}
	publisher.Publish(ctx, event.NewEvent(&event.Context{
		RunID:       runID,
		Node:        name,
		EventType:   eventType,
		Level:       level,
		TimeTakenMs: int(run.TimeTaken().Milliseconds()),
	}, run.Clone()))
	return run, err
}

// LookupRun returns a run record
func (r *Runtime) LookupRun(ctx context.Context, id string) (*execution.Run, error) {
	return r.runDAO.Load(ctx, id)
}

// Runs lists run records, optionally filtered by state, oldest first
func (r *Runtime) Runs(ctx context.Context, states ...execution.State) ([]*execution.Run, error) {
	var parameters []*dao.Parameter
	if len(states) > 0 {
		parameters = append(parameters, dao.NewStateParameter(states...))
	}
	runs, err := r.runDAO.List(ctx, parameters...)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
	return runs, nil
}
