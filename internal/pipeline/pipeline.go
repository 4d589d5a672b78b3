// Package pipeline wires admission and dispatch into a single intake path.
package pipeline

import (
	"github.com/ppiankov/taskgate/internal/admission"
	"github.com/ppiankov/taskgate/internal/audit"
	"github.com/ppiankov/taskgate/internal/dispatch"
	"github.com/ppiankov/taskgate/internal/executor"
	"github.com/ppiankov/taskgate/internal/manifest"
	"github.com/ppiankov/taskgate/internal/model"
)

// Pipeline runs a task through admission and, if admitted, dispatch.
type Pipeline struct {
	gate       *admission.Gate
	dispatcher *dispatch.Dispatcher
}

// New builds a pipeline sharing one audit sink across both stages.
func New(store manifest.Store, registry *executor.Registry, sink audit.Sink) *Pipeline {
	return &Pipeline{
		gate:       admission.NewGate(store, sink),
		dispatcher: dispatch.New(registry, sink),
	}
}

// Gate returns the admission stage for dry-run checks.
func (p *Pipeline) Gate() *admission.Gate { return p.gate }

// Intake admits the raw payload and dispatches the admitted task.
// A denial is returned as *model.Denial; any other error is an audit
// failure and the caller must treat the submission as unrecorded.
func (p *Pipeline) Intake(raw any) (*model.Task, model.ExecutionResult, error) {
	task, err := p.gate.Admit(raw)
	if err != nil {
		return nil, model.ExecutionResult{}, err
	}
	result, err := p.dispatcher.Dispatch(task)
	if err != nil {
		return task, model.ExecutionResult{}, err
	}
	return task, result, nil
}
