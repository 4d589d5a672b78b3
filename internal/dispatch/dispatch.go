// Package dispatch routes admitted tasks to their domain executors.
// Dispatch is a total function: missing executors, unsupported task
// types, and executor failures (including panics) all normalize into an
// ExecutionResult. No executor failure ever crosses the dispatcher's
// boundary.
package dispatch

import (
	"fmt"

	"github.com/ppiankov/taskgate/internal/audit"
	"github.com/ppiankov/taskgate/internal/executor"
	"github.com/ppiankov/taskgate/internal/model"
)

// Dispatcher resolves and invokes executors for admitted tasks. It holds
// no per-task state and is safe for concurrent use.
type Dispatcher struct {
	registry *executor.Registry
	sink     audit.Sink
}

// New creates a dispatcher over the given registry and audit sink.
func New(registry *executor.Registry, sink audit.Sink) *Dispatcher {
	return &Dispatcher{registry: registry, sink: sink}
}

// Dispatch executes an admitted task. The returned error is only ever an
// audit append failure, which is fatal to this call by contract; executor
// outcomes, good or bad, are always expressed in the result.
func (d *Dispatcher) Dispatch(task *model.Task) (model.ExecutionResult, error) {
	if err := audit.Emit(d.sink, task.TaskID, audit.EventTaskDispatched,
		fmt.Sprintf("%s:%s", task.DomainID, task.TaskType)); err != nil {
		return model.ExecutionResult{}, err
	}

	exec, ok := d.registry.Lookup(task.DomainID)
	if !ok {
		if err := audit.Emit(d.sink, task.TaskID, audit.EventTaskNoExecutor, task.DomainID); err != nil {
			return model.ExecutionResult{}, err
		}
		if err := audit.Emit(d.sink, task.TaskID, audit.EventTaskNoopExecuted, "NO_EXECUTOR_REGISTERED"); err != nil {
			return model.ExecutionResult{}, err
		}
		return model.Noop(task, "NO_EXECUTOR_REGISTERED"), nil
	}

	if !exec.Supports(task.TaskType) {
		if err := audit.Emit(d.sink, task.TaskID, audit.EventTaskExecutionFailed,
			fmt.Sprintf("UNSUPPORTED_TASK_TYPE:%s", task.TaskType)); err != nil {
			return model.ExecutionResult{}, err
		}
		if err := audit.Emit(d.sink, task.TaskID, audit.EventTaskNoopExecuted, "EXECUTOR_UNSUPPORTED_TASK_TYPE"); err != nil {
			return model.ExecutionResult{}, err
		}
		return model.Noop(task, "EXECUTOR_UNSUPPORTED_TASK_TYPE"), nil
	}

	result, panicMsg := safeExecute(exec, task)
	if panicMsg != "" {
		if err := audit.Emit(d.sink, task.TaskID, audit.EventTaskExecutionFailed, panicMsg); err != nil {
			return model.ExecutionResult{}, err
		}
		if err := audit.Emit(d.sink, task.TaskID, audit.EventTaskNoopExecuted, "EXECUTOR_THROW"); err != nil {
			return model.ExecutionResult{}, err
		}
		return model.Noop(task, "EXECUTOR_THROW"), nil
	}

	if err := audit.Emit(d.sink, task.TaskID, audit.EventTaskExecuted, string(result.Status)); err != nil {
		return model.ExecutionResult{}, err
	}
	return result, nil
}

// safeExecute invokes the executor, converting a panic into a message.
func safeExecute(exec executor.Executor, task *model.Task) (result model.ExecutionResult, panicMsg string) {
	defer func() {
		if r := recover(); r != nil {
			panicMsg = fmt.Sprint(r)
			if panicMsg == "" {
				panicMsg = "UNKNOWN_EXECUTION_ERROR"
			}
		}
	}()
	return exec.Execute(task), ""
}
