package model

// ExecutionStatus classifies the outcome of a dispatch.
type ExecutionStatus string

const (
	StatusOK    ExecutionStatus = "OK"
	StatusError ExecutionStatus = "ERROR"
	StatusNoop  ExecutionStatus = "NOOP"
)

// ExecutionResult is the total output of dispatching an admitted task.
// Dispatch never raises: missing executors, unsupported task types, and
// executor failures all normalize into one of these.
type ExecutionResult struct {
	Status   ExecutionStatus `json:"status"`
	TaskID   string          `json:"task_id"`
	DomainID string          `json:"domain_id"`
	TaskType TaskType        `json:"task_type"`
	Output   map[string]any  `json:"output,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Noop builds a NOOP result for the given task with a machine-readable reason.
func Noop(task *Task, reason string) ExecutionResult {
	return ExecutionResult{
		Status:   StatusNoop,
		TaskID:   task.TaskID,
		DomainID: task.DomainID,
		TaskType: task.TaskType,
		Output:   map[string]any{"reason": reason},
	}
}
