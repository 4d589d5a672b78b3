// Package model defines the core value types of the task admission and
// dispatch pipeline: tasks, gate decisions, execution results, and the
// denial error carried out of the admission chain.
package model

// TaskType enumerates the kinds of work a task may request.
type TaskType string

const (
	TaskExecute  TaskType = "EXECUTE"
	TaskAnalyze  TaskType = "ANALYZE"
	TaskEscalate TaskType = "ESCALATE"
)

// validTaskTypes is the set of recognized task types.
var validTaskTypes = map[TaskType]bool{
	TaskExecute:  true,
	TaskAnalyze:  true,
	TaskEscalate: true,
}

// IsValidTaskType returns true if t is a recognized task type.
func IsValidTaskType(t TaskType) bool {
	return validTaskTypes[t]
}

// TaskTypes returns all recognized task types in declaration order.
func TaskTypes() []TaskType {
	return []TaskType{TaskExecute, TaskAnalyze, TaskEscalate}
}

// Task is a unit of work admitted into the pipeline. Fields retain the
// values supplied by the caller: admission validates against trimmed and
// normalized copies internally but never rewrites the task itself.
// Immutable once constructed by the admission gate.
type Task struct {
	TaskID           string         `json:"task_id"`
	DomainID         string         `json:"domain_id"`
	TaskType         TaskType       `json:"task_type"`
	RequestedBy      string         `json:"requested_by"`
	AuthorityToken   string         `json:"authority_token"`
	SentinelPolicyID string         `json:"sentinel_policy_id,omitempty"`
	Scope            []string       `json:"scope"`
	Inputs           map[string]any `json:"inputs,omitempty"`
	CreatedAt        string         `json:"created_at"`
}
