// Package admission runs raw task input through the fixed gate chain:
// schema, domain policy, sentinel authority, global scope. The chain is
// deny-by-default and short-circuits on the first failure; later gates
// never run. Every admission emits TASK_RECEIVED on entry and exactly one
// of TASK_VALIDATED or TASK_DENIED as its final event.
package admission

import (
	"fmt"
	"strings"

	"github.com/ppiankov/taskgate/internal/audit"
	"github.com/ppiankov/taskgate/internal/domain"
	"github.com/ppiankov/taskgate/internal/manifest"
	"github.com/ppiankov/taskgate/internal/model"
	"github.com/ppiankov/taskgate/internal/scope"
	"github.com/ppiankov/taskgate/internal/sentinel"
)

// UnknownTaskID is the audit sentinel used when raw input carries no
// usable task_id.
const UnknownTaskID = "UNKNOWN_TASK"

// Gate admits tasks. Construct one per process with the manifest store and
// audit sink it should use; it holds no per-task state and is safe for
// concurrent use.
type Gate struct {
	manifests manifest.Store
	sink      audit.Sink
}

// NewGate creates an admission gate.
func NewGate(manifests manifest.Store, sink audit.Sink) *Gate {
	return &Gate{manifests: manifests, sink: sink}
}

// Admit validates raw input and returns the admitted task, unchanged from
// what the caller supplied. A *model.Denial is returned when a gate
// denies; any other error is an audit append failure, which is fatal to
// this call by contract (fail-closed).
func (g *Gate) Admit(raw any) (*model.Task, error) {
	taskID := bestEffortTaskID(raw)

	if err := audit.Emit(g.sink, taskID, audit.EventTaskReceived, ""); err != nil {
		return nil, err
	}

	task, denial := g.runGates(raw)
	if denial != nil {
		if err := audit.Emit(g.sink, taskID, audit.EventTaskDenied, denial.Error()); err != nil {
			return nil, err
		}
		return nil, denial
	}

	if err := audit.Emit(g.sink, taskID, audit.EventTaskValidated, ""); err != nil {
		return nil, err
	}
	return task, nil
}

// runGates applies the gate chain in fixed order. Gate order is a
// contract: schema > domain > sentinel > scope. Note that domain policy
// runs before authority validation, so a caller with a malformed token can
// still learn whether a domain exists and which scopes it requires from
// the DOMAIN_DENY reason. Kept as specified; flagged as an
// information-disclosure concern rather than silently reordered.
func (g *Gate) runGates(raw any) (*model.Task, *model.Denial) {
	obj, ok := raw.(map[string]any)
	if !ok || obj == nil {
		return nil, model.NewDenial(model.CodeSchemaInvalid, "task must be an object")
	}

	// 1) Schema gate: every required field present and correctly typed.
	// Values are trimmed for the checks below; the returned task keeps
	// the caller's originals.
	if _, d := reqString(obj, "task_id"); d != nil {
		return nil, d
	}
	domainID, d := reqString(obj, "domain_id")
	if d != nil {
		return nil, d
	}
	taskTypeStr, d := reqString(obj, "task_type")
	if d != nil {
		return nil, d
	}
	taskType := model.TaskType(taskTypeStr)
	if !model.IsValidTaskType(taskType) {
		return nil, model.NewDenial(model.CodeSchemaInvalid, "invalid task_type")
	}
	if _, d := reqString(obj, "requested_by"); d != nil {
		return nil, d
	}
	authorityToken, d := reqString(obj, "authority_token")
	if d != nil {
		return nil, d
	}
	if _, d := reqString(obj, "created_at"); d != nil {
		return nil, d
	}
	cleanScope, d := reqStringSlice(obj, "scope")
	if d != nil {
		return nil, d
	}

	// 2) Domain policy gate. Store failures (unregistered, malformed,
	// id mismatch) surface as DOMAIN_DENY with the store's reason.
	man, err := g.manifests.Load(domainID)
	if err != nil {
		return nil, model.NewDenial(model.CodeDomainDeny, err.Error())
	}
	if dec := domain.Evaluate(man, taskType, cleanScope); !dec.Allowed {
		return nil, model.DenialFrom(model.CodeDomainDeny, dec)
	}

	// 3) Sentinel authority gate.
	pinned := optString(obj, "sentinel_policy_id")
	if dec := sentinel.Authorize(authorityToken, pinned); !dec.Allowed {
		return nil, model.NewDenial(model.CodeSentinelDeny, dec.Reason)
	}

	// 4) Global scope gate.
	if dec := scope.Enforce(taskType, cleanScope); !dec.Allowed {
		return nil, model.DenialFrom(model.CodeScopeDeny, dec)
	}

	return taskFromRaw(obj, taskType), nil
}

// bestEffortTaskID extracts a task id for the TASK_RECEIVED event even
// from malformed input.
func bestEffortTaskID(raw any) string {
	obj, ok := raw.(map[string]any)
	if !ok {
		return UnknownTaskID
	}
	id, ok := obj["task_id"].(string)
	if !ok {
		return UnknownTaskID
	}
	return id
}

// reqString returns the trimmed value of a required string field, or a
// SCHEMA_INVALID denial when the field is absent, mistyped, or blank.
func reqString(obj map[string]any, key string) (string, *model.Denial) {
	v, ok := obj[key].(string)
	if !ok {
		return "", model.NewDenial(model.CodeSchemaInvalid, fmt.Sprintf("%s required", key))
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", model.NewDenial(model.CodeSchemaInvalid, fmt.Sprintf("%s required", key))
	}
	return v, nil
}

// reqStringSlice returns the cleaned string entries of a required list
// field. Non-string entries are ignored; at least one non-blank string
// must remain after trimming.
func reqStringSlice(obj map[string]any, key string) ([]string, *model.Denial) {
	raw, ok := obj[key].([]any)
	if !ok || len(raw) == 0 {
		return nil, model.NewDenial(model.CodeSchemaInvalid, fmt.Sprintf("%s required", key))
	}
	var cleaned []string
	for _, entry := range raw {
		s, ok := entry.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		cleaned = append(cleaned, s)
	}
	if len(cleaned) == 0 {
		return nil, model.NewDenial(model.CodeSchemaInvalid, fmt.Sprintf("%s required", key))
	}
	return cleaned, nil
}

// optString returns the trimmed value of an optional string field, or "".
func optString(obj map[string]any, key string) string {
	v, ok := obj[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// taskFromRaw builds the admitted task from the caller's values as
// supplied. Scope keeps the original string entries, including blanks and
// duplicates; only non-strings are dropped.
func taskFromRaw(obj map[string]any, taskType model.TaskType) *model.Task {
	var rawScope []string
	if entries, ok := obj["scope"].([]any); ok {
		for _, entry := range entries {
			if s, ok := entry.(string); ok {
				rawScope = append(rawScope, s)
			}
		}
	}

	var inputs map[string]any
	if m, ok := obj["inputs"].(map[string]any); ok {
		inputs = m
	}

	return &model.Task{
		TaskID:           rawString(obj, "task_id"),
		DomainID:         rawString(obj, "domain_id"),
		TaskType:         taskType,
		RequestedBy:      rawString(obj, "requested_by"),
		AuthorityToken:   rawString(obj, "authority_token"),
		SentinelPolicyID: rawString(obj, "sentinel_policy_id"),
		Scope:            rawScope,
		Inputs:           inputs,
		CreatedAt:        rawString(obj, "created_at"),
	}
}

func rawString(obj map[string]any, key string) string {
	v, _ := obj[key].(string)
	return v
}
