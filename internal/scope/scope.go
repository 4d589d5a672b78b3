// Package scope enforces the global capability requirements of each task
// type, independent of any domain. Capability matching is exact set
// membership over trimmed, non-blank strings: no hierarchy, no wildcards,
// and unknown capabilities grant nothing.
package scope

import (
	"strings"

	"github.com/ppiankov/taskgate/internal/model"
)

// requiredByTaskType is the static task-type-wide capability table.
var requiredByTaskType = map[model.TaskType][]string{
	model.TaskExecute:  {"task:execute"},
	model.TaskAnalyze:  {"task:analyze"},
	model.TaskEscalate: {"task:escalate"},
}

// RequiredFor returns a copy of the global capabilities for a task type.
func RequiredFor(taskType model.TaskType) []string {
	required := requiredByTaskType[taskType]
	out := make([]string, len(required))
	copy(out, required)
	return out
}

// Normalize trims entries, drops blanks, and deduplicates, preserving
// first-occurrence order. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(scope []string) []string {
	seen := make(map[string]bool, len(scope))
	out := make([]string, 0, len(scope))
	for _, s := range scope {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Missing returns the required capabilities absent from scope, preserving
// the order of the required list. Scope is normalized before matching.
func Missing(required, scope []string) []string {
	have := make(map[string]bool, len(scope))
	for _, s := range Normalize(scope) {
		have[s] = true
	}
	var missing []string
	for _, cap := range required {
		if !have[cap] {
			missing = append(missing, cap)
		}
	}
	return missing
}

// Enforce checks the task-type-wide capability requirement against the
// supplied scope. Deny-by-default: an empty scope denies with the full
// required set.
func Enforce(taskType model.TaskType, scope []string) model.Decision {
	required := RequiredFor(taskType)
	if len(scope) == 0 {
		return model.DenyMissing("SCOPE_MISSING", required)
	}
	if missing := Missing(required, scope); len(missing) > 0 {
		return model.DenyMissing("SCOPE_INSUFFICIENT", missing)
	}
	return model.Allow("SCOPE_OK")
}
