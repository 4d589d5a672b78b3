// Package domain evaluates a task against its domain manifest: supported
// task types first, then domain-level required capabilities.
package domain

import (
	"fmt"

	"github.com/ppiankov/taskgate/internal/manifest"
	"github.com/ppiankov/taskgate/internal/model"
	"github.com/ppiankov/taskgate/internal/scope"
)

// Evaluate is a pure function over a manifest and the task's type and
// scope. Evaluation order (must not be changed):
//
//  1. Supported task types gate
//  2. Domain-level required scopes gate
func Evaluate(m *manifest.Manifest, taskType model.TaskType, taskScope []string) model.Decision {
	if !m.Supports(taskType) {
		return model.Deny(fmt.Sprintf("DOMAIN_TASKTYPE_UNSUPPORTED:%s:%s", m.DomainID, taskType))
	}

	required := m.Required(taskType)
	if missing := scope.Missing(required, taskScope); len(missing) > 0 {
		return model.DenyMissing(
			fmt.Sprintf("DOMAIN_SCOPE_INSUFFICIENT:%s:%s", m.DomainID, taskType),
			missing,
		)
	}

	return model.Allow("DOMAIN_OK")
}
