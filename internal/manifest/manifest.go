// Package manifest defines the per-domain policy manifest and its storage
// collaborator. Manifests are loaded fresh on every admission call: there
// is no cache, so a manifest update is visible to the next admission at the
// cost of a read per task.
package manifest

import (
	"github.com/ppiankov/taskgate/internal/model"
)

// Status marks whether a domain is accepting tasks.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusFrozen Status = "FROZEN"
)

// Manifest declares what a domain supports and which capabilities each
// task type requires on top of the global scope table.
type Manifest struct {
	DomainID           string                      `yaml:"domain_id" json:"domain_id"`
	Owner              string                      `yaml:"owner" json:"owner"`
	Status             Status                      `yaml:"status" json:"status"`
	SupportedTaskTypes []model.TaskType            `yaml:"supported_task_types" json:"supported_task_types"`
	RequiredScopes     map[model.TaskType][]string `yaml:"required_scopes" json:"required_scopes"`
}

// Supports returns true if the domain accepts the given task type.
func (m *Manifest) Supports(t model.TaskType) bool {
	for _, s := range m.SupportedTaskTypes {
		if s == t {
			return true
		}
	}
	return false
}

// Active reports whether the domain is not frozen. The admission gate does
// not consult this; FROZEN enforcement semantics are deliberately
// unresolved and the field is carried for manifest round-tripping only.
func (m *Manifest) Active() bool {
	return m.Status != StatusFrozen
}

// Required returns the domain-level capabilities for a task type, or nil.
func (m *Manifest) Required(t model.TaskType) []string {
	return m.RequiredScopes[t]
}
