// Package executor defines the contract a domain executor must satisfy
// and the registry that binds domain ids to executors. Registration
// happens once at process startup; treat a collision as a configuration
// error, not a runtime condition to recover from.
package executor

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ppiankov/taskgate/internal/model"
)

// Executor performs the domain-specific work for an admitted task.
// Execute must not panic; implementations that do are contained by the
// dispatcher, but a panic is always an executor bug.
type Executor interface {
	DomainID() string
	Supports(taskType model.TaskType) bool
	Execute(task *model.Task) model.ExecutionResult
}

// Registry maps domain ids to executors. Writes happen during startup;
// reads dominate afterwards, hence the RWMutex.
type Registry struct {
	mu        sync.RWMutex
	executors map[string]Executor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{executors: make(map[string]Executor)}
}

// Register binds an executor to its domain id. A blank id or an already
// bound id is a startup configuration error.
func (r *Registry) Register(e Executor) error {
	id := strings.TrimSpace(e.DomainID())
	if id == "" {
		return fmt.Errorf("EXECUTOR_DOMAIN_ID_REQUIRED")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.executors[id]; exists {
		return fmt.Errorf("EXECUTOR_ALREADY_REGISTERED:%s", id)
	}
	r.executors[id] = e
	return nil
}

// Lookup returns the executor bound to domainID, if any.
func (r *Registry) Lookup(domainID string) (Executor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.executors[strings.TrimSpace(domainID)]
	return e, ok
}

// List returns all registered domain ids in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.executors))
	for id := range r.executors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
