package gateway

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// sharedPrefix is allowlisted for every tenant.
const sharedPrefix = "shared."

// PolicyFile is the on-disk shape of the tool allowlist.
type PolicyFile struct {
	Tenants map[string][]string `yaml:"tenants"`
}

// Policy is the default-deny tool allowlist: a tool call passes only when
// its namespace prefix is granted to the caller's tenant, or it lives under
// the shared namespace.
type Policy struct {
	mu      sync.RWMutex
	tenants map[string][]string
	path    string
}

// NewPolicy returns an empty policy. Only shared.* tools pass.
func NewPolicy() *Policy {
	return &Policy{tenants: map[string][]string{}}
}

// LoadPolicy reads a tenant allowlist from a YAML file.
func LoadPolicy(path string) (*Policy, error) {
	p := &Policy{tenants: map[string][]string{}, path: path}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the policy file, replacing the allowlist atomically.
// On error the previous allowlist stays in effect.
func (p *Policy) Reload() error {
	if p.path == "" {
		return nil
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("read policy: %w", err)
	}
	var file PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse policy: %w", err)
	}
	tenants := make(map[string][]string, len(file.Tenants))
	for tenant, prefixes := range file.Tenants {
		var cleaned []string
		for _, pre := range prefixes {
			pre = strings.TrimSpace(pre)
			if pre != "" {
				cleaned = append(cleaned, pre)
			}
		}
		tenants[tenant] = cleaned
	}

	p.mu.Lock()
	p.tenants = tenants
	p.mu.Unlock()
	return nil
}

// Grant adds a namespace prefix to a tenant at runtime.
func (p *Policy) Grant(tenant, prefix string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tenants[tenant] = append(p.tenants[tenant], prefix)
}

// Evaluate decides whether the tenant may call the tool. The reason is
// stable and attached to deny envelopes.
func (p *Policy) Evaluate(tenant, tool string) (allowed bool, reason string) {
	if strings.HasPrefix(tool, sharedPrefix) {
		return true, ""
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, pre := range p.tenants[tenant] {
		if strings.HasPrefix(tool, pre) {
			return true, ""
		}
	}
	return false, "Tool not allowlisted (default-deny)."
}
