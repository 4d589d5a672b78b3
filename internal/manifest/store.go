package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrDomainIDRequired is returned when a lookup key is blank.
var ErrDomainIDRequired = errors.New("DOMAIN_ID_REQUIRED")

// NotRegisteredError indicates no manifest exists for the domain.
type NotRegisteredError struct {
	DomainID string
}

func (e *NotRegisteredError) Error() string {
	return "DOMAIN_NOT_REGISTERED:" + e.DomainID
}

// MalformedError indicates the stored manifest could not be parsed.
type MalformedError struct {
	DomainID string
	Err      error
}

func (e *MalformedError) Error() string {
	return "DOMAIN_MANIFEST_INVALID:" + e.DomainID
}

func (e *MalformedError) Unwrap() error { return e.Err }

// MismatchError indicates the stored manifest declares a different
// domain_id than the one it is keyed under.
type MismatchError struct {
	DomainID string
	Found    string
}

func (e *MismatchError) Error() string {
	return "DOMAIN_MANIFEST_MISMATCH:" + e.DomainID
}

// Store resolves domain manifests. Load is called fresh on every admission;
// implementations must not cache.
type Store interface {
	Load(domainID string) (*Manifest, error)
}

// validDomainID rejects path traversal and shell-hostile characters in
// domain ids used as directory names.
var validDomainID = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileStore reads manifests from <root>/<domain_id>/domain.yaml.
type FileStore struct {
	root string
}

// NewFileStore creates a store rooted at the given directory.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Load reads and parses the manifest for domainID from disk.
func (s *FileStore) Load(domainID string) (*Manifest, error) {
	clean := strings.TrimSpace(domainID)
	if clean == "" {
		return nil, ErrDomainIDRequired
	}
	if strings.Contains(clean, "..") || !validDomainID.MatchString(clean) {
		return nil, &NotRegisteredError{DomainID: clean}
	}

	path := filepath.Join(s.root, clean, "domain.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotRegisteredError{DomainID: clean}
		}
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &MalformedError{DomainID: clean, Err: err}
	}
	if m.DomainID == "" {
		return nil, &MalformedError{DomainID: clean, Err: errors.New("missing domain_id")}
	}
	if m.DomainID != clean {
		return nil, &MismatchError{DomainID: clean, Found: m.DomainID}
	}

	return &m, nil
}

// MemStore is an in-memory manifest store for tests and the demo command.
type MemStore struct {
	mu        sync.RWMutex
	manifests map[string]Manifest
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{manifests: make(map[string]Manifest)}
}

// Put registers or replaces a manifest keyed by its domain id.
func (s *MemStore) Put(m Manifest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[m.DomainID] = m
}

// Load returns a copy of the manifest for domainID.
func (s *MemStore) Load(domainID string) (*Manifest, error) {
	clean := strings.TrimSpace(domainID)
	if clean == "" {
		return nil, ErrDomainIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.manifests[clean]
	if !ok {
		return nil, &NotRegisteredError{DomainID: clean}
	}
	out := m
	return &out, nil
}
