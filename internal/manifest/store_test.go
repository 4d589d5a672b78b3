package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/taskgate/internal/model"
)

const hospitalityYAML = `domain_id: hospitality
owner: ops@hospitality.example
status: ACTIVE
supported_task_types: [EXECUTE, ANALYZE, ESCALATE]
required_scopes:
  EXECUTE: ["hospitality:execute"]
  ANALYZE: ["hospitality:analyze"]
`

func writeManifest(t *testing.T, root, domainID, content string) {
	t.Helper()
	dir := filepath.Join(root, domainID)
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "domain.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestFileStoreLoadsManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "hospitality", hospitalityYAML)

	store := NewFileStore(root)
	m, err := store.Load("hospitality")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.DomainID != "hospitality" {
		t.Errorf("domain_id = %q", m.DomainID)
	}
	if m.Status != StatusActive {
		t.Errorf("status = %q", m.Status)
	}
	if !m.Supports(model.TaskExecute) {
		t.Error("expected EXECUTE to be supported")
	}
	if got := m.Required(model.TaskExecute); len(got) != 1 || got[0] != "hospitality:execute" {
		t.Errorf("required EXECUTE scopes = %v", got)
	}
	if m.Required(model.TaskEscalate) != nil {
		t.Errorf("expected no required scopes for ESCALATE, got %v", m.Required(model.TaskEscalate))
	}
}

func TestFileStoreTrimsDomainID(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "hospitality", hospitalityYAML)

	store := NewFileStore(root)
	if _, err := store.Load("  hospitality  "); err != nil {
		t.Fatalf("load with surrounding whitespace: %v", err)
	}
}

func TestFileStoreErrorTaxonomy(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "hospitality", hospitalityYAML)
	writeManifest(t, root, "broken", "{{not yaml")
	writeManifest(t, root, "renamed", "domain_id: something-else\nowner: x\nstatus: ACTIVE\n")

	store := NewFileStore(root)

	tests := []struct {
		name     string
		domainID string
		wantMsg  string
	}{
		{"blank id", "   ", "DOMAIN_ID_REQUIRED"},
		{"unregistered", "finance", "DOMAIN_NOT_REGISTERED:finance"},
		{"traversal", "../hospitality", "DOMAIN_NOT_REGISTERED:../hospitality"},
		{"malformed", "broken", "DOMAIN_MANIFEST_INVALID:broken"},
		{"id mismatch", "renamed", "DOMAIN_MANIFEST_MISMATCH:renamed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Load(tt.domainID)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestFileStoreDistinguishesErrorTypes(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.Load("ghost")
	var notReg *NotRegisteredError
	if !errors.As(err, &notReg) {
		t.Fatalf("expected NotRegisteredError, got %T", err)
	}
}

func TestFileStoreReadsFreshOnEveryLoad(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "hospitality", hospitalityYAML)
	store := NewFileStore(root)

	m, err := store.Load("hospitality")
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if m.Owner != "ops@hospitality.example" {
		t.Fatalf("owner = %q", m.Owner)
	}

	updated := "domain_id: hospitality\nowner: new-owner@example\nstatus: FROZEN\nsupported_task_types: [EXECUTE]\n"
	writeManifest(t, root, "hospitality", updated)

	m2, err := store.Load("hospitality")
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if m2.Owner != "new-owner@example" {
		t.Error("expected update to be visible on next load (no cache)")
	}
	if m2.Active() {
		t.Error("FROZEN manifest should report inactive")
	}
}

func TestMemStore(t *testing.T) {
	store := NewMemStore()
	store.Put(Manifest{
		DomainID:           "hospitality",
		Owner:              "ops",
		Status:             StatusActive,
		SupportedTaskTypes: []model.TaskType{model.TaskExecute},
	})

	m, err := store.Load("hospitality")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Mutating the returned copy must not affect the store.
	m.Owner = "mutated"
	m2, _ := store.Load("hospitality")
	if m2.Owner != "ops" {
		t.Error("store returned a shared reference")
	}

	if _, err := store.Load("missing"); err == nil {
		t.Fatal("expected missing domain to error")
	}
}
