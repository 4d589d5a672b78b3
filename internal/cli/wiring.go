package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/taskgate/internal/audit"
	"github.com/ppiankov/taskgate/internal/executor"
	"github.com/ppiankov/taskgate/internal/hospitality"
	"github.com/ppiankov/taskgate/internal/manifest"
	"github.com/ppiankov/taskgate/internal/pipeline"
)

// newRegistry builds the executor registry with the built-in executors.
func newRegistry() (*executor.Registry, error) {
	registry := executor.NewRegistry()
	if err := registry.Register(hospitality.New()); err != nil {
		return nil, err
	}
	return registry, nil
}

// newPipeline wires a file-backed pipeline. Callers own closing the log.
func newPipeline(domainsDir, auditPath string) (*pipeline.Pipeline, *audit.Log, error) {
	if auditPath == "" {
		auditPath = audit.DefaultPath()
	}
	auditLog, err := audit.Open(auditPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	registry, err := newRegistry()
	if err != nil {
		auditLog.Close()
		return nil, nil, err
	}
	return pipeline.New(manifest.NewFileStore(domainsDir), registry, auditLog), auditLog, nil
}

// loadTask reads a raw task payload from a JSON file, or stdin for "-".
func loadTask(path string) (map[string]any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read task: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse task: %w", err)
	}
	return raw, nil
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
