package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/taskgate/internal/audit"
	"github.com/ppiankov/taskgate/internal/manifest"
	"github.com/ppiankov/taskgate/internal/model"
	"github.com/ppiankov/taskgate/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.AddCommand(hospitalityDemoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run demonstration scenarios",
}

var hospitalityDemoCmd = &cobra.Command{
	Use:   "hospitality",
	Short: "Run the hospitality rate-update demo (bad token must be denied)",
	RunE:  runHospitalityDemo,
}

func runHospitalityDemo(cmd *cobra.Command, args []string) error {
	fmt.Println("=== taskgate Hospitality Demo ===")
	fmt.Println("Purpose: Prove admission is deny-by-default and every decision is audited.")
	fmt.Println()

	tmpDir, err := os.MkdirTemp("", "taskgate-demo-*")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	auditPath := filepath.Join(tmpDir, "events.jsonl")
	auditLog, err := audit.Open(auditPath)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer auditLog.Close()

	store := manifest.NewMemStore()
	store.Put(manifest.Manifest{
		DomainID:           "hospitality",
		Owner:              "hospitality-team",
		Status:             manifest.StatusActive,
		SupportedTaskTypes: []model.TaskType{model.TaskExecute},
		RequiredScopes: map[model.TaskType][]string{
			model.TaskExecute: {"hospitality:execute"},
		},
	})

	registry, err := newRegistry()
	if err != nil {
		return err
	}
	p := pipeline.New(store, registry, auditLog)

	goodTask := map[string]any{
		"task_id":         "task-2024-001",
		"domain_id":       "hospitality",
		"task_type":       "EXECUTE",
		"requested_by":    "revenue-bot",
		"authority_token": "SENTINEL:hosp-pol-1:opaquecredential",
		"scope":           []any{"task:execute", "hospitality:execute", "hospitality:rates:write"},
		"created_at":      "2024-06-15T09:00:00Z",
		"inputs": map[string]any{
			"action":         "RATE_UPDATE",
			"property_id":    "prop-042",
			"date_start":     "2024-07-01",
			"date_end":       "2024-07-14",
			"new_rate_cents": float64(18900),
			"currency":       "EUR",
		},
	}

	task, result, err := p.Intake(goodTask)
	if err != nil {
		return fmt.Errorf("expected admission, got: %w", err)
	}
	fmt.Printf("  ✓ %s → %s (%v)\n", task.TaskID, result.Status, result.Output["result"])

	badTask := map[string]any{}
	for k, v := range goodTask {
		badTask[k] = v
	}
	badTask["task_id"] = "task-2024-002"
	badTask["authority_token"] = "forged-credential"

	denied := false
	_, _, err = p.Intake(badTask)
	var denial *model.Denial
	if errors.As(err, &denial) {
		denied = true
		fmt.Printf("  ✗ task-2024-002 → DENIED (%s)\n", denial.Code)
	}

	fmt.Println()
	verify := audit.Verify(auditPath)
	fmt.Printf("Audit chain: valid=%v entries=%d\n", verify.Valid, verify.Lines)
	fmt.Println()

	// CI gate: the forged token MUST be denied and the chain MUST verify.
	if !denied || !verify.Valid {
		fmt.Println("FAIL: forged credential was not denied or audit chain broke.")
		os.Exit(1)
	}
	fmt.Println("PASS: admission denied the forged credential and the trail verifies.")
	return nil
}
