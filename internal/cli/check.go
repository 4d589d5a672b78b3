package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/taskgate/internal/model"
)

var (
	checkTask    string
	checkDomains string
	checkAudit   string
	checkFormat  string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkTask, "task", "t", "", "Path to task JSON, or - for stdin (required)")
	checkCmd.Flags().StringVar(&checkDomains, "domains", "domains", "Root directory of domain manifests")
	checkCmd.Flags().StringVar(&checkAudit, "audit", "", "Path to audit log (default ~/.taskgate/audit/events.jsonl)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
	checkCmd.MarkFlagRequired("task")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run admission without dispatching (dry-run)",
	Long: "Runs a task payload through every admission gate and reports the\n" +
		"decision without invoking an executor. The attempt is still audited.\n\n" +
		"Exit code 0 if the task would be admitted, 1 if denied.",
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	raw, err := loadTask(checkTask)
	if err != nil {
		return err
	}

	p, auditLog, err := newPipeline(checkDomains, checkAudit)
	if err != nil {
		return err
	}
	defer auditLog.Close()

	task, err := p.Gate().Admit(raw)
	if err != nil {
		var denial *model.Denial
		if errors.As(err, &denial) {
			if checkFormat == "json" {
				printJSON(denial)
			} else {
				fmt.Fprintf(os.Stderr, "DENY %s: %s\n", denial.Code, denial.Message)
			}
			os.Exit(1)
		}
		return err
	}

	if checkFormat == "json" {
		printJSON(map[string]any{"admitted": true, "task_id": task.TaskID})
		return nil
	}
	fmt.Printf("ALLOW %s\n", task.TaskID)
	return nil
}
