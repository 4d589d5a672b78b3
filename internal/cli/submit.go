package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/taskgate/internal/model"
)

var (
	submitTask    string
	submitDomains string
	submitAudit   string
	submitFormat  string
)

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVarP(&submitTask, "task", "t", "", "Path to task JSON, or - for stdin (required)")
	submitCmd.Flags().StringVar(&submitDomains, "domains", "domains", "Root directory of domain manifests")
	submitCmd.Flags().StringVar(&submitAudit, "audit", "", "Path to audit log (default ~/.taskgate/audit/events.jsonl)")
	submitCmd.Flags().StringVarP(&submitFormat, "format", "f", "text", "Output format (text|json)")
	submitCmd.MarkFlagRequired("task")
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Admit and dispatch a task",
	Long: "Reads a task payload, runs it through the admission gates, and\n" +
		"dispatches it to the registered executor for its domain.\n\n" +
		"Exit code 0 if the task was admitted, 1 if it was denied.",
	RunE: runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	raw, err := loadTask(submitTask)
	if err != nil {
		return err
	}

	p, auditLog, err := newPipeline(submitDomains, submitAudit)
	if err != nil {
		return err
	}
	defer auditLog.Close()

	task, result, err := p.Intake(raw)
	if err != nil {
		var denial *model.Denial
		if errors.As(err, &denial) {
			if submitFormat == "json" {
				printJSON(denial)
			} else {
				fmt.Fprintf(os.Stderr, "DENIED %s: %s\n", denial.Code, denial.Message)
			}
			os.Exit(1)
		}
		return err
	}

	if submitFormat == "json" {
		printJSON(result)
		return nil
	}
	fmt.Printf("ADMITTED %s\n", task.TaskID)
	fmt.Printf("status: %s\n", result.Status)
	if reason, ok := result.Output["reason"]; ok {
		fmt.Printf("reason: %v\n", reason)
	}
	if result.Error != "" {
		fmt.Printf("error: %s\n", result.Error)
	}
	return nil
}
