package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/taskgate/internal/audit"
)

var replayTaskID string

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	auditCmd.AddCommand(auditReplayCmd)
	auditReplayCmd.Flags().StringVar(&replayTaskID, "task-id", "", "Only show events for this task")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit trail operations",
	Long:  "Commands for verifying and inspecting the hash-chained audit trail.",
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Verify hash chain integrity of an audit trail",
	Long:  "Walks the JSONL audit trail and validates that every entry's prev_hash\nmatches the SHA-256 of the previous entry. Exits 0 if valid, 1 if tampered.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditVerify,
}

var auditReplayCmd = &cobra.Command{
	Use:   "replay <path>",
	Short: "Show the event timeline from an audit trail",
	Long:  "Reads the JSONL audit trail in append order, optionally filtered to a\nsingle task, and prints each event.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditReplay,
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	result := audit.Verify(args[0])
	if result.Valid {
		fmt.Printf("OK: %d entries verified\n", result.Lines)
		return nil
	}
	fmt.Fprintf(os.Stderr, "FAILED at line %d: %s\n", result.ErrorLine, result.Error)
	os.Exit(1)
	return nil
}

func runAuditReplay(cmd *cobra.Command, args []string) error {
	events, err := audit.Replay(args[0], replayTaskID)
	if err != nil {
		return err
	}
	for _, e := range events {
		line := fmt.Sprintf("%s  %-22s %s", e.Timestamp, e.EventType, e.TaskID)
		if e.Reason != "" {
			line += "  " + e.Reason
		}
		fmt.Println(line)
	}
	return nil
}
