// Package cli implements the taskgate command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskgate",
	Short: "Multi-tenant task admission and dispatch pipeline",
	Long:  "Validates inbound tasks through layered policy gates, dispatches admitted tasks\nto per-domain executors, and records every decision in a hash-chained audit trail.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
