package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(executorsCmd)
}

var executorsCmd = &cobra.Command{
	Use:   "executors",
	Short: "List registered executor domains",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := newRegistry()
		if err != nil {
			return err
		}
		for _, id := range registry.List() {
			fmt.Println(id)
		}
		return nil
	},
}
