package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	taskmcp "github.com/ppiankov/taskgate/internal/mcp"
)

var (
	mcpDomains       string
	mcpAudit         string
	mcpGatewayPolicy string
	mcpGatewayURL    string
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpDomains, "domains", "domains", "Root directory of domain manifests")
	mcpCmd.Flags().StringVar(&mcpAudit, "audit", "", "Path to audit log (default ~/.taskgate/audit/events.jsonl)")
	mcpCmd.Flags().StringVar(&mcpGatewayPolicy, "gateway-policy", "", "Path to gateway allowlist YAML (enables the tool-call proxy)")
	mcpCmd.Flags().StringVar(&mcpGatewayURL, "gateway-url", "", "Base URL of the external tool service")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long:  "Runs taskgate as an MCP (Model Context Protocol) server over stdio.\nExposes tools: submit, check, executors, audit_verify.",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	srv, err := taskmcp.New(taskmcp.Config{
		DomainsDir:        mcpDomains,
		AuditLogPath:      mcpAudit,
		GatewayPolicyPath: mcpGatewayPolicy,
		GatewayBaseURL:    mcpGatewayURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "taskgate MCP server running on stdio")
	return srv.Run(ctx)
}
