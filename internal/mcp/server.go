// Package mcp exposes the admission pipeline over the Model Context
// Protocol so agent hosts can submit and inspect tasks.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/taskgate/internal/audit"
	"github.com/ppiankov/taskgate/internal/executor"
	"github.com/ppiankov/taskgate/internal/gateway"
	"github.com/ppiankov/taskgate/internal/hospitality"
	"github.com/ppiankov/taskgate/internal/manifest"
	"github.com/ppiankov/taskgate/internal/pipeline"
)

// Config holds MCP server configuration. GatewayPolicyPath and
// GatewayBaseURL are optional; when set, the server exposes a tool-call
// proxy behind the default-deny gateway and hot-reloads its allowlist.
type Config struct {
	DomainsDir        string
	AuditLogPath      string
	GatewayPolicyPath string
	GatewayBaseURL    string
}

// Server wraps the MCP SDK server around the admission pipeline.
type Server struct {
	mcpServer    *mcpsdk.Server
	pipeline     *pipeline.Pipeline
	registry     *executor.Registry
	auditLog     *audit.Log
	auditLogPath string
	gateway      *gateway.Gateway
	reloader     *gateway.Reloader
}

// New creates an MCP server with a file-backed manifest store, the
// hospitality executor, and an open audit log.
func New(cfg Config) (*Server, error) {
	path := cfg.AuditLogPath
	if path == "" {
		path = audit.DefaultPath()
	}
	auditLog, err := audit.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	registry := executor.NewRegistry()
	if err := registry.Register(hospitality.New()); err != nil {
		auditLog.Close()
		return nil, err
	}

	s := &Server{
		pipeline:     pipeline.New(manifest.NewFileStore(cfg.DomainsDir), registry, auditLog),
		registry:     registry,
		auditLog:     auditLog,
		auditLogPath: path,
	}

	if cfg.GatewayPolicyPath != "" {
		policy, err := gateway.LoadPolicy(cfg.GatewayPolicyPath)
		if err != nil {
			auditLog.Close()
			return nil, fmt.Errorf("failed to load gateway policy: %w", err)
		}
		reloader, err := gateway.NewReloader(policy, cfg.GatewayPolicyPath)
		if err != nil {
			auditLog.Close()
			return nil, err
		}
		s.gateway = gateway.New(policy, gateway.NewHTTPTransport(cfg.GatewayBaseURL))
		s.reloader = reloader
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "taskgate",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, along with the gateway
// policy watcher when configured. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if s.reloader != nil {
		go s.reloader.Run(ctx)
	}
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the audit log.
func (s *Server) Close() error {
	return s.auditLog.Close()
}

// registerTools adds all taskgate tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "taskgate_submit",
		Description: "Submit a task through admission and dispatch. Denied tasks return the denial code and reason.",
	}, s.handleSubmit)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "taskgate_check",
		Description: "Run a task through admission without dispatching it (dry-run). The attempt is still audited.",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "taskgate_executors",
		Description: "List registered executor domain IDs.",
	}, s.handleExecutors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "taskgate_audit_verify",
		Description: "Verify the audit trail hash chain and report the first broken line, if any.",
	}, s.handleAuditVerify)

	if s.gateway != nil {
		mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
			Name:        "taskgate_tool_call",
			Description: "Call an external tool through the default-deny gateway. Tools outside the tenant's allowlisted namespaces are denied.",
		}, s.handleToolCall)
	}
}
