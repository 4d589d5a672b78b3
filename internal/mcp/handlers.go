package mcp

import (
	"context"
	"errors"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/taskgate/internal/audit"
	"github.com/ppiankov/taskgate/internal/gateway"
	"github.com/ppiankov/taskgate/internal/model"
)

// --- Input/Output types ---

// SubmitInput defines parameters for the taskgate_submit tool.
type SubmitInput struct {
	Task map[string]any `json:"task" jsonschema:"raw task payload to admit and dispatch"`
}

// SubmitOutput contains the execution result or denial details.
type SubmitOutput struct {
	TaskID  string                 `json:"task_id,omitempty"`
	Result  *model.ExecutionResult `json:"result,omitempty"`
	Denied  bool                   `json:"denied,omitempty"`
	Code    string                 `json:"code,omitempty"`
	Reason  string                 `json:"reason,omitempty"`
	Missing []string               `json:"missing,omitempty"`
}

// CheckInput defines parameters for the taskgate_check tool.
type CheckInput struct {
	Task map[string]any `json:"task" jsonschema:"raw task payload to check without dispatching"`
}

// CheckOutput contains the admission decision.
type CheckOutput struct {
	Admitted bool     `json:"admitted"`
	TaskID   string   `json:"task_id,omitempty"`
	Code     string   `json:"code,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	Missing  []string `json:"missing,omitempty"`
}

// ExecutorsInput is empty, no parameters needed.
type ExecutorsInput struct{}

// ExecutorsOutput lists registered executor domains.
type ExecutorsOutput struct {
	Domains []string `json:"domains"`
}

// ToolCallInput defines parameters for the taskgate_tool_call tool.
type ToolCallInput struct {
	Tool    string         `json:"tool" jsonschema:"namespaced tool name, e.g. hospitality.rates.fetch"`
	Args    map[string]any `json:"args,omitempty" jsonschema:"tool arguments"`
	Tenant  string         `json:"tenant" jsonschema:"calling tenant for allowlist evaluation"`
	Actor   string         `json:"actor,omitempty" jsonschema:"acting identity"`
	Purpose string         `json:"purpose,omitempty" jsonschema:"stated purpose of the call"`
}

// ToolCallOutput contains the gateway response envelope fields.
type ToolCallOutput struct {
	OK         bool           `json:"ok"`
	Data       map[string]any `json:"data,omitempty"`
	Code       string         `json:"code,omitempty"`
	Message    string         `json:"message,omitempty"`
	TraceID    string         `json:"trace_id"`
	DurationMs int64          `json:"duration_ms"`
}

// AuditVerifyInput is empty, no parameters needed.
type AuditVerifyInput struct{}

// AuditVerifyOutput reports the chain verification result.
type AuditVerifyOutput struct {
	Valid     bool   `json:"valid"`
	Lines     int    `json:"lines"`
	Error     string `json:"error,omitempty"`
	ErrorLine int    `json:"error_line,omitempty"`
}

// --- Handlers ---

func (s *Server) handleSubmit(ctx context.Context, req *mcpsdk.CallToolRequest, input SubmitInput) (*mcpsdk.CallToolResult, SubmitOutput, error) {
	task, result, err := s.pipeline.Intake(input.Task)
	if err != nil {
		var denial *model.Denial
		if errors.As(err, &denial) {
			out := SubmitOutput{
				Denied:  true,
				Code:    denial.Code,
				Reason:  denial.Message,
				Missing: denial.Missing,
			}
			return &mcpsdk.CallToolResult{IsError: true}, out, nil
		}
		return nil, SubmitOutput{}, err
	}

	return nil, SubmitOutput{TaskID: task.TaskID, Result: &result}, nil
}

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	task, err := s.pipeline.Gate().Admit(input.Task)
	if err != nil {
		var denial *model.Denial
		if errors.As(err, &denial) {
			out := CheckOutput{
				Admitted: false,
				Code:     denial.Code,
				Reason:   denial.Message,
				Missing:  denial.Missing,
			}
			return &mcpsdk.CallToolResult{IsError: true}, out, nil
		}
		return nil, CheckOutput{}, err
	}

	return nil, CheckOutput{Admitted: true, TaskID: task.TaskID}, nil
}

func (s *Server) handleExecutors(ctx context.Context, req *mcpsdk.CallToolRequest, input ExecutorsInput) (*mcpsdk.CallToolResult, ExecutorsOutput, error) {
	return nil, ExecutorsOutput{Domains: s.registry.List()}, nil
}

func (s *Server) handleToolCall(ctx context.Context, req *mcpsdk.CallToolRequest, input ToolCallInput) (*mcpsdk.CallToolResult, ToolCallOutput, error) {
	resp := s.gateway.Call(gateway.Request{
		Tool: input.Tool,
		Args: input.Args,
		Ctx: gateway.Context{
			Tenant:  input.Tenant,
			Actor:   input.Actor,
			Purpose: input.Purpose,
		},
	})

	out := ToolCallOutput{
		OK:         resp.OK,
		Data:       resp.Data,
		TraceID:    resp.Meta.TraceID,
		DurationMs: resp.Meta.DurationMs,
	}
	if resp.Error != nil {
		out.Code = resp.Error.Code
		out.Message = resp.Error.Message
	}
	if !resp.OK {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleAuditVerify(ctx context.Context, req *mcpsdk.CallToolRequest, input AuditVerifyInput) (*mcpsdk.CallToolResult, AuditVerifyOutput, error) {
	result := audit.Verify(s.auditLogPath)
	out := AuditVerifyOutput{
		Valid:     result.Valid,
		Lines:     result.Lines,
		Error:     result.Error,
		ErrorLine: result.ErrorLine,
	}
	if !result.Valid {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}
