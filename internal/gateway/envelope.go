// Package gateway is the tool-calling collaborator: a default-deny client
// for an external tool service. Executors hand it a request envelope and
// always get a response envelope back, never a raised error.
package gateway

// Request is the outbound tool-call envelope.
type Request struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
	Ctx  Context        `json:"ctx"`
}

// Context identifies the caller for policy evaluation and tracing.
type Context struct {
	Tenant         string `json:"tenant"`
	Actor          string `json:"actor"`
	Purpose        string `json:"purpose,omitempty"`
	Classification string `json:"classification,omitempty"`
	TraceID        string `json:"traceId,omitempty"`
}

// Error carries a stable machine code plus a human message.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta is attached to every response, success or failure.
type Meta struct {
	TraceID    string `json:"traceId"`
	DurationMs int64  `json:"durationMs"`
}

// Response is the inbound envelope. OK and Error are mutually exclusive.
type Response struct {
	OK    bool           `json:"ok"`
	Data  map[string]any `json:"data,omitempty"`
	Error *Error         `json:"error,omitempty"`
	Meta  Meta           `json:"meta"`
}
