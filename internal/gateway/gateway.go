package gateway

import (
	"errors"
	"time"
)

// Error codes the gateway itself produces. Service-side codes pass through
// untouched.
const (
	CodePolicyDeny     = "POLICY_DENY"
	CodeTransportError = "TRANSPORT_ERROR"
	CodeBadResponse    = "BAD_RESPONSE"
)

// Gateway fronts every tool call with policy evaluation. Call is total:
// denials, delivery failures, and malformed replies all come back as
// response envelopes.
type Gateway struct {
	policy    *Policy
	transport Transport
}

// New builds a gateway over the given policy and transport.
func New(policy *Policy, transport Transport) *Gateway {
	return &Gateway{policy: policy, transport: transport}
}

// Policy exposes the allowlist for hot reload wiring.
func (g *Gateway) Policy() *Policy { return g.policy }

// Call evaluates policy, forwards the request, and stamps trace metadata.
func (g *Gateway) Call(req Request) Response {
	start := time.Now()
	traceID := req.Ctx.TraceID
	if traceID == "" {
		traceID = NewTraceID()
		req.Ctx.TraceID = traceID
	}

	if allowed, reason := g.policy.Evaluate(req.Ctx.Tenant, req.Tool); !allowed {
		return g.failure(traceID, start, CodePolicyDeny, reason)
	}

	resp, err := g.transport.RoundTrip(req)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			return g.failure(traceID, start, CodeBadResponse, err.Error())
		}
		return g.failure(traceID, start, CodeTransportError, err.Error())
	}

	resp.Meta.TraceID = traceID
	resp.Meta.DurationMs = time.Since(start).Milliseconds()
	return *resp
}

func (g *Gateway) failure(traceID string, start time.Time, code, message string) Response {
	return Response{
		OK:    false,
		Error: &Error{Code: code, Message: message},
		Meta: Meta{
			TraceID:    traceID,
			DurationMs: time.Since(start).Milliseconds(),
		},
	}
}
