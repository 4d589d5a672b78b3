package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func toolServer(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	policy := NewPolicy()
	policy.Grant("acme", "hospitality.")
	return New(policy, NewHTTPTransport(srv.URL))
}

func okHandler(data map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{OK: true, Data: data})
	}
}

func callReq(tool string) Request {
	return Request{
		Tool: tool,
		Args: map[string]any{"property_id": "prop-042"},
		Ctx:  Context{Tenant: "acme", Actor: "revenue-bot", Purpose: "rate sync"},
	}
}

func TestCallAllowlistedTool(t *testing.T) {
	var gotTool atomic.Value
	g := toolServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotTool.Store(req.Tool)
		okHandler(map[string]any{"rates": "synced"})(w, r)
	})

	resp := g.Call(callReq("hospitality.rates.fetch"))
	if !resp.OK {
		t.Fatalf("expected ok, got error %+v", resp.Error)
	}
	if resp.Data["rates"] != "synced" {
		t.Errorf("data = %v", resp.Data)
	}
	if resp.Meta.TraceID == "" {
		t.Error("trace id not stamped")
	}
	if gotTool.Load() != "hospitality.rates.fetch" {
		t.Errorf("server saw tool %v", gotTool.Load())
	}
}

func TestCallSharedNamespaceAlwaysAllowed(t *testing.T) {
	g := toolServer(t, okHandler(nil))

	req := callReq("shared.time.now")
	req.Ctx.Tenant = "unknown-tenant"
	if resp := g.Call(req); !resp.OK {
		t.Fatalf("shared namespace denied: %+v", resp.Error)
	}
}

func TestCallDefaultDeny(t *testing.T) {
	var called atomic.Int32
	g := toolServer(t, func(w http.ResponseWriter, r *http.Request) {
		called.Add(1)
	})

	resp := g.Call(callReq("finance.ledger.write"))
	if resp.OK {
		t.Fatal("expected deny")
	}
	if resp.Error.Code != CodePolicyDeny {
		t.Errorf("code = %s, want POLICY_DENY", resp.Error.Code)
	}
	if resp.Error.Message != "Tool not allowlisted (default-deny)." {
		t.Errorf("message = %q", resp.Error.Message)
	}
	if called.Load() != 0 {
		t.Error("denied call must not reach the service")
	}
}

func TestCallTransportError(t *testing.T) {
	policy := NewPolicy()
	policy.Grant("acme", "hospitality.")
	g := New(policy, NewHTTPTransport("http://127.0.0.1:1"))

	resp := g.Call(callReq("hospitality.rates.fetch"))
	if resp.OK || resp.Error.Code != CodeTransportError {
		t.Fatalf("expected TRANSPORT_ERROR, got %+v", resp.Error)
	}
}

func TestCallBadResponse(t *testing.T) {
	g := toolServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})

	resp := g.Call(callReq("hospitality.rates.fetch"))
	if resp.OK || resp.Error.Code != CodeBadResponse {
		t.Fatalf("expected BAD_RESPONSE, got %+v", resp.Error)
	}
}

func TestCallRetriesOnServerError(t *testing.T) {
	var attempts atomic.Int32
	g := toolServer(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		okHandler(nil)(w, r)
	})

	resp := g.Call(callReq("hospitality.rates.fetch"))
	if !resp.OK {
		t.Fatalf("expected success after retries, got %+v", resp.Error)
	}
	if attempts.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts.Load())
	}
}

func TestCallPreservesCallerTraceID(t *testing.T) {
	g := toolServer(t, okHandler(nil))

	req := callReq("hospitality.rates.fetch")
	req.Ctx.TraceID = "t-fixed123456"
	resp := g.Call(req)
	if resp.Meta.TraceID != "t-fixed123456" {
		t.Errorf("trace id = %q, want caller's", resp.Meta.TraceID)
	}
}

func TestPolicyLoadAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	write := func(content string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("tenants:\n  acme:\n    - hospitality.\n")

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok, _ := policy.Evaluate("acme", "hospitality.rates.fetch"); !ok {
		t.Error("expected allow after load")
	}
	if ok, _ := policy.Evaluate("acme", "finance.ledger.write"); ok {
		t.Error("expected deny for unlisted namespace")
	}

	write("tenants:\n  acme:\n    - finance.\n")
	if err := policy.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if ok, _ := policy.Evaluate("acme", "hospitality.rates.fetch"); ok {
		t.Error("expected deny after reload revoked namespace")
	}
	if ok, _ := policy.Evaluate("acme", "finance.ledger.write"); !ok {
		t.Error("expected allow after reload granted namespace")
	}
}

func TestReloaderPicksUpPolicyChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	if err := os.WriteFile(path, []byte("tenants:\n  acme:\n    - hospitality.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	reloader, err := NewReloader(policy, path)
	if err != nil {
		t.Fatalf("new reloader: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		reloader.Run(ctx)
		close(done)
	}()

	if err := os.WriteFile(path, []byte("tenants:\n  acme:\n    - finance.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if ok, _ := policy.Evaluate("acme", "finance.ledger.write"); ok {
			cancel()
			<-done
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("policy change was not hot-reloaded")
}

func TestPolicyReloadKeepsOldOnParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	if err := os.WriteFile(path, []byte("tenants:\n  acme:\n    - hospitality.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := os.WriteFile(path, []byte("tenants: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := policy.Reload(); err == nil {
		t.Fatal("expected parse error")
	}
	if ok, _ := policy.Evaluate("acme", "hospitality.rates.fetch"); !ok {
		t.Error("previous allowlist must survive a failed reload")
	}
}
