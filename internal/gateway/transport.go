package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	requestTimeout = 5 * time.Second
	maxRetries     = 3
)

// Transport delivers a tool request to the backing service.
type Transport interface {
	RoundTrip(req Request) (*Response, error)
}

// DecodeError marks a reply that arrived but could not be parsed as an
// envelope. Callers classify it separately from delivery failures.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode response: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// HTTPTransport posts envelopes to <base>/tool, retrying on 5xx.
type HTTPTransport struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPTransport builds a transport with the default timeout.
func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: requestTimeout},
	}
}

func (t *HTTPTransport) RoundTrip(req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
		}

		httpReq, err := http.NewRequest(http.MethodPost, t.BaseURL+"/tool", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		httpResp, err := t.Client.Do(httpReq)
		if err != nil {
			lastErr = err
			continue
		}
		data, err := io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if httpResp.StatusCode >= 500 {
			lastErr = fmt.Errorf("tool service error: HTTP %d", httpResp.StatusCode)
			continue
		}

		var resp Response
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, &DecodeError{Err: err}
		}
		return &resp, nil
	}
	return nil, fmt.Errorf("tool call failed after %d attempts: %w", maxRetries, lastErr)
}
