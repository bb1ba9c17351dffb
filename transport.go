package ecpay

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// TransportConfig controls how requests reach the API.
type TransportConfig struct {
	Timeout            time.Duration // Whole-request timeout
	ConnectTimeout     time.Duration // Dial timeout
	InsecureSkipVerify bool          // Disable certificate checks (stage only)
	MinTLSVersion      uint16
	HTTPClient         *http.Client // Used as-is when set
}

// DefaultTransportConfig returns 30s/10s timeouts with TLS 1.2 and
// certificate verification on.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Timeout:        30 * time.Second,
		ConnectTimeout: 10 * time.Second,
		MinTLSVersion:  tls.VersionTLS12,
	}
}

// Transport posts JSON envelopes. It performs exactly one attempt per call.
type Transport struct {
	mu     sync.RWMutex
	config TransportConfig
	client *http.Client
}

// NewTransport builds a transport from cfg.
func NewTransport(cfg TransportConfig) *Transport {
	t := &Transport{}
	t.Reconfigure(cfg)
	return t
}

// Reconfigure swaps the configuration. Requests already in flight keep the
// client they started with.
func (t *Transport) Reconfigure(cfg TransportConfig) {
	client := cfg.HTTPClient
	if client == nil {
		client = newHTTPClient(cfg)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.config = cfg
	t.client = client
}

// Reset restores DefaultTransportConfig.
func (t *Transport) Reset() {
	t.Reconfigure(DefaultTransportConfig())
}

// Config returns the active configuration.
func (t *Transport) Config() TransportConfig {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.config
}

// Post sends body as JSON to url and decodes the JSON object reply.
func (t *Transport) Post(ctx context.Context, url string, body Payload) (Payload, error) {
	start := time.Now()
	out, status, err := t.post(ctx, url, body)
	emitRequest(ctx, url, status, time.Since(start), err)
	return out, err
}

func (t *Transport) post(ctx context.Context, url string, body Payload) (Payload, int, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, 0, &PayloadError{Reason: "encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, 0, &APIError{Reason: "request failed", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	t.mu.RLock()
	client := t.client
	t.mu.RUnlock()

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, &APIError{Reason: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &APIError{Reason: "request failed", Cause: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, resp.StatusCode, &APIError{
			Reason: "request failed",
			Cause:  fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(respBody)),
		}
	}

	var out Payload
	if err := json.Unmarshal(respBody, &out); err != nil || out == nil {
		return nil, resp.StatusCode, &APIError{Reason: "invalid response", Cause: err}
	}
	return out, resp.StatusCode, nil
}

func newHTTPClient(cfg TransportConfig) *http.Client {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			DialContext: dialer.DialContext,
			TLSClientConfig: &tls.Config{
				MinVersion:         cfg.MinTLSVersion,
				InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // opt-in for stage hosts
			},
			TLSHandshakeTimeout: cfg.ConnectTimeout,
		},
	}
}
