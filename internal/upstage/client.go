package upstage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"docpilot/internal/config"
	"docpilot/internal/metrics"
	"docpilot/internal/port"
	"docpilot/pkg/logger"
)

// Client performs single-attempt vendor calls. There is no retry, backoff or
// circuit breaker: a failure is returned to the caller immediately.
type Client struct {
	client  *http.Client
	metrics *metrics.Metrics
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithMetrics records call outcomes and latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a gateway client with the configured request timeout.
func NewClient(cfg *config.UpstageConfig, opts ...Option) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	c := &Client{client: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ port.VendorGateway = (*Client)(nil)

// Call sends req and returns the raw JSON body of a 2xx response.
func (c *Client) Call(ctx context.Context, req *port.VendorRequest) (json.RawMessage, error) {
	start := time.Now()
	body, err := c.call(ctx, req)
	c.observe(ctx, req, start, err)
	return body, err
}

func (c *Client) call(ctx context.Context, req *port.VendorRequest) (json.RawMessage, error) {
	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Capability: req.Capability, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(req, resp, respBody)
	}

	if !json.Valid(respBody) {
		return nil, &TransportError{
			Capability: req.Capability,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 500),
			Err:        fmt.Errorf("response is not valid JSON"),
		}
	}
	return json.RawMessage(respBody), nil
}

func (c *Client) do(ctx context.Context, req *port.VendorRequest) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vals := range req.Header {
		for _, v := range vals {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Capability: req.Capability, Err: fmt.Errorf("calling %s: %w", req.Capability, err)}
	}
	return resp, nil
}

func statusError(req *port.VendorRequest, resp *http.Response, body []byte) *TransportError {
	te := &TransportError{
		Capability: req.Capability,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		te.RetryAfter = time.Duration(ParseRetryAfterHeader(resp.Header.Get("Retry-After"))) * time.Second
	}
	return te
}

func (c *Client) observe(ctx context.Context, req *port.VendorRequest, start time.Time, err error) {
	elapsed := time.Since(start)
	outcome := metrics.OutcomeSucceeded
	if err != nil {
		outcome = metrics.OutcomeFailed
		logger.Warn(ctx, "vendor call failed",
			"capability", req.Capability,
			"latency_ms", elapsed.Milliseconds(),
			"error", truncate(err.Error(), 500),
		)
	} else {
		logger.Debug(ctx, "vendor call succeeded",
			"capability", req.Capability,
			"latency_ms", elapsed.Milliseconds(),
		)
	}
	c.metrics.ObserveVendorCall(string(req.Capability), outcome, elapsed)
}
