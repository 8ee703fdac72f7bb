// Package apiclient is the console's pre-configured HTTP client for the
// remote lab data API. A single client carries the base URL, a fixed
// per-request timeout, JSON default headers, and an auth-aware transport
// that stamps the bearer token on every outgoing request and reports 401
// responses to an installed hook. There is no retry policy: every failure
// is terminal for that one call.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Options groups parameters for New.
type Options struct {
	// BaseURL is the lab API root without the /api segment, e.g.
	// "http://localhost:8000".
	BaseURL string

	// Timeout is the fixed per-request timeout. Defaults to 10s.
	Timeout time.Duration

	// HTTPClient overrides the underlying client (tests). Its transport is
	// wrapped by the auth transport.
	HTTPClient *http.Client

	// Logger receives request failure details. Defaults to slog.Default.
	Logger *slog.Logger
}

// Client calls the lab API. Safe for concurrent use.
type Client struct {
	baseURL string
	hc      *http.Client
	logger  *slog.Logger

	hookOnce sync.Once
	mu       sync.RWMutex
	tokenFn  func() string
	on401    func()
}

// New builds a Client. Callers should pass a sanitized base URL.
func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("lab api base url is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	c := &Client{
		baseURL: baseURL,
		logger:  logger,
	}

	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.hc = &http.Client{
		Timeout:   timeout,
		Transport: &authTransport{base: base, client: c},
	}
	return c, nil
}

// SetAuthHooks installs the bearer token source and the 401 handler. The
// installation happens at most once per client lifetime; later calls are
// no-ops.
func (c *Client) SetAuthHooks(tokenFn func() string, on401 func()) {
	c.hookOnce.Do(func() {
		c.mu.Lock()
		c.tokenFn = tokenFn
		c.on401 = on401
		c.mu.Unlock()
	})
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	fn := c.tokenFn
	c.mu.RUnlock()
	if fn == nil {
		return ""
	}
	return fn()
}

func (c *Client) fireUnauthorized() {
	c.mu.RLock()
	fn := c.on401
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// authTransport stamps Authorization on outgoing requests and reports 401
// responses. The hook only fires when a token was actually attached: a 401
// from the login endpoint means rejected credentials, not an expired
// session.
type authTransport struct {
	base   http.RoundTripper
	client *Client
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.client.currentToken()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		t.client.fireUnauthorized()
	}
	return resp, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// getJSON issues a GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// postJSON issues a POST with a JSON body and decodes the response into
// out. out may be nil when the response body is irrelevant.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// putJSON issues a PUT with a JSON body and decodes the response into out.
func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// deletePath issues a DELETE and discards any response body.
func (c *Client) deletePath(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.Error("lab api request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		c.logger.Warn("lab api rejected request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("detail", apiErr.Message),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// doRaw issues a request and returns the raw response for binary endpoints
// (file downloads, Excel exports). Callers own closing the body. Non-2xx
// responses are converted to errors and the body is consumed.
func (c *Client) doRaw(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		drainAndClose(resp.Body)
		return nil, apiErr
	}
	return resp, nil
}

func decodeBody(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}

// drainAndClose consumes the remainder of a response body so the transport
// can reuse the connection.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 1<<16))
	_ = body.Close()
}
