package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/tripcart/internal/client/metrics"
	"github.com/dmitrijs2005/tripcart/internal/logging"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxResponseBody = 4 << 20
	maxErrorBody    = 64 << 10
)

// HTTPClient is the JSON-over-HTTP Client.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	timeout time.Duration
	metrics *metrics.Metrics
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets the deadline applied to calls whose context has none.
// Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for baseURL (e.g. "https://host/api").
// tokens may be nil, in which case no Authorization header is ever sent.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request describes one API call. route is the path template used as the
// metrics label; path is the concrete, already escaped path.
type request struct {
	method string
	route  string
	path   string
	query  url.Values
	body   any
	out    any
	noAuth bool
}

// Do sends one request and decodes a JSON response into out (which may be
// nil to discard it). body, when non-nil, is encoded as JSON.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, request{method: method, route: path, path: path, body: body, out: out})
}

func (c *HTTPClient) do(ctx context.Context, r request) error {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}
	reqID := req.Header.Get(RequestIDHeader)
	log := c.log.With("method", r.method, "route", r.route, "request_id", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.Observe(r.method, r.route, 0, time.Since(start))
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	limit := int64(maxResponseBody)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		limit = maxErrorBody
	}
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, limit))
	c.metrics.Observe(r.method, r.route, resp.StatusCode, time.Since(start))
	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp, data)
	}
	if readErr != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, readErr)
	}

	if r.out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return malformed("empty body")
	}
	if err := json.Unmarshal(data, r.out); err != nil {
		return malformed("decode: %v", err)
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, r request) (*http.Request, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	if r.noAuth {
		return req, nil
	}
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *HTTPClient) token(ctx context.Context) (string, error) {
	if token, ok := tokenFromContext(ctx); ok {
		return token, nil
	}
	if c.tokens == nil {
		return "", nil
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}
