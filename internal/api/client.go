// Package api is the REST client for the student backend.
//
// It wraps the five endpoints under {apiBase}/Student and nothing else:
// no caching and no retries. State handling lives in internal/service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/students-client/internal/types"
)

// RequestIDHeader carries a per-call id so client and server logs can be
// matched up.
const RequestIDHeader = "X-Request-ID"

const maxBodySize = 8 << 20

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for every call.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the round-trip timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// Client talks to {apiBase}/Student.
type Client struct {
	students   *url.URL
	httpClient *http.Client
	headers    http.Header
	log        *slog.Logger
}

// New creates a Client for the given API base, e.g.
// "https://localhost:7139/api".
func New(apiBase string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiBase) == "" {
		return nil, errors.New("api: base URL is required")
	}
	base, err := url.Parse(apiBase)
	if err != nil {
		return nil, fmt.Errorf("api: invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api: base URL %q must be absolute", apiBase)
	}

	c := &Client{
		students:   base.JoinPath("Student"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		headers:    make(http.Header),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the collection URL, {apiBase}/Student.
func (c *Client) BaseURL() string {
	return c.students.String()
}

// List calls GET /Student.
func (c *Client) List(ctx context.Context) ([]types.Student, error) {
	var out []types.Student
	if err := c.do(ctx, http.MethodGet, c.students, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []types.Student{}
	}
	return out, nil
}

// Get calls GET /Student/{id}.
func (c *Client) Get(ctx context.Context, id int64) (types.Student, error) {
	return c.record(ctx, http.MethodGet, c.item(id), nil)
}

// Create calls POST /Student and returns the stored record with its
// server-assigned id.
func (c *Client) Create(ctx context.Context, in types.CreateStudentInput) (types.Student, error) {
	return c.record(ctx, http.MethodPost, c.students, in)
}

// record runs a call whose response must be one student. A JSON null
// body counts as missing.
func (c *Client) record(ctx context.Context, method string, u *url.URL, body any) (types.Student, error) {
	var out *types.Student
	if err := c.do(ctx, method, u, body, &out); err != nil {
		return types.Student{}, err
	}
	if out == nil {
		return types.Student{}, fmt.Errorf("api: %s %s: null response body", method, u.Path)
	}
	return *out, nil
}

// Update calls PUT /Student/{id}. The response body is ignored.
func (c *Client) Update(ctx context.Context, id int64, in types.CreateStudentInput) error {
	return c.do(ctx, http.MethodPut, c.item(id), in, nil)
}

// Delete calls DELETE /Student/{id}.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.item(id), nil, nil)
}

func (c *Client) item(id int64) *url.URL {
	return c.students.JoinPath(strconv.FormatInt(id, 10))
}

// do sends one request and decodes a 2xx JSON body into out (when out is
// non-nil). Non-2xx responses become *Error.
func (c *Client) do(ctx context.Context, method string, u *url.URL, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	for k, values := range c.headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("api request failed",
			slog.String("method", method),
			slog.String("url", u.String()),
			slog.String("request_id", reqID),
			slog.String("error", err.Error()))
		return fmt.Errorf("api: %s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		slog.String("method", method),
		slog.String("url", u.String()),
		slog.String("request_id", reqID),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("api: read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, data, reqID)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		if out != nil {
			return fmt.Errorf("api: %s %s: empty response body", method, u.Path)
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
