package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

const maxErrorBody = 64 << 10

// Client is the shared REST transport. It owns the attached bearer token and
// runs every response through the registered auth failure policy.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	retry   RetryPolicy

	mu     sync.RWMutex
	token  string
	policy *AuthFailurePolicy
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRetry sets the retry policy for idempotent requests
func WithRetry(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// New creates a transport rooted at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 15 * time.Second},
		retry:   DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// SetToken attaches a bearer token to all subsequent requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the attached bearer token
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the attached bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Use registers the auth failure policy. Only one policy is active.
func (c *Client) Use(policy *AuthFailurePolicy) {
	c.mu.Lock()
	c.policy = policy
	c.mu.Unlock()
}

// Get issues a GET. Query values that are empty are dropped.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Do sends one API request and decodes a 2xx JSON body into out (if non-nil).
// Non-2xx responses become *domain.APIError. GETs are retried per the retry
// policy; the auth failure policy sees the final response only.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
	}

	attempt := func() (*http.Request, error) {
		req, err := c.newRequest(ctx, method, path, query, payload)
		if err != nil {
			return nil, err
		}
		return req, c.send(req, out)
	}

	var req *http.Request
	var err error
	if method == http.MethodGet && c.retry.enabled() && !c.exempt(method, path) {
		req, err = c.retry.run(ctx, attempt)
	} else {
		req, err = attempt()
	}

	if req != nil && err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Unauthorized() {
			c.currentPolicy().Handle(ctx, method, path)
		}
	}
	return err
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, payload []byte) (*http.Request, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if q := compact(query); len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(req, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// decodeError extracts the server's message field, falling back to "error"
func decodeError(req *http.Request, resp *http.Response) error {
	apiErr := &domain.APIError{Status: resp.StatusCode, Method: req.Method, Path: req.URL.Path}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}

func (c *Client) currentPolicy() *AuthFailurePolicy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.policy
}

func (c *Client) exempt(method, path string) bool {
	p := c.currentPolicy()
	if p == nil || p.Exempt == nil {
		return false
	}
	return p.Exempt(method, path)
}

func compact(q url.Values) url.Values {
	out := url.Values{}
	for k, vs := range q {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				out.Add(k, v)
			}
		}
	}
	return out
}
