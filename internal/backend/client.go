package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pders01/adfind/internal/ads"
	"github.com/pders01/adfind/internal/config"
	"github.com/pders01/adfind/internal/validation"
)

const (
	refreshPath     = "/search"
	queryParam      = "q"
	RequestIDHeader = "X-Request-ID"

	defaultUserAgent = "adfind/1.0 (classifieds search; github.com/pders01/adfind)"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.Code)
}

type Client struct {
	base      *url.URL
	client    *http.Client
	userAgent string
}

func NewClient(cfg *config.Config) (*Client, error) {
	base, err := validation.NewAPIValidator().ValidateBaseURL(cfg.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	ua := cfg.API.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	return &Client{
		base: base,
		client: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		userAgent: ua,
	}, nil
}

// BaseURL is the normalized backend root, without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Refresh asks the backend to re-index from the source for q. The body is
// drained and discarded.
func (c *Client) Refresh(ctx context.Context, q string) error {
	resp, err := c.get(ctx, refreshPath, q)
	if err != nil {
		return fmt.Errorf("refreshing index: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !ok(resp.StatusCode) {
		return &StatusError{Code: resp.StatusCode, URL: resp.Request.URL.String()}
	}
	return nil
}

// Query runs q against the endpoint for mode. It returns as soon as response
// headers arrive; the caller owns the body and checks the status.
func (c *Client) Query(ctx context.Context, mode ads.Mode, q string) (*http.Response, error) {
	resp, err := c.get(ctx, mode.Endpoint(), q)
	if err != nil {
		return nil, fmt.Errorf("querying %s index: %w", mode, err)
	}
	return resp, nil
}

func (c *Client) endpoint(path, q string) string {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = url.Values{queryParam: {q}}.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, path, q string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, q), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if id := RequestID(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	return c.client.Do(req)
}

func ok(code int) bool {
	return code >= 200 && code < 300
}

// OK reports whether resp carries a 2xx status.
func OK(resp *http.Response) bool {
	return resp != nil && ok(resp.StatusCode)
}

type requestIDKey struct{}

// WithRequestID tags outgoing requests made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
