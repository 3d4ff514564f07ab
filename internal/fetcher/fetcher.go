package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"foodsearch/internal/domain"
)

// Fetcher performs one lookup against the search API
type Fetcher interface {
	Fetch(ctx context.Context, searchText string) ([]domain.FoodItem, error)
}

// Client is the HTTP implementation of Fetcher. It keeps no per-call state.
type Client struct {
	httpClient *http.Client
	endpoint   string
	queryParam string
	userAgent  string
	timeout    time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each request. It applies to a copy of the
// http.Client whichever order the options come in; zero keeps the
// client's own timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for endpoint, sending the search text as queryParam
func New(endpoint, queryParam string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		queryParam: queryParam,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Fetch issues exactly one GET for searchText. Errors are *APIError.
func (c *Client) Fetch(ctx context.Context, searchText string) ([]domain.FoodItem, error) {
	reqURL, ok := c.buildURL(searchText)
	if !ok {
		return nil, missingURL()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, missingURL()
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, badResponse(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportFailure(err)
	}

	items, err := decodeItems(body)
	if err != nil {
		return nil, unknown(err)
	}
	return items, nil
}

// buildURL attaches the search text to the endpoint. Existing query
// parameters on the endpoint are kept.
func (c *Client) buildURL(searchText string) (string, bool) {
	u, err := url.Parse(c.endpoint)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", false
	}
	q := u.Query()
	q.Set(c.queryParam, searchText)
	u.RawQuery = q.Encode()
	return u.String(), true
}
