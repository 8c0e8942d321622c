// Package api provides a client for the learning feed backend.
package api

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

	"github.com/tesso57/learnfeed/internal/domain/learning"
)

const defaultTimeout = 10 * time.Second

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// Client talks to the feed backend over HTTP.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	timeout    time.Duration
}

// NewClient creates a client rooted at baseURL (for example "http://host/api").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchPage retrieves one feed page for userID starting at cursor.
func (c *Client) FetchPage(ctx context.Context, userID string, cursor learning.Cursor) (learning.Page, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("cursor", string(cursor))

	var resp feedResponse
	if err := c.doJSON(ctx, http.MethodGet, "/feed?"+q.Encode(), nil, &resp); err != nil {
		return learning.Page{}, err
	}
	return resp.toPage(), nil
}

// Track submits one interaction record.
func (c *Client) Track(ctx context.Context, rec learning.Interaction) error {
	return c.doJSON(ctx, http.MethodPost, "/track", rec, nil)
}

// Seed asks the backend to populate sample content.
func (c *Client) Seed(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/seed", nil, nil)
}

// Interests returns the topic scores for userID.
func (c *Client) Interests(ctx context.Context, userID string) (learning.InterestProfile, error) {
	profile := learning.InterestProfile{}
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard/interests/"+url.PathEscape(userID), nil, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RecentActivity returns the newest interactions across all users.
func (c *Client) RecentActivity(ctx context.Context) ([]learning.Activity, error) {
	var rows []activityPayload
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard/recent-activity", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]learning.Activity, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toActivity())
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: strings.SplitN(path, "?", 2)[0], Code: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", path, err)
	}
	return nil
}
