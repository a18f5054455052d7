package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/outreachlabs/agent-task-sdk-go/pkg/task"
)

const (
	// DefaultBaseURL is the default base URL for the platform API
	DefaultBaseURL = "https://app.outreachlabs.io/api"

	// DefaultTimeout is the default timeout for a single HTTP request
	DefaultTimeout = 30 * time.Second
)

// ErrContextNotFound indicates the polled context id is unknown or expired.
// The runner reclassifies this instead of treating it as a transport error.
var ErrContextNotFound = errors.New("context not found")

// Client talks to the platform's task endpoints
type Client struct {
	// Configuration
	BaseURL    string
	Token      string
	HTTPClient *http.Client

	// Internal state
	mu sync.RWMutex
}

// NewClient creates a new client with default settings
func NewClient(token string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithToken sets the bearer token for the client
func (c *Client) WithToken(token string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Token = token
	return c
}

// WithHTTPClient sets the HTTP client
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.HTTPClient = client
	return c
}

// SetBaseURL sets the base URL for the client
func (c *Client) SetBaseURL(baseURL string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BaseURL = baseURL
	return c
}

// Submit sends a task request to the run endpoint and returns the immediate
// result. Exactly one request is issued; no retries.
func (c *Client) Submit(ctx context.Context, req task.Request) (*task.SubmitResult, error) {
	requestBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint, err := c.resolve("run")
	if err != nil {
		return nil, err
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	c.applyHeaders(httpRequest)

	httpResponse, err := c.http().Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = httpResponse.Body.Close()
	}()

	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// The backend reports rejections in-band with a status envelope, so a
	// non-2xx response with a parseable envelope is still a valid result.
	var result task.SubmitResult
	if err := json.Unmarshal(responseBody, &result); err != nil || result.Status == "" {
		if httpResponse.StatusCode >= 400 {
			return nil, fmt.Errorf("http %d: %s", httpResponse.StatusCode, string(responseBody))
		}
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal submit result: %w", err)
		}
		return nil, fmt.Errorf("submit result has no status")
	}
	return &result, nil
}

// Context fetches the polled context resource by id. Returns
// ErrContextNotFound when the id is unknown or expired.
func (c *Client) Context(ctx context.Context, contextID string) (*task.Context, error) {
	if contextID == "" {
		return nil, fmt.Errorf("no context id provided")
	}

	endpoint, err := c.resolve("context/" + url.PathEscape(contextID))
	if err != nil {
		return nil, err
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	c.applyHeaders(httpRequest)

	httpResponse, err := c.http().Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = httpResponse.Body.Close()
	}()

	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResponse.StatusCode == http.StatusNotFound || httpResponse.StatusCode == http.StatusGone {
		return nil, fmt.Errorf("context %s: %w", contextID, ErrContextNotFound)
	}
	if httpResponse.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d: %s", httpResponse.StatusCode, string(responseBody))
	}

	var polled task.Context
	if err := json.Unmarshal(responseBody, &polled); err != nil {
		return nil, fmt.Errorf("failed to unmarshal context: %w", err)
	}
	return &polled, nil
}

// resolve joins a path onto the configured base URL
func (c *Client) resolve(path string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	rel, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	if base.Path != "" && base.Path[len(base.Path)-1] != '/' {
		base.Path += "/"
	}
	return base.ResolveReference(rel).String(), nil
}

func (c *Client) applyHeaders(req *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

func (c *Client) http() *http.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.HTTPClient
}
