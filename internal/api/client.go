// Package api is the HTTP client for the tutor service: the streaming
// reply endpoint plus the session, persona, file and account surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to one tutor service instance. The zero value is not
// usable; construct with New.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	// streamClient has no overall timeout: a reply stream stays open
	// for as long as the model generates. Cancellation is the caller's
	// context or the transport failing.
	streamClient *http.Client
}

// New creates a Client for baseURL. token may be empty for anonymous
// use; when set it is attached as a bearer header on every request.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		streamClient: &http.Client{},
	}
}

// SetToken replaces the bearer token, e.g. after a login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetTimeout overrides the default timeout on non-streaming requests.
// The streaming client is unaffected.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// doJSON issues a request and decodes a JSON response into out (which
// may be nil for endpoints without a body).
func (c *Client) doJSON(ctx context.Context, operation, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("api: %s: %w", operation, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s: request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseErrorResponse(operation, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("api: %s: decode response: %w", operation, err)
	}
	return nil
}

// parseErrorResponse turns a non-2xx response into an error, preferring
// the service's {"detail": ...} body when present.
func (c *Client) parseErrorResponse(operation string, resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: %s: status %d: read error body: %w", operation, resp.StatusCode, err)
	}

	var apiErr ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Detail != "" {
		return fmt.Errorf("api: %s: status %d: %s", operation, resp.StatusCode, apiErr.Detail)
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("api: %s: status %d", operation, resp.StatusCode)
	}
	return fmt.Errorf("api: %s: status %d: %s", operation, resp.StatusCode, msg)
}
