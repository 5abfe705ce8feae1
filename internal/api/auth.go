package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a bearer token. The token is not
// attached to the client automatically; call SetToken with the result.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, "login", http.MethodPost, "/user/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns a bearer token for it.
func (c *Client) Register(ctx context.Context, reg RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, "register", http.MethodPost, "/user/register", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the authenticated user's record.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.doJSON(ctx, "me", http.MethodGet, "/user/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
