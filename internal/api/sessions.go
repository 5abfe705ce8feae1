package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListSessions returns the stored conversations for a user.
func (c *Client) ListSessions(ctx context.Context, userID string) ([]Session, error) {
	path := fmt.Sprintf("/session/uid/%s", url.PathEscape(userID))
	var out []Session
	if err := c.doJSON(ctx, "list sessions", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SessionMessages returns the stored transcript of one conversation.
func (c *Client) SessionMessages(ctx context.Context, sessionID string) ([]Message, error) {
	path := fmt.Sprintf("/session/msgs/%s", url.PathEscape(sessionID))
	var out []Message
	if err := c.doJSON(ctx, "session messages", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
