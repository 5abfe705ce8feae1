package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// StreamReply opens the streaming reply endpoint and returns the raw
// body. The caller owns the stream: it must read it to completion (or
// cancel ctx) and close it. The body is a chunked text/event-stream;
// decoding belongs to the stream package.
func (c *Client) StreamReply(ctx context.Context, chatReq ChatRequest) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/chat/stream", chatReq)
	if err != nil {
		return nil, fmt.Errorf("api: stream reply: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: stream reply: request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, c.parseErrorResponse("stream reply", resp)
	}

	return resp.Body, nil
}
