package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
)

// UploadFile stores one file as a multipart upload. sessionID binds
// the file to a conversation and description annotates it; both may be
// empty. The service limits uploads to 100 MB.
func (c *Client) UploadFile(ctx context.Context, filename string, contents io.Reader, sessionID, description string) (*FileInfo, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("api: upload file: %w", err)
	}
	if _, err := io.Copy(part, contents); err != nil {
		return nil, fmt.Errorf("api: upload file: read contents: %w", err)
	}
	if sessionID != "" {
		if err := mw.WriteField("session_id", sessionID); err != nil {
			return nil, fmt.Errorf("api: upload file: %w", err)
		}
	}
	if description != "" {
		if err := mw.WriteField("description", description); err != nil {
			return nil, fmt.Errorf("api: upload file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("api: upload file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/file/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("api: upload file: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	// Large uploads can outlive the request timeout; the stream client
	// leaves the duration to ctx.
	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: upload file: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.parseErrorResponse("upload file", resp)
	}

	var out FileInfo
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("api: upload file: decode response: %w", err)
	}
	return &out, nil
}

// DownloadFile opens the contents behind a stored file's URL, the
// "/file/download/..." path the service put in FileInfo.FileURL. The
// caller must close the returned body.
func (c *Client) DownloadFile(ctx context.Context, fileURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("api: download file: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: download file: request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, c.parseErrorResponse("download file", resp)
	}
	return resp.Body, nil
}

// ListFiles returns the authenticated user's uploaded files.
func (c *Client) ListFiles(ctx context.Context) ([]FileInfo, error) {
	var out []FileInfo
	if err := c.doJSON(ctx, "list files", http.MethodGet, "/file/list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteFile removes one uploaded file.
func (c *Client) DeleteFile(ctx context.Context, id string) error {
	path := fmt.Sprintf("/file/%s", url.PathEscape(id))
	return c.doJSON(ctx, "delete file", http.MethodDelete, path, nil, nil)
}

// FileStats returns aggregate storage numbers for the user.
func (c *Client) FileStats(ctx context.Context) (*FileStats, error) {
	var out FileStats
	if err := c.doJSON(ctx, "file stats", http.MethodGet, "/file/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
