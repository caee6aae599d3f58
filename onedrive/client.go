// Package onedrive uploads files through the Microsoft Graph drive API.
package onedrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const GraphURL = "https://graph.microsoft.com/v1.0"

// APIError is a non-success Graph response.
type APIError struct {
	StatusCode int
	Message    string
	RetryAfter string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient talks to baseURL, or to the public Graph endpoint when baseURL is empty.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = GraphURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// UploadURL builds the path-addressed simple upload endpoint.
// Folder and file name are each escaped as a single path segment.
func (c *Client) UploadURL(folderPath, fileName string) string {
	return fmt.Sprintf("%s/me/drive/root:/%s/%s:/content",
		c.baseURL, url.PathEscape(folderPath), url.PathEscape(fileName))
}

// Upload PUTs content to folderPath/fileName, replacing any existing file.
func (c *Client) Upload(ctx context.Context, accessToken, folderPath, fileName, contentType string, content []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.UploadURL(folderPath, fileName), bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    graphErrorMessage(body, "Failed to upload to OneDrive"),
		RetryAfter: resp.Header.Get("Retry-After"),
	}
}

// graphErrorMessage extracts error.message from a Graph error body.
func graphErrorMessage(body []byte, fallback string) string {
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error.Message == "" {
		return fallback
	}
	return payload.Error.Message
}
