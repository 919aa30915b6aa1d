// Package media uploads images to Cloudinary using unsigned preset uploads.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

// Client uploads media through the Cloudinary unsigned upload endpoint.
type Client struct {
	httpClient *http.Client
	uploadURL  string
	preset     string
}

// NewClient creates a Cloudinary upload client for the given cloud name and
// unsigned upload preset.
func NewClient(cloudName, preset string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		uploadURL:  fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/upload", cloudName),
		preset:     preset,
	}
}

// UploadDataURI uploads a base64 data URI and returns the hosted secure URL.
// Cloudinary accepts the data URI directly as the file field.
func (c *Client) UploadDataURI(ctx context.Context, data string) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("file", data); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := form.WriteField("upload_preset", c.preset); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload rejected with status %d", resp.StatusCode)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload response missing secure_url")
	}

	return result.SecureURL, nil
}
