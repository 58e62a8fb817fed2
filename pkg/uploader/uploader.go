package uploader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Uploader sends a binary buffer to a remote image host and returns the
// public URL it is served from.
type Uploader interface {
	Upload(data []byte, folder string) (string, error)
}

// Config holds the image host endpoint and its API key.
type Config struct {
	URL    string
	APIKey string
}

// HTTPUploader posts images as multipart/form-data to a hosted image service.
type HTTPUploader struct {
	cfg    Config
	client *http.Client
}

// NewHTTPUploader creates an uploader against the configured image host.
func NewHTTPUploader(cfg Config) *HTTPUploader {
	return &HTTPUploader{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload sends data to the image host and returns the public URL.
func (u *HTTPUploader) Upload(data []byte, folder string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", "upload")
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.WriteField("folder", folder); err != nil {
		return "", fmt.Errorf("failed to write folder field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, u.cfg.URL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+u.cfg.APIKey)

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("image host returned status %d: %s", resp.StatusCode, payload)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("image host returned an empty URL")
	}
	return parsed.URL, nil
}

// Fake is an in-memory Uploader for tests and local development. It records
// every upload and returns a deterministic URL.
type Fake struct {
	Uploads []string // folders, in call order
	Err     error
}

// Upload implements Uploader.
func (f *Fake) Upload(data []byte, folder string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.Uploads = append(f.Uploads, folder)
	return fmt.Sprintf("https://images.example.com/%s/%d", folder, len(f.Uploads)), nil
}
