package imghost

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/ishoep/pixelpage-backend/pkg/config"
)

const responseBodyReadLimit int64 = 64 * 1024

// Placeholder image URLs used when an upload cannot be completed.
const (
	FallbackPhoneURL     = "https://i.ibb.co/9hLBbbc/phone-default.jpg"
	FallbackTabletURL    = "https://i.ibb.co/CWjYGsR/tablet-default.jpg"
	FallbackLaptopURL    = "https://i.ibb.co/h84WDgZ/laptop-default.jpg"
	FallbackAccessoryURL = "https://i.ibb.co/5xpPP1N/accessory-default.jpg"
)

var errAPIKeyRequired = errors.New("image host api key is required")

// Client wraps the ImgBB-style upload API used for listing photos.
type Client struct {
	httpClient *http.Client
	uploadURL  string
	apiKey     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUploadURL overrides the configured upload endpoint.
func WithUploadURL(uploadURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(uploadURL)
		if trimmed != "" {
			c.uploadURL = trimmed
		}
	}
}

// NewClient builds the upload client from configuration.
func NewClient(cfg config.ImgBBConfig, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(cfg.APIKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	timeout := cfg.UploadTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		apiKey:     trimmedKey,
		uploadURL:  strings.TrimSpace(cfg.UploadURL),
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.uploadURL == "" {
		return nil, errors.New("upload url is required")
	}

	return client, nil
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload sends the image bytes to the hosting API and returns the public URL.
// There is no retry: callers fall back to a placeholder on any failure.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("image data is empty")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("key", c.apiKey); err != nil {
		return "", fmt.Errorf("write key field: %w", err)
	}
	if filename != "" {
		if err := writer.WriteField("name", filename); err != nil {
			return "", fmt.Errorf("write name field: %w", err)
		}
	}
	if err := writer.WriteField("image", base64.StdEncoding.EncodeToString(data)); err != nil {
		return "", fmt.Errorf("write image field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if !parsed.Success || parsed.Data.URL == "" {
		return "", errors.New("upload response missing url")
	}
	return parsed.Data.URL, nil
}

// FallbackURL picks a placeholder image matching the listing's name or category.
func FallbackURL(name, category string) string {
	haystack := strings.ToLower(name + " " + category)
	switch {
	case strings.Contains(haystack, "планшет") || strings.Contains(haystack, "tablet") || strings.Contains(haystack, "ipad"):
		return FallbackTabletURL
	case strings.Contains(haystack, "ноутбук") || strings.Contains(haystack, "laptop") || strings.Contains(haystack, "macbook"):
		return FallbackLaptopURL
	case strings.Contains(haystack, "аксессуар") || strings.Contains(haystack, "accessory"):
		return FallbackAccessoryURL
	default:
		return FallbackPhoneURL
	}
}
