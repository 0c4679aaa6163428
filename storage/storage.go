package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/attendly/attendly-go/rest"
)

// Client uploads objects and resolves public URLs for one bucket
// namespace. The access key is injected per request and never logged.
type Client struct {
	baseURL   string
	accessKey string
	transport rest.Transport
}

// New creates a storage client. transport may be shared with the API
// client; nil gets a default HTTP transport.
func New(baseURL, accessKey string, transport rest.Transport) *Client {
	if transport == nil {
		transport = rest.NewHTTPTransport(nil, nil)
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		transport: transport,
	}
}

// Upload stores data under bucket/key, replacing any existing object.
func (c *Client) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	url := c.baseURL + "/object/" + bucket + "/" + strings.TrimLeft(key, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", rest.ErrInvalidURL, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.transport.Do(req)
	if err != nil {
		return err
	}

	switch {
	case resp.Status >= 200 && resp.Status <= 299:
		return nil
	case resp.Status == 401:
		return rest.ErrUnauthorized
	default:
		return fmt.Errorf("upload %s/%s failed (status %d): %s", bucket, key, resp.Status, storageMessage(resp.Body))
	}
}

// PublicURL returns the unauthenticated URL for bucket/key. No I/O.
func (c *Client) PublicURL(bucket, key string) string {
	return c.baseURL + "/object/public/" + bucket + "/" + strings.TrimLeft(key, "/")
}

// storageMessage pulls the human-readable message out of a storage error
// body, best-effort.
func storageMessage(body []byte) string {
	var eb struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
	}
	return "no detail"
}
