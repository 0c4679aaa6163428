package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request correlation ID. The builder
// generates one when the endpoint does not already set it.
const RequestIDHeader = "X-Request-ID"

// RequestBuilder turns an [Endpoint] plus the ambient bearer token into a
// fully-formed *http.Request. It performs no I/O.
type RequestBuilder struct {
	baseURL string
}

// NewRequestBuilder creates a builder for the given base URL. A trailing
// slash on the base URL is ignored.
func NewRequestBuilder(baseURL string) *RequestBuilder {
	return &RequestBuilder{baseURL: strings.TrimRight(baseURL, "/")}
}

// Build resolves baseURL+path, encodes query and body, merges endpoint
// headers, and injects "Authorization: Bearer <token>" when token is
// non-empty. Failures are [ErrInvalidURL] or [ErrEncoding]; nothing is
// recovered locally.
func (b *RequestBuilder) Build(ctx context.Context, ep Endpoint, token string) (*http.Request, error) {
	raw := b.baseURL + "/" + strings.TrimLeft(ep.Path, "/")

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, raw)
	}

	if len(ep.Query) > 0 {
		q := u.Query()
		for k, v := range ep.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var body *bytes.Reader
	if ep.Body != nil {
		encoded, err := json.Marshal(ep.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		body = bytes.NewReader(encoded)
	}

	var req *http.Request
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, string(ep.Method), u.String(), body)
	} else {
		req, err = http.NewRequestWithContext(ctx, string(ep.Method), u.String(), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	for k, v := range ep.Headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}

	return req, nil
}
