package rest

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single round trip when no custom http.Client is
// supplied. Timeouts surface as [ErrNetwork], not a distinct kind.
const DefaultTimeout = 30 * time.Second

// Response is the raw outcome of one executed request.
type Response struct {
	Status int
	Body   []byte
}

// Transport executes a built request. The production implementation is
// [HTTPTransport]; tests substitute fakes.
type Transport interface {
	Do(req *http.Request) (*Response, error)
}

// HTTPTransport executes requests over net/http, optionally gated by a
// client-side rate limiter so bursts of UI-driven calls do not hammer the
// backend.
type HTTPTransport struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPTransport creates a transport. A nil client gets a default one
// with [DefaultTimeout] and protocol-level caching left untouched. A nil
// limiter disables throttling.
func NewHTTPTransport(client *http.Client, limiter *rate.Limiter) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPTransport{client: client, limiter: limiter}
}

// Do executes the request and returns status plus raw body. Every
// transport-level failure (DNS, timeout, reset, limiter wait aborted by
// context) is wrapped in [ErrNetwork].
func (t *HTTPTransport) Do(req *http.Request) (*Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	return &Response{Status: resp.StatusCode, Body: body}, nil
}
