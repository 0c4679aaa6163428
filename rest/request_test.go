package rest

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildResolvesURLAndQuery(t *testing.T) {
	b := NewRequestBuilder("https://api.example.com/")

	req, err := b.Build(context.Background(), Endpoint{
		Path:   "/events",
		Method: MethodGet,
		Query:  map[string]string{"code": "XK42", "limit": "20"},
	}, "")
	require.NoError(t, err)
	require.Equal(t, "GET", req.Method)
	require.Equal(t, "https", req.URL.Scheme)
	require.Equal(t, "/events", req.URL.Path)
	require.Equal(t, "XK42", req.URL.Query().Get("code"))
	require.Equal(t, "20", req.URL.Query().Get("limit"))
}

func TestBuildOmittedQueryYieldsNoQueryString(t *testing.T) {
	b := NewRequestBuilder("https://api.example.com")

	req, err := b.Build(context.Background(), Endpoint{Path: "/me", Method: MethodGet}, "")
	require.NoError(t, err)
	require.Empty(t, req.URL.RawQuery)
}

func TestBuildInvalidBaseURL(t *testing.T) {
	b := NewRequestBuilder("not-a-url")

	_, err := b.Build(context.Background(), Endpoint{Path: "/me", Method: MethodGet}, "")
	require.ErrorIs(t, err, ErrInvalidURL)
}

func TestBuildBodyRoundTrip(t *testing.T) {
	type createEvent struct {
		Name     string `json:"name"`
		Capacity int    `json:"capacity"`
	}
	in := createEvent{Name: "GopherCon Mixer", Capacity: 120}

	b := NewRequestBuilder("https://api.example.com")
	req, err := b.Build(context.Background(), Endpoint{
		Path:   "/events",
		Method: MethodPost,
		Body:   in,
	}, "")
	require.NoError(t, err)
	require.Equal(t, "application/json", req.Header.Get("Content-Type"))

	sent, err := io.ReadAll(req.Body)
	require.NoError(t, err)

	var out createEvent
	require.NoError(t, json.Unmarshal(sent, &out))
	require.Equal(t, in, out)
}

func TestBuildEncodingFailure(t *testing.T) {
	b := NewRequestBuilder("https://api.example.com")

	_, err := b.Build(context.Background(), Endpoint{
		Path:   "/events",
		Method: MethodPost,
		Body:   map[string]any{"bad": make(chan int)},
	}, "")
	require.ErrorIs(t, err, ErrEncoding)
}

func TestBuildInjectsBearerToken(t *testing.T) {
	b := NewRequestBuilder("https://api.example.com")

	req, err := b.Build(context.Background(), Endpoint{Path: "/me", Method: MethodGet}, "tok-123")
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))

	req, err = b.Build(context.Background(), Endpoint{Path: "/login", Method: MethodPost}, "")
	require.NoError(t, err)
	require.Empty(t, req.Header.Get("Authorization"))
}

func TestBuildMergesHeadersAndRequestID(t *testing.T) {
	b := NewRequestBuilder("https://api.example.com")

	req, err := b.Build(context.Background(), Endpoint{
		Path:    "/me",
		Method:  MethodGet,
		Headers: map[string]string{"X-Device-ID": "dev-9", RequestIDHeader: "fixed-id"},
	}, "")
	require.NoError(t, err)
	require.Equal(t, "dev-9", req.Header.Get("X-Device-ID"))
	require.Equal(t, "fixed-id", req.Header.Get(RequestIDHeader))

	req, err = b.Build(context.Background(), Endpoint{Path: "/me", Method: MethodGet}, "")
	require.NoError(t, err)
	require.NotEmpty(t, req.Header.Get(RequestIDHeader), "builder generates a request ID when none is set")
}
