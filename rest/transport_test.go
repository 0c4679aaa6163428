package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestHTTPTransportDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(nil, nil)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := tr.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, resp.Status)
	require.JSONEq(t, `{"success":false}`, string(resp.Body))
}

func TestHTTPTransportNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	tr := NewHTTPTransport(nil, nil)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = tr.Do(req)
	require.ErrorIs(t, err, ErrNetwork)
}

func TestHTTPTransportLimiterAbort(t *testing.T) {
	// Zero-rate limiter never admits; a cancelled context surfaces as a
	// network failure rather than a distinct kind.
	tr := NewHTTPTransport(nil, rate.NewLimiter(0, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://127.0.0.1:0/", nil)
	require.NoError(t, err)

	_, err = tr.Do(req)
	require.ErrorIs(t, err, ErrNetwork)
}
