package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/attendly/attendly-go/rest"
)

func TestUpload(t *testing.T) {
	var gotPath, gotAuth, gotType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "storage-key", nil)
	err := c.Upload(context.Background(), "avatars", "u1.png", []byte{0x89, 'P', 'N', 'G'}, "image/png")
	require.NoError(t, err)

	require.Equal(t, "/object/avatars/u1.png", gotPath)
	require.Equal(t, "Bearer storage-key", gotAuth)
	require.Equal(t, "image/png", gotType)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, gotBody)
}

func TestUploadUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-key", nil)
	err := c.Upload(context.Background(), "avatars", "u1.png", nil, "image/png")
	require.ErrorIs(t, err, rest.ErrUnauthorized)
}

func TestUploadErrorCarriesStorageMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte(`{"message":"object exceeds bucket limit"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "key", nil)
	err := c.Upload(context.Background(), "avatars", "huge.png", nil, "image/png")
	require.Error(t, err)
	require.Contains(t, err.Error(), "object exceeds bucket limit")
}

func TestPublicURL(t *testing.T) {
	c := New("https://files.example.com/", "key", nil)
	require.Equal(t,
		"https://files.example.com/object/public/avatars/u1.png",
		c.PublicURL("avatars", "u1.png"))
}
