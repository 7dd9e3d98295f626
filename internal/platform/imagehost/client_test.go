package imagehost

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "covers", r.FormValue("upload_preset"))
		assert.Equal(t, "books", r.FormValue("folder"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cover.jpg", header.Filename)
		contents, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(contents))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://img.example.com/books/cover.jpg"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "covers")
	url, err := client.Upload(context.Background(), "cover.jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/books/cover.jpg", url)
}

func TestClient_Upload_HostError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Upload preset not found"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "missing-preset")
	_, err := client.Upload(context.Background(), "cover.jpg", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Upload preset not found")
}

func TestClient_Upload_MissingURLInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "covers")
	_, err := client.Upload(context.Background(), "cover.jpg", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secure_url")
}
