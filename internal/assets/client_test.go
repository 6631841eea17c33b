package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("X-Upload-Request-Id"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cat.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"assets": [{"id": "asset-1"}, {"id": "asset-2"}]}`))
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, 5*time.Second)
	require.NoError(t, err)

	ids, err := client.Upload(context.Background(), "cat.png", []byte{0x89, 0x50, 0x4e, 0x47})
	require.NoError(t, err)
	assert.Equal(t, []string{"asset-1", "asset-2"}, ids)
}

func TestUploadNoIdentifiers(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"assets": []}`))
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, 5*time.Second)
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), "cat.png", []byte("data"))
	assert.ErrorContains(t, err, "no asset identifiers")
}

func TestUploadServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, 5*time.Second)
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), "cat.png", []byte("data"))
	assert.ErrorContains(t, err, "status 503")
}

func TestNewClientEmptyEndpoint(t *testing.T) {
	_, err := NewClient("", 5*time.Second)
	assert.Error(t, err)
}
