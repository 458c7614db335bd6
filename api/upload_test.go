package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("fake-png-bytes"), 0o600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		assert.Equal(t, "unsigned-avatars", r.FormValue("upload_preset"))
		assert.Equal(t, "demo-cloud", r.FormValue("cloud_name"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "avatar.png", header.Filename)

		json.NewEncoder(w).Encode(map[string]string{"url": "http://img.example.com/avatar.png"})
	}))
	defer srv.Close()

	uploader := NewUploader("demo-cloud", "unsigned-avatars")
	uploader.endpoint = srv.URL

	url, err := uploader.UploadImage(imagePath)
	require.NoError(t, err)
	assert.Equal(t, "http://img.example.com/avatar.png", url)
}

func TestUploadImageUnconfigured(t *testing.T) {
	uploader := NewUploader("", "")
	_, err := uploader.UploadImage("whatever.png")
	assert.Error(t, err)
}

func TestUploadImageMissingURL(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("x"), 0o600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "denied"})
	}))
	defer srv.Close()

	uploader := NewUploader("demo-cloud", "unsigned-avatars")
	uploader.endpoint = srv.URL

	_, err := uploader.UploadImage(imagePath)
	assert.Error(t, err)
}
