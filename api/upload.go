package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const uploadEndpoint = "http://api.cloudinary.com/v1_1/%s/image/upload"

// Uploader pushes avatar images to the image-hosting provider and returns
// their public URLs.
type Uploader struct {
	cloudName    string
	uploadPreset string
	httpClient   *http.Client
	endpoint     string
}

func NewUploader(cloudName, uploadPreset string) *Uploader {
	return &Uploader{
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		endpoint:     fmt.Sprintf(uploadEndpoint, cloudName),
	}
}

// UploadImage posts the file as multipart form data with the unsigned upload
// preset and returns the hosted image URL.
func (u *Uploader) UploadImage(path string) (string, error) {
	if u.cloudName == "" || u.uploadPreset == "" {
		return "", fmt.Errorf("image host is not configured")
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := form.WriteField("upload_preset", u.uploadPreset); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := form.WriteField("cloud_name", u.cloudName); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequest(http.MethodPost, u.endpoint, pr)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("upload failed: no url in response")
	}
	return result.URL, nil
}
