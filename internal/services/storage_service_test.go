// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albanrr9/PharmacyOnline/internal/config"
)

func localStorageConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Host: "localhost",
			Port: "8080",
		},
		AWS: config.AWSConfig{
			S3Bucket: "pharmacy-online-uploads",
			Region:   "us-east-1",
		},
	}
}

// multipartFile builds a real multipart upload so tests exercise the same
// types the handlers hand to the service.
func multipartFile(t *testing.T, field, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	file, header, err := req.FormFile(field)
	require.NoError(t, err)

	return file, header
}

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestNewStorageServiceWithoutCredentials(t *testing.T) {
	service, err := NewStorageService(localStorageConfig())
	require.NoError(t, err)
	require.NotNil(t, service)

	// Without S3 the service works against local URLs: deletes are a no-op
	// and presigning is refused
	assert.NoError(t, service.DeleteFile("products/whatever.png"))
	_, err = service.GeneratePresignedURL("prescriptions/rx.png", 15*time.Minute)
	assert.Error(t, err)
}

func TestUploadFileLocal(t *testing.T) {
	service := NewLocalStorage(localStorageConfig())

	file, header := multipartFile(t, "images", "photo.png", pngHeader)
	defer file.Close()

	result, err := service.UploadFile(file, header, service.GetDefaultUploadOptions("products"))
	require.NoError(t, err)
	assert.Contains(t, result.URL, "http://localhost:8080/uploads/products/")
	assert.Contains(t, result.Key, "products/")
	assert.Equal(t, int64(len(pngHeader)), result.Size)

	// The stored URL round-trips back to the object key
	assert.Equal(t, result.Key, service.KeyFromURL(result.URL))
}

func TestUploadFileRejectsDisallowedExtension(t *testing.T) {
	service := NewLocalStorage(localStorageConfig())

	file, header := multipartFile(t, "images", "script.exe", []byte("MZ"))
	defer file.Close()

	_, err := service.UploadFile(file, header, service.GetDefaultUploadOptions("products"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestValidateImage(t *testing.T) {
	service := NewLocalStorage(localStorageConfig())

	file, _ := multipartFile(t, "images", "photo.png", pngHeader)
	defer file.Close()
	assert.NoError(t, service.ValidateImage(file))

	bad, _ := multipartFile(t, "images", "fake.png", []byte("just text pretending"))
	defer bad.Close()
	assert.Error(t, service.ValidateImage(bad))

	// PDF is accepted for prescription scans
	pdf, _ := multipartFile(t, "prescription", "rx.pdf", []byte("%PDF-1.4 ..."))
	defer pdf.Close()
	assert.NoError(t, service.ValidateImage(pdf))
}

func TestKeyFromURL(t *testing.T) {
	service := NewLocalStorage(localStorageConfig())

	cases := []struct {
		url  string
		want string
	}{
		{"http://localhost:8080/uploads/products/20260828_abcd1234.png", "products/20260828_abcd1234.png"},
		{"https://pharmacy-online-uploads.s3.us-east-1.amazonaws.com/prescriptions/rx.jpg", "prescriptions/rx.jpg"},
		{"https://cdn.example.com/products/20260828_abcd1234.png", "products/20260828_abcd1234.png"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, service.KeyFromURL(tc.url), tc.url)
	}

	assert.Equal(t, "", service.KeyFromURL("://not-a-url"))
}

func TestUploadOptionsVisibility(t *testing.T) {
	service := NewLocalStorage(localStorageConfig())

	assert.True(t, service.GetDefaultUploadOptions("products").IsPublic)
	// Prescriptions stay private
	assert.False(t, service.GetDefaultUploadOptions("prescriptions").IsPublic)
	assert.False(t, service.GetDefaultUploadOptions("anything-else").IsPublic)
}
