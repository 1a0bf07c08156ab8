package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage stands in for MinIO and records which buckets the service
// touches.
type fakeStorage struct {
	ensuredBuckets []string
	uploads        map[string]string // object name -> bucket
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string]string)}
}

func (f *fakeStorage) UploadImage(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	f.uploads[objectName] = bucketName
	return nil
}

func (f *fakeStorage) GetPresignedURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.example.com/%s/%s", bucketName, objectName), nil
}

func (f *fakeStorage) EnsureBucketExists(ctx context.Context, bucketName string) error {
	f.ensuredBuckets = append(f.ensuredBuckets, bucketName)
	return nil
}

func TestFetchProductImage_BlockedDomainFallsBackToIframe(t *testing.T) {
	svc := NewImageService(nil)

	for _, url := range []string{
		"https://www.amazon.com/dp/B0TEST",
		"https://www.walmart.com/ip/12345",
		"https://www.target.com/p/toy",
		"https://www.bestbuy.com/site/thing",
	} {
		result, err := svc.FetchProductImage(context.Background(), url)
		assert.NoError(t, err, url)
		assert.Equal(t, "iframe", result.Fallback, url)
		assert.Empty(t, result.ImageURL, url)
	}
}

func TestFetchProductImage_InvalidURL(t *testing.T) {
	svc := NewImageService(nil)

	for _, url := range []string{"", "not-a-url", "ftp://example.com/x"} {
		_, err := svc.FetchProductImage(context.Background(), url)
		assert.Error(t, err, url)
	}
}

func TestFetchProductImage_ParsesOGImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Wooden Train Set">
			<meta property="og:image" content="https://cdn.example.com/train.jpg">
		</head><body></body></html>`))
	}))
	defer server.Close()

	svc := NewImageService(nil)
	result, err := svc.FetchProductImage(context.Background(), server.URL)
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/train.jpg", result.ImageURL)
	assert.Empty(t, result.Fallback)
}

func TestFetchProductImage_NoOGImageFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Plain page</title></head><body></body></html>`))
	}))
	defer server.Close()

	svc := NewImageService(nil)
	result, err := svc.FetchProductImage(context.Background(), server.URL)
	assert.NoError(t, err)
	assert.Empty(t, result.ImageURL)
	assert.Equal(t, "iframe", result.Fallback)
}

// The archived copy must land in the bucket that startup provisions via
// EnsureBucketExists, and the presigned URL comes back on the result.
func TestFetchProductImage_ArchivesIntoImageBucket(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/img.jpg" {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte("jpegbytes"))
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><head><meta property="og:image" content="%s/img.jpg"></head><body></body></html>`, server.URL)
	}))
	defer server.Close()

	storage := newFakeStorage()
	require.NoError(t, storage.EnsureBucketExists(context.Background(), ImageBucket))

	svc := NewImageService(storage)
	result, err := svc.FetchProductImage(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, server.URL+"/img.jpg", result.ImageURL)
	assert.Contains(t, storage.ensuredBuckets, ImageBucket)
	require.Len(t, storage.uploads, 1)
	for objectName, bucket := range storage.uploads {
		assert.Equal(t, ImageBucket, bucket)
		assert.True(t, strings.HasPrefix(objectName, "scraped/"))
		assert.Equal(t, fmt.Sprintf("https://storage.example.com/%s/%s", ImageBucket, objectName), result.ArchiveURL)
	}
}

func TestFetchProductImage_ServerErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	svc := NewImageService(nil)
	result, err := svc.FetchProductImage(context.Background(), server.URL)
	assert.NoError(t, err)
	assert.Equal(t, "iframe", result.Fallback)
}
