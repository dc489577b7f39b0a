package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "images/abc.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/images/abc.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "images", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), "images/abc.png"))
	_, err = os.Stat(filepath.Join(dir, "images", "abc.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	require.NoError(t, store.Delete(context.Background(), "images/abc.png"))
}

func TestLocalStorage_KeysStayInsideRoot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(filepath.Join(dir, "uploads"), "http://x/uploads")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../../escape.txt", strings.NewReader("x"), "text/plain")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "uploads", "escape.txt"))
	assert.NoError(t, err)

	_, err = store.Save(context.Background(), "", strings.NewReader("x"), "text/plain")
	assert.Error(t, err)
}

func TestS3Storage_SaveAgainstCompatibleEndpoint(t *testing.T) {
	var (
		mu      sync.Mutex
		gotPath string
		gotBody string
		gotType string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			gotPath, gotBody, gotType = r.URL.Path, string(body), r.Header.Get("Content-Type")
			mu.Unlock()
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewS3Storage(S3Options{
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		Endpoint:        srv.URL,
		Bucket:          "media",
		UseSSL:          false,
	})
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "images/abc.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)

	host := strings.TrimPrefix(srv.URL, "http://")
	assert.Equal(t, "http://"+host+"/media/images/abc.png", url)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/media/images/abc.png", gotPath)
	assert.Equal(t, "png-bytes", gotBody)
	assert.Equal(t, "image/png", gotType)
}

func TestS3Storage_AWSURL(t *testing.T) {
	store, err := NewS3Storage(S3Options{Region: "eu-west-1", Bucket: "media"})
	require.NoError(t, err)
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/images/a.png", store.objectURL("images/a.png"))
}
