package services

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

// fileHeader builds a *multipart.FileHeader the way echo's c.FormFile would.
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func newUploadService(t *testing.T, e *env) (UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)
	return NewUploadService(local, e.log, nil), dir
}

func TestUploadService_StoresImage(t *testing.T) {
	e := newEnv(t)
	svc, dir := newUploadService(t, e)

	res, err := svc.UploadImage(e.ctx, fileHeader(t, "avatar.png", "image/png", pngHeader))
	require.NoError(t, err)

	assert.Equal(t, "image/png", res.MimeType)
	assert.True(t, strings.HasSuffix(res.Filename, ".png"))
	assert.Equal(t, "http://localhost:8080/uploads/images/"+res.Filename, res.URL)
	assert.Equal(t, int64(len(pngHeader)), res.Size)

	stored, err := os.ReadFile(filepath.Join(dir, "images", res.Filename))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
}

func TestUploadService_RejectsNonImages(t *testing.T) {
	e := newEnv(t)
	svc, _ := newUploadService(t, e)

	_, err := svc.UploadImage(e.ctx, fileHeader(t, "notes.txt", "text/plain", []byte("just some text")))
	assertKind(t, err, apperrors.KindValidation)

	// PNG bytes declared as something else
	_, err = svc.UploadImage(e.ctx, fileHeader(t, "evil.png", "application/pdf", pngHeader))
	assertKind(t, err, apperrors.KindValidation)

	// text bytes declared as an image
	_, err = svc.UploadImage(e.ctx, fileHeader(t, "fake.png", "image/png", []byte("not really a png")))
	assertKind(t, err, apperrors.KindValidation)
}

func TestUploadService_SizeLimitAndMissingFile(t *testing.T) {
	e := newEnv(t)
	svc, _ := newUploadService(t, e)

	_, err := svc.UploadImage(e.ctx, nil)
	assertKind(t, err, apperrors.KindValidation)

	_, err = svc.UploadImage(e.ctx, &multipart.FileHeader{Filename: "huge.png", Size: MaxImageSize + 1})
	assertKind(t, err, apperrors.KindValidation)
	assert.Equal(t, "File too large (max 5MB)", err.(*apperrors.Error).Message)
}
