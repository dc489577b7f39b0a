package services

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/pkg/metrics"
	"github.com/anonto42/socialfeed/backend/pkg/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxImageSize is the largest accepted upload, 5 MiB.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadResult describes a stored image.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}

type UploadService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error)
}

type uploadService struct {
	storage storage.Storage
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

func NewUploadService(store storage.Storage, log logrus.FieldLogger, m *metrics.Metrics) UploadService {
	return &uploadService{storage: store, log: log, metrics: m}
}

// UploadImage checks size and content type, then stores the file under
// images/<uuid><ext>.
func (s *uploadService) UploadImage(ctx context.Context, header *multipart.FileHeader) (*UploadResult, error) {
	if header == nil {
		return nil, apperrors.Validation("No file uploaded")
	}
	if header.Size > MaxImageSize {
		return nil, apperrors.Validation("File too large (max 5MB)")
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.Internal("Failed to read upload", err)
	}
	defer file.Close()

	mimeType, err := sniffImageType(file, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	ext := imageExtensions[mimeType]
	if orig := strings.ToLower(filepath.Ext(header.Filename)); orig == ".jpeg" && mimeType == "image/jpeg" {
		ext = orig
	}
	filename := uuid.NewString() + ext

	url, err := s.storage.Save(ctx, "images/"+filename, file, mimeType)
	if err != nil {
		return nil, apperrors.Internal("Failed to upload image", err)
	}

	s.metrics.RecordEvent("image_uploaded")
	s.log.WithFields(logrus.Fields{"filename": filename, "size": header.Size}).Info("image uploaded")
	return &UploadResult{URL: url, Filename: filename, Size: header.Size, MimeType: mimeType}, nil
}

// sniffImageType detects the MIME type from the file's first bytes and
// rewinds it. Both the sniffed and declared types must be allowed images.
func sniffImageType(file multipart.File, declared string) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", apperrors.Internal("Failed to read upload", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", apperrors.Internal("Failed to read upload", err)
	}

	sniffed := http.DetectContentType(head[:n])
	if _, ok := imageExtensions[sniffed]; !ok {
		return "", apperrors.Validation("Only image files are allowed")
	}
	if declared != "" && declared != "application/octet-stream" {
		if _, ok := imageExtensions[strings.ToLower(declared)]; !ok {
			return "", apperrors.Validation("Only image files are allowed")
		}
	}
	return sniffed, nil
}
