// Package storage persists uploaded media and returns its public URL.
package storage

import (
	"context"
	"io"

	"github.com/anonto42/socialfeed/backend/pkg/config"
	"github.com/sirupsen/logrus"
)

// Storage stores objects under a key such as "images/<uuid>.png".
type Storage interface {
	Save(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New returns S3 storage when a bucket is configured, local disk otherwise.
func New(cfg *config.Config, log logrus.FieldLogger) (Storage, error) {
	if cfg.UsesS3() {
		s3Store, err := NewS3Storage(S3Options{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.AWSEndpoint,
			Bucket:          cfg.S3BucketName,
			UseSSL:          cfg.S3UseSSL,
		})
		if err != nil {
			return nil, err
		}
		log.WithField("bucket", cfg.S3BucketName).Info("Uploads stored in S3")
		return s3Store, nil
	}

	local, err := NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL+"/uploads")
	if err != nil {
		return nil, err
	}
	log.WithField("dir", cfg.UploadDir).Info("Uploads stored on local disk")
	return local, nil
}
