package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/verinews/apiserver/config"
)

// MinioFetcher reads artifacts from a MinIO bucket.
type MinioFetcher struct {
	client *minio.Client
	bucket string
}

var _ Fetcher = (*MinioFetcher)(nil)

// NewMinioFetcher constructs a MinIO-backed fetcher from config.
func NewMinioFetcher(cfg config.MinioConfig) (*MinioFetcher, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("minio access key and secret key are required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("minio bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinioFetcher{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Fetch opens a reader for the object at key in the configured bucket.
func (m *MinioFetcher) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	return m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
}
