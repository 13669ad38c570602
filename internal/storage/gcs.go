package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/verinews/apiserver/config"
	"google.golang.org/api/option"
)

// GCSFetcher reads artifacts from a Google Cloud Storage bucket.
type GCSFetcher struct {
	client *storage.Client
	bucket string
}

var _ Fetcher = (*GCSFetcher)(nil)

// NewGCSFetcher constructs a GCS-backed fetcher from config.
func NewGCSFetcher(ctx context.Context, cfg config.GCSConfig) (*GCSFetcher, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GCSFetcher{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Fetch opens a reader for the object at key in the configured bucket.
func (g *GCSFetcher) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	return g.client.Bucket(g.bucket).Object(key).NewReader(ctx)
}
