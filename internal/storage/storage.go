package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/verinews/apiserver/config"
)

// Fetcher opens a reader for a stored object by key. It is used once
// at startup to read the scoring model artifact; any error surfaces as
// a startup failure.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (io.ReadCloser, error)
}

// NewFetcher selects an artifact backend from config: a local file,
// MinIO, or Google Cloud Storage.
func NewFetcher(ctx context.Context, cfg config.ModelConfig) (Fetcher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Source)) {
	case "", "file":
		return NewFileFetcher(), nil
	case "minio":
		return NewMinioFetcher(cfg.Minio)
	case "gcs":
		return NewGCSFetcher(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("unknown model source %q", cfg.Source)
	}
}
