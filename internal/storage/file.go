package storage

import (
	"context"
	"io"
	"os"
)

// FileFetcher reads artifacts from the local filesystem. The key is a
// file path.
type FileFetcher struct{}

var _ Fetcher = (*FileFetcher)(nil)

func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

// Fetch opens the file at key.
func (f *FileFetcher) Fetch(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(key)
}
