package services

import (
	"context"

	"github.com/verinews/apiserver/types"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// AuditReader reads the append-only admin log by recency.
type AuditReader interface {
	Recent(ctx context.Context, n int) ([]types.AuditEntry, error)
}

// AuditService encapsulates admin log queries.
type AuditService struct {
	repo AuditReader
}

func NewAuditService(repo AuditReader) *AuditService {
	return &AuditService{repo: repo}
}

// Recent returns up to n entries, most recent first. Non-positive n
// falls back to the default limit.
func (s *AuditService) Recent(ctx context.Context, n int) ([]types.AuditEntry, error) {
	if n <= 0 {
		n = defaultRecentLimit
	}
	if n > maxRecentLimit {
		n = maxRecentLimit
	}
	return s.repo.Recent(ctx, n)
}
