package services

import (
	"context"
	"log/slog"

	"github.com/verinews/apiserver/internal/events"
	"github.com/verinews/apiserver/types"
)

// LifecycleRepository applies account transitions atomically with
// their audit entries.
type LifecycleRepository interface {
	Approve(ctx context.Context, id int) (types.AuditEntry, error)
	Reject(ctx context.Context, id int) (types.AuditEntry, error)
	Delete(ctx context.Context, id int) (types.AuditEntry, error)
}

// LifecycleService encapsulates administrative account transitions.
// After each committed transition it publishes a lifecycle event;
// publish failures are logged and never undo the transition.
type LifecycleService struct {
	repo      LifecycleRepository
	publisher events.Publisher
	logger    *slog.Logger
}

func NewLifecycleService(repo LifecycleRepository, publisher events.Publisher, logger *slog.Logger) *LifecycleService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LifecycleService{repo: repo, publisher: publisher, logger: logger}
}

// Approve admits the account to the feed. Approving an already
// approved or rejected account applies the same overwrite and emits a
// fresh audit entry.
func (s *LifecycleService) Approve(ctx context.Context, id int) (types.AuditEntry, error) {
	return s.apply(ctx, id, s.repo.Approve)
}

// Reject bars the account from the feed.
func (s *LifecycleService) Reject(ctx context.Context, id int) (types.AuditEntry, error) {
	return s.apply(ctx, id, s.repo.Reject)
}

// Delete removes the account after logging its name.
func (s *LifecycleService) Delete(ctx context.Context, id int) (types.AuditEntry, error) {
	return s.apply(ctx, id, s.repo.Delete)
}

func (s *LifecycleService) apply(ctx context.Context, id int, transition func(context.Context, int) (types.AuditEntry, error)) (types.AuditEntry, error) {
	entry, err := transition(ctx, id)
	if err != nil {
		return types.AuditEntry{}, err
	}

	event := events.LifecycleEvent{
		Action:   entry.Action,
		Username: entry.Username,
		At:       entry.CreatedAt,
	}
	if _, err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish lifecycle event", "action", entry.Action, "username", entry.Username, "error", err)
	}
	return entry, nil
}
