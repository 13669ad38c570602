package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verinews/apiserver/internal/events"
	"github.com/verinews/apiserver/internal/store"
	"github.com/verinews/apiserver/types"
)

// fakeLifecycleRepo mimics the transactional lifecycle store over an
// in-memory account map and audit slice.
type fakeLifecycleRepo struct {
	users   map[int]*types.User
	entries []types.AuditEntry
}

func newFakeLifecycleRepo() *fakeLifecycleRepo {
	return &fakeLifecycleRepo{users: make(map[int]*types.User)}
}

func (r *fakeLifecycleRepo) append(action, username string) types.AuditEntry {
	entry := types.AuditEntry{
		ID:       len(r.entries) + 1,
		Action:   action,
		Username: username,
	}
	r.entries = append(r.entries, entry)
	return entry
}

func (r *fakeLifecycleRepo) Approve(_ context.Context, id int) (types.AuditEntry, error) {
	user, ok := r.users[id]
	if !ok {
		return types.AuditEntry{}, store.ErrNotFound
	}
	user.Admission = types.AdmissionApproved
	return r.append(types.ActionApproved, user.Username), nil
}

func (r *fakeLifecycleRepo) Reject(_ context.Context, id int) (types.AuditEntry, error) {
	user, ok := r.users[id]
	if !ok {
		return types.AuditEntry{}, store.ErrNotFound
	}
	user.Admission = types.AdmissionRejected
	return r.append(types.ActionRejected, user.Username), nil
}

func (r *fakeLifecycleRepo) Delete(_ context.Context, id int) (types.AuditEntry, error) {
	user, ok := r.users[id]
	if !ok {
		return types.AuditEntry{}, store.ErrNotFound
	}
	entry := r.append(types.ActionDeleted, user.Username)
	delete(r.users, id)
	return entry, nil
}

// recordingPublisher captures published events and can fail on demand.
type recordingPublisher struct {
	published []events.LifecycleEvent
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.LifecycleEvent) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.published = append(p.published, event)
	return "msg-1", nil
}

func (p *recordingPublisher) Close() error { return nil }

func testLifecycleService(repo *fakeLifecycleRepo, pub events.Publisher) *LifecycleService {
	return NewLifecycleService(repo, pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestApproveEmitsAuditEntryAndEvent(t *testing.T) {
	repo := newFakeLifecycleRepo()
	repo.users[1] = &types.User{ID: 1, Username: "alice", Admission: types.AdmissionPending}
	pub := &recordingPublisher{}
	svc := testLifecycleService(repo, pub)

	entry, err := svc.Approve(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Approved user", entry.Action)
	assert.Equal(t, "alice", entry.Username)
	assert.Equal(t, types.AdmissionApproved, repo.users[1].Admission)
	require.Len(t, repo.entries, 1)
	require.Len(t, pub.published, 1)
	assert.Equal(t, "Approved user", pub.published[0].Action)
	assert.Equal(t, "alice", pub.published[0].Username)
}

func TestRejectAfterApproveOverwrites(t *testing.T) {
	repo := newFakeLifecycleRepo()
	repo.users[1] = &types.User{ID: 1, Username: "alice", Admission: types.AdmissionPending}
	svc := testLifecycleService(repo, &recordingPublisher{})

	_, err := svc.Approve(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, types.AdmissionApproved, repo.users[1].Admission)

	// Transitions are unguarded: reject applies over approved and
	// emits a fresh entry.
	entry, err := svc.Reject(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Rejected user", entry.Action)
	assert.Equal(t, types.AdmissionRejected, repo.users[1].Admission)
	assert.Len(t, repo.entries, 2)
}

func TestDeleteLogsNameThenRemoves(t *testing.T) {
	repo := newFakeLifecycleRepo()
	repo.users[7] = &types.User{ID: 7, Username: "bob"}
	svc := testLifecycleService(repo, &recordingPublisher{})

	entry, err := svc.Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Deleted user", entry.Action)
	assert.Equal(t, "bob", entry.Username)
	assert.NotContains(t, repo.users, 7)

	// The id no longer resolves for any transition.
	_, err = svc.Approve(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.Reject(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Len(t, repo.entries, 1)
}

func TestTransitionNotFoundEmitsNothing(t *testing.T) {
	repo := newFakeLifecycleRepo()
	pub := &recordingPublisher{}
	svc := testLifecycleService(repo, pub)

	_, err := svc.Approve(context.Background(), 42)
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, repo.entries)
	assert.Empty(t, pub.published)
}

func TestPublishFailureDoesNotUndoTransition(t *testing.T) {
	repo := newFakeLifecycleRepo()
	repo.users[1] = &types.User{ID: 1, Username: "alice"}
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := testLifecycleService(repo, pub)

	entry, err := svc.Approve(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Approved user", entry.Action)
	assert.Equal(t, types.AdmissionApproved, repo.users[1].Admission)
	assert.Len(t, repo.entries, 1)
}

func TestNilPublisherDefaultsToNoop(t *testing.T) {
	repo := newFakeLifecycleRepo()
	repo.users[1] = &types.User{ID: 1, Username: "alice"}
	svc := NewLifecycleService(repo, nil, nil)

	_, err := svc.Approve(context.Background(), 1)
	assert.NoError(t, err)
}
