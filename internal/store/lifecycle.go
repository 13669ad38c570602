package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verinews/apiserver/types"
)

// LifecycleRepository applies administrative account transitions. Each
// transition and its audit entry commit in a single transaction, so
// the log never records a change that did not happen and vice versa.
type LifecycleRepository struct {
	db *sql.DB
}

func NewLifecycleRepository(db *sql.DB) *LifecycleRepository {
	return &LifecycleRepository{db: db}
}

// Approve sets the account's admission to approved and appends the
// matching audit entry. The transition is unguarded: it applies
// whatever the current admission state is.
func (r *LifecycleRepository) Approve(ctx context.Context, id int) (types.AuditEntry, error) {
	return r.setAdmission(ctx, id, types.AdmissionApproved, types.ActionApproved)
}

// Reject sets the account's admission to rejected and appends the
// matching audit entry.
func (r *LifecycleRepository) Reject(ctx context.Context, id int) (types.AuditEntry, error) {
	return r.setAdmission(ctx, id, types.AdmissionRejected, types.ActionRejected)
}

// Delete appends the audit entry naming the account, then removes the
// row. The entry is written first so it references a name that existed
// at action time; both apply atomically.
func (r *LifecycleRepository) Delete(ctx context.Context, id int) (types.AuditEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.AuditEntry{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const selectQuery = `SELECT username FROM users WHERE id = $1`
	var username string
	if err := tx.QueryRowContext(ctx, selectQuery, id).Scan(&username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.AuditEntry{}, ErrNotFound
		}
		return types.AuditEntry{}, err
	}

	entry, err := insertAuditEntry(ctx, tx, types.ActionDeleted, username)
	if err != nil {
		return types.AuditEntry{}, err
	}

	const deleteQuery = `DELETE FROM users WHERE id = $1`
	if _, err := tx.ExecContext(ctx, deleteQuery, id); err != nil {
		return types.AuditEntry{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.AuditEntry{}, fmt.Errorf("commit delete: %w", err)
	}
	return entry, nil
}

func (r *LifecycleRepository) setAdmission(ctx context.Context, id int, admission, action string) (types.AuditEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.AuditEntry{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
		UPDATE users
		SET admission = $1, updated_at = now()
		WHERE id = $2
		RETURNING username`
	var username string
	if err := tx.QueryRowContext(ctx, query, admission, id).Scan(&username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.AuditEntry{}, ErrNotFound
		}
		return types.AuditEntry{}, err
	}

	entry, err := insertAuditEntry(ctx, tx, action, username)
	if err != nil {
		return types.AuditEntry{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.AuditEntry{}, fmt.Errorf("commit %s: %w", admission, err)
	}
	return entry, nil
}
