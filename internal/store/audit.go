package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/verinews/apiserver/types"
)

// rowQuerier is satisfied by both *sql.DB and *sql.Tx, so audit
// appends can join a lifecycle transaction.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// AuditRepository handles persistence for the append-only admin log.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends one entry and returns it with its assigned id.
func (r *AuditRepository) Insert(ctx context.Context, action, username string) (types.AuditEntry, error) {
	return insertAuditEntry(ctx, r.db, action, username)
}

// Recent returns up to n entries ordered by id descending.
func (r *AuditRepository) Recent(ctx context.Context, n int) ([]types.AuditEntry, error) {
	const query = `
		SELECT id, action, username, created_at
		FROM admin_logs
		ORDER BY id DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []types.AuditEntry
	for rows.Next() {
		var entry types.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.Username, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func insertAuditEntry(ctx context.Context, q rowQuerier, action, username string) (types.AuditEntry, error) {
	entry := types.AuditEntry{
		Action:    action,
		Username:  username,
		CreatedAt: time.Now(),
	}

	const query = `
		INSERT INTO admin_logs (action, username, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := q.QueryRowContext(ctx, query, entry.Action, entry.Username, entry.CreatedAt).Scan(&entry.ID); err != nil {
		return types.AuditEntry{}, err
	}
	return entry, nil
}
