package types

import "time"

// Audit action descriptions recorded for lifecycle transitions.
const (
	ActionApproved = "Approved user"
	ActionRejected = "Rejected user"
	ActionDeleted  = "Deleted user"
)

// AuditEntry is an immutable record of one administrative lifecycle
// transition. Entries are append-only; ordering by id descending
// defines recency.
type AuditEntry struct {
	// ID is assigned by the store and strictly increases per append.
	ID int `json:"id" db:"id"`

	// Action describes the transition, e.g. "Approved user".
	Action string `json:"action" db:"action"`

	// Username names the subject account. The reference is weak: the
	// account may be deleted later, the entry persists regardless.
	Username string `json:"username" db:"username"`

	// CreatedAt is the timestamp when the entry was recorded.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
