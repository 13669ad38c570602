package types

import "time"

// Roles assignable to an account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Admission states an account moves through. Every account starts
// pending and is approved or rejected by an administrator.
const (
	AdmissionPending  = "pending"
	AdmissionApproved = "approved"
	AdmissionRejected = "rejected"
)

// User represents an account in the system.
// It contains identity, role, and admission metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// Role indicates the user's authorization level within the
	// system ("admin" or "user").
	Role string `json:"role" db:"role"`

	// Admission is the approval status gating feed access
	// ("pending", "approved", or "rejected"). Administrators
	// bypass this field entirely.
	Admission string `json:"admission" db:"admission"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Admitted reports whether the user may reach the feed. Admins are
// always admitted regardless of their admission status.
func (u User) Admitted() bool {
	return u.Role == RoleAdmin || u.Admission == AdmissionApproved
}
