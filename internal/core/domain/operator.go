package domain

import (
	"time"

	"github.com/google/uuid"
)

// Operator is an admin panel user. Manual reconciliation actions are always
// attributed to the operator that triggered them.
type Operator struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Argon2id
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsActive reports whether the operator may log in.
func (o *Operator) IsActive() bool {
	return o.Active
}
