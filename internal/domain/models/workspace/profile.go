package workspace

import (
	"time"
)

// Profile is the per-user account record. At most one exists per user id,
// enforced by a unique constraint; it is created lazily on first
// authenticated visit and never hard-deleted in the normal flow.
type Profile struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	DisplayName   string    `json:"display_name" db:"display_name"`
	FirstName     string    `json:"first_name" db:"first_name"`
	LastName      string    `json:"last_name" db:"last_name"`
	Email         string    `json:"email" db:"email"`
	Plan          string    `json:"plan" db:"plan"` // plan tier id, see internal/plans
	UserType      string    `json:"user_type" db:"user_type"`
	UsedStorageMB float64   `json:"used_storage_mb" db:"used_storage_mb"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
