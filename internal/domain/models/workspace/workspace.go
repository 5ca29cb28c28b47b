package workspace

import (
	"time"
)

// Workspace is the root container of a user's tree. Exactly one exists per
// user (unique on user_id); it has no parent. Children is the authoritative
// ordered list of the workspace's direct descendants.
type Workspace struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	IsShared    bool       `json:"is_shared" db:"is_shared"`
	UsersIDs    []string   `json:"users_ids" db:"users_ids"` // collaborator user ids
	Children    []ChildRef `json:"children" db:"children"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
