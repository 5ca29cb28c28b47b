package workspace

import (
	"time"
)

// Folder is an interior tree node. Children is the authoritative ordered list
// of direct descendants; every entry must correspond to an existing row whose
// own Parent equals this folder's id.
type Folder struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Icon        *string    `json:"icon,omitempty" db:"icon"`
	Description *string    `json:"description,omitempty" db:"description"`
	IsArchived  bool       `json:"is_archived" db:"is_archived"`
	IsPublished bool       `json:"is_published" db:"is_published"`
	IsPrivate   bool       `json:"is_private" db:"is_private"`
	Password    *string    `json:"-" db:"password"` // never serialized to clients
	Children    []ChildRef `json:"children" db:"children"`
	Parent      ParentRef  `json:"parent"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Ref returns the ChildRef entry a parent should hold for this folder.
func (f *Folder) Ref() ChildRef {
	return ChildRef{ID: f.ID, Type: ChildKindFolder, Title: f.Title, Icon: f.Icon}
}
