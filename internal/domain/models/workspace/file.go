package workspace

import (
	"time"
)

// File is a leaf reference to externally hosted binary content. The upload
// itself happens against the file host; the backend only records the URL the
// host returned.
type File struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	URL         string    `json:"url" db:"url"`
	Format      *string   `json:"format,omitempty" db:"format"` // file extension, e.g. "pdf"
	SizeMB      float64   `json:"size_mb" db:"size_mb"`
	IsArchived  bool      `json:"is_archived" db:"is_archived"`
	IsPublished bool      `json:"is_published" db:"is_published"`
	IsPrivate   bool      `json:"is_private" db:"is_private"`
	Password    *string   `json:"-" db:"password"`
	Parent      ParentRef `json:"parent"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Ref returns the ChildRef entry a parent should hold for this file.
func (f *File) Ref() ChildRef {
	return ChildRef{ID: f.ID, Type: ChildKindFile, Title: f.Title}
}
