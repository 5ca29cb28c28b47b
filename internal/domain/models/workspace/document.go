package workspace

import (
	"time"
)

// Document is a leaf content node. Content is an opaque serialized blob owned
// by the rich-text editor; the backend never interprets it.
type Document struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Icon        *string   `json:"icon,omitempty" db:"icon"`
	CoverImage  *string   `json:"cover_image,omitempty" db:"cover_image"`
	Content     *string   `json:"content,omitempty" db:"content"`
	IsArchived  bool      `json:"is_archived" db:"is_archived"`
	IsPublished bool      `json:"is_published" db:"is_published"`
	IsPrivate   bool      `json:"is_private" db:"is_private"`
	Password    *string   `json:"-" db:"password"`
	Parent      ParentRef `json:"parent"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Ref returns the ChildRef entry a parent should hold for this document.
func (d *Document) Ref() ChildRef {
	return ChildRef{ID: d.ID, Type: ChildKindDocument, Title: d.Title, Icon: d.Icon}
}
