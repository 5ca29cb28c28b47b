package workspace

import (
	"context"

	models "loft/internal/domain/models/workspace"
	"loft/internal/httputil"
)

// CreateDocumentRequest is the payload for creating a document under a
// workspace root or a folder.
type CreateDocumentRequest struct {
	UserID string           `json:"-"`
	Title  string           `json:"title"`
	Icon   *string          `json:"icon,omitempty"`
	Parent models.ParentRef `json:"parent"`
}

// UpdateDocumentRequest patches a document. Title and icon changes propagate
// to the parent's ChildRef in the same transaction. CoverImage uses a
// tri-state optional so an explicit null clears the cover.
type UpdateDocumentRequest struct {
	UserID      string                  `json:"-"`
	Title       *string                 `json:"title,omitempty"`
	Icon        *string                 `json:"icon,omitempty"` // "remove" clears the icon
	Content     *string                 `json:"content,omitempty"`
	CoverImage  httputil.OptionalString `json:"cover_image"`
	IsPublished *bool                   `json:"is_published,omitempty"`
	IsPrivate   *bool                   `json:"is_private,omitempty"`
	Password    *string                 `json:"password,omitempty"`
}

// DocumentService owns the document side of the tree mutation protocol.
type DocumentService interface {
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)
	GetDocument(ctx context.Context, userID, documentID string) (*models.Document, error)
	UpdateDocument(ctx context.Context, documentID string, req *UpdateDocumentRequest) (*models.Document, error)
	ArchiveDocument(ctx context.Context, userID, documentID string) (*models.Document, error)

	// DeleteDocument hard-deletes the document and strips its ChildRef from
	// the parent, atomically.
	DeleteDocument(ctx context.Context, userID, documentID string) error

	RemoveCoverImage(ctx context.Context, userID, documentID string) (*models.Document, error)
}
