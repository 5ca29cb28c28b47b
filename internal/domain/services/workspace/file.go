package workspace

import (
	"context"

	models "loft/internal/domain/models/workspace"
)

// SaveFileRequest records an already-uploaded file under a parent. The URL,
// format and size come from the external file host.
type SaveFileRequest struct {
	UserID string           `json:"-"`
	Title  string           `json:"title"`
	URL    string           `json:"url"`
	Format *string          `json:"format,omitempty"`
	SizeMB float64          `json:"size_mb"`
	Parent models.ParentRef `json:"parent"`
}

// FileService owns the file side of the tree mutation protocol.
type FileService interface {
	SaveFile(ctx context.Context, req *SaveFileRequest) (*models.File, error)
	GetFile(ctx context.Context, userID, fileID string) (*models.File, error)

	// DeleteFile hard-deletes the file row and strips its ChildRef from the
	// parent, atomically. The hosted binary itself is the file host's to
	// reap.
	DeleteFile(ctx context.Context, userID, fileID string) error
}
