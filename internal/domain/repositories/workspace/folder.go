package workspace

import (
	"context"

	models "loft/internal/domain/models/workspace"
)

// FolderRepository manages folder rows.
type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by id, scoped to the owner.
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)

	// GetByIDOnly retrieves a folder by id without owner scoping.
	// Used by the authorizer, which performs the ownership check itself.
	GetByIDOnly(ctx context.Context, id string) (*models.Folder, error)

	// ListByUser retrieves all folders owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Folder, error)

	// ListByParentFolder retrieves the owner's folders whose parent is the
	// given folder. Backed by the (user_id, parent_folder_id) index.
	ListByParentFolder(ctx context.Context, userID, parentFolderID string) ([]models.Folder, error)

	// ListStandalone retrieves the owner's non-archived folders that hang
	// directly off the workspace root, newest first.
	ListStandalone(ctx context.Context, userID string) ([]models.Folder, error)

	// Update rewrites the folder's mutable fields, including children and
	// parent reference.
	Update(ctx context.Context, folder *models.Folder) error

	// Delete hard-deletes a folder row. Returns ErrNotFound if no row
	// matched, which makes cascade re-runs detectable.
	Delete(ctx context.Context, id, userID string) error
}
