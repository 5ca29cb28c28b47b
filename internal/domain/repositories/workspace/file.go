package workspace

import (
	"context"

	models "loft/internal/domain/models/workspace"
)

// FileRepository manages uploaded-file reference rows.
type FileRepository interface {
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file by id, scoped to the owner.
	GetByID(ctx context.Context, id, userID string) (*models.File, error)

	// GetByIDOnly retrieves a file by id without owner scoping.
	GetByIDOnly(ctx context.Context, id string) (*models.File, error)

	// ListByUser retrieves all files owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.File, error)

	// ListByParentFolder retrieves the owner's files whose parent is the
	// given folder.
	ListByParentFolder(ctx context.Context, userID, parentFolderID string) ([]models.File, error)

	// ListSearchable retrieves the owner's non-archived files, newest first.
	ListSearchable(ctx context.Context, userID string) ([]models.File, error)

	// ListStandalone retrieves the owner's non-archived files that hang
	// directly off the workspace root, newest first.
	ListStandalone(ctx context.Context, userID string) ([]models.File, error)

	Update(ctx context.Context, file *models.File) error

	// Delete hard-deletes a file row. Returns ErrNotFound if no row matched.
	Delete(ctx context.Context, id, userID string) error
}
