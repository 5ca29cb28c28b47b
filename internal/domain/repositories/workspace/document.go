package workspace

import (
	"context"

	models "loft/internal/domain/models/workspace"
)

// DocumentRepository manages document rows.
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by id, scoped to the owner.
	GetByID(ctx context.Context, id, userID string) (*models.Document, error)

	// GetByIDOnly retrieves a document by id without owner scoping.
	GetByIDOnly(ctx context.Context, id string) (*models.Document, error)

	// ListByUser retrieves all documents owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Document, error)

	// ListByParentFolder retrieves the owner's documents whose parent is the
	// given folder. Backed by the (user_id, parent_folder_id) index.
	ListByParentFolder(ctx context.Context, userID, parentFolderID string) ([]models.Document, error)

	// ListSearchable retrieves the owner's non-archived documents, newest
	// first. Feeds the quick-open search projection.
	ListSearchable(ctx context.Context, userID string) ([]models.Document, error)

	// ListStandalone retrieves the owner's non-archived documents that hang
	// directly off the workspace root, newest first.
	ListStandalone(ctx context.Context, userID string) ([]models.Document, error)

	Update(ctx context.Context, doc *models.Document) error

	// Delete hard-deletes a document row. Returns ErrNotFound if no row matched.
	Delete(ctx context.Context, id, userID string) error
}
