package workspace

import (
	"context"

	models "loft/internal/domain/models/workspace"
)

// SearchService is the flattened, owner-scoped projection behind quick-open
// search and the overview pages. Pure reads; archived rows are excluded even
// though they remain listed in their parent's children.
type SearchService interface {
	SearchableDocuments(ctx context.Context, userID string) ([]models.Document, error)
	SearchableFiles(ctx context.Context, userID string) ([]models.File, error)

	// Standalone listings: non-archived rows hanging directly off the
	// workspace root, newest first.
	StandaloneFolders(ctx context.Context, userID string) ([]models.Folder, error)
	StandaloneDocuments(ctx context.Context, userID string) ([]models.Document, error)
	StandaloneFiles(ctx context.Context, userID string) ([]models.File, error)
}
