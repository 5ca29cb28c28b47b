package workspace

import (
	"context"

	models "loft/internal/domain/models/workspace"
)

// WorkspaceRepository manages workspace root rows.
type WorkspaceRepository interface {
	// Create inserts a new workspace. Returns a ConflictError carrying the
	// existing workspace's id if the user already has one (unique user_id).
	Create(ctx context.Context, ws *models.Workspace) error

	// GetByID retrieves a workspace by id, scoped to the owner.
	GetByID(ctx context.Context, id, userID string) (*models.Workspace, error)

	// GetByIDOnly retrieves a workspace by id without owner scoping.
	// Used by the authorizer, which performs the ownership check itself.
	GetByIDOnly(ctx context.Context, id string) (*models.Workspace, error)

	// GetByUser retrieves the workspace owned by userID.
	GetByUser(ctx context.Context, userID string) (*models.Workspace, error)

	// Update rewrites the workspace's mutable fields (name, description,
	// sharing state, children).
	Update(ctx context.Context, ws *models.Workspace) error
}
