package workspace

import (
	"context"

	models "loft/internal/domain/models/workspace"
)

// UpdateWorkspaceNameRequest renames a workspace.
type UpdateWorkspaceNameRequest struct {
	UserID string `json:"-"`
	Name   string `json:"name"`
}

// AddChildRequest appends a ChildRef to a workspace's children. Exposed for
// the root-level upload path; tree mutations normally append through the
// owning service in the same transaction as the row insert.
type AddChildRequest struct {
	UserID string          `json:"-"`
	Child  models.ChildRef `json:"child"`
}

// WorkspaceService manages workspace root rows.
type WorkspaceService interface {
	// GetUserWorkspace returns the caller's workspace, or ErrNotFound before
	// bootstrap.
	GetUserWorkspace(ctx context.Context, userID string) (*models.Workspace, error)
	GetWorkspace(ctx context.Context, userID, workspaceID string) (*models.Workspace, error)
	UpdateName(ctx context.Context, workspaceID string, req *UpdateWorkspaceNameRequest) (*models.Workspace, error)
	AddChild(ctx context.Context, workspaceID string, req *AddChildRequest) (*models.Workspace, error)
}
