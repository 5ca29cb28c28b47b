package auth

import (
	"context"
	"errors"
	"fmt"

	"loft/internal/domain"
	wsRepo "loft/internal/domain/repositories/workspace"
	"loft/internal/domain/services"
)

// OwnerBasedAuthorizer implements ResourceAuthorizer using ownership checks.
// A user can access a resource only if their user id matches the row's
// user_id. Collaborator membership grants navigation via ChildRefs in the
// collaborator's own workspace; it never grants access through this guard.
//
// This is the simplest authorization model. For future extensibility:
// - RoleBasedAuthorizer: check a user's role on the workspace
// - SharingAuthorizer: check folder-level share grants
type OwnerBasedAuthorizer struct {
	workspaceRepo wsRepo.WorkspaceRepository
	folderRepo    wsRepo.FolderRepository
	docRepo       wsRepo.DocumentRepository
	fileRepo      wsRepo.FileRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(
	workspaceRepo wsRepo.WorkspaceRepository,
	folderRepo wsRepo.FolderRepository,
	docRepo wsRepo.DocumentRepository,
	fileRepo wsRepo.FileRepository,
) services.ResourceAuthorizer {
	return &OwnerBasedAuthorizer{
		workspaceRepo: workspaceRepo,
		folderRepo:    folderRepo,
		docRepo:       docRepo,
		fileRepo:      fileRepo,
	}
}

// CanAccessWorkspace checks if user owns the workspace
func (a *OwnerBasedAuthorizer) CanAccessWorkspace(ctx context.Context, userID, workspaceID string) error {
	ws, err := a.workspaceRepo.GetByIDOnly(ctx, workspaceID)
	if err != nil {
		return failClosed("workspace", workspaceID, err)
	}
	return requireOwner("workspace", workspaceID, ws.UserID, userID)
}

// CanAccessFolder checks if user owns the folder
func (a *OwnerBasedAuthorizer) CanAccessFolder(ctx context.Context, userID, folderID string) error {
	folder, err := a.folderRepo.GetByIDOnly(ctx, folderID)
	if err != nil {
		return failClosed("folder", folderID, err)
	}
	return requireOwner("folder", folderID, folder.UserID, userID)
}

// CanAccessDocument checks if user owns the document
func (a *OwnerBasedAuthorizer) CanAccessDocument(ctx context.Context, userID, documentID string) error {
	doc, err := a.docRepo.GetByIDOnly(ctx, documentID)
	if err != nil {
		return failClosed("document", documentID, err)
	}
	return requireOwner("document", documentID, doc.UserID, userID)
}

// CanAccessFile checks if user owns the file
func (a *OwnerBasedAuthorizer) CanAccessFile(ctx context.Context, userID, fileID string) error {
	file, err := a.fileRepo.GetByIDOnly(ctx, fileID)
	if err != nil {
		return failClosed("file", fileID, err)
	}
	return requireOwner("file", fileID, file.UserID, userID)
}

// failClosed maps a lookup failure during authorization. A missing row stays
// NotFound; anything else is surfaced as-is.
func failClosed(kind, id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("get %s %s for auth: %w", kind, id, err)
}

func requireOwner(kind, id, ownerID, callerID string) error {
	if ownerID != callerID {
		return fmt.Errorf("access denied to %s %s: %w", kind, id, domain.ErrUnauthorized)
	}
	return nil
}
