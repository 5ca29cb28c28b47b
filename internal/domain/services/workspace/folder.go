package workspace

import (
	"context"

	models "loft/internal/domain/models/workspace"
)

// CreateFolderRequest is the payload for creating a folder under a workspace
// root or another folder.
type CreateFolderRequest struct {
	UserID      string           `json:"-"`
	Title       string           `json:"title"`
	Icon        *string          `json:"icon,omitempty"`
	Description *string          `json:"description,omitempty"`
	IsPrivate   bool             `json:"is_private"`
	Password    *string          `json:"password,omitempty"`
	Parent      models.ParentRef `json:"parent"`
}

// RenameRequest renames an entity and/or swaps its icon. An icon value of
// "remove" clears the icon.
type RenameRequest struct {
	UserID string  `json:"-"`
	Title  *string `json:"title,omitempty"`
	Icon   *string `json:"icon,omitempty"`
}

// MoveRequest re-parents a folder in one atomic operation, preserving its
// identity and contents.
type MoveRequest struct {
	UserID    string           `json:"-"`
	NewParent models.ParentRef `json:"new_parent"`
}

// AddCollaboratorsRequest invites up to MaxCollaboratorsPerInvite users into a
// folder by appending a ChildRef to each target's workspace.
type AddCollaboratorsRequest struct {
	UserID        string   `json:"-"`
	TargetUserIDs []string `json:"target_user_ids"`
}

// FolderContents is the direct contents of a folder as the sidebar renders
// them: the cached ChildRef list plus the live child rows.
type FolderContents struct {
	Folder    *models.Folder    `json:"folder"`
	Children  []models.ChildRef `json:"children"`
	Folders   []models.Folder   `json:"folders"`
	Documents []models.Document `json:"documents"`
	Files     []models.File     `json:"files"`
}

// FolderService owns the folder side of the tree mutation protocol.
type FolderService interface {
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)
	GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error)
	GetChildren(ctx context.Context, userID, folderID string) (*FolderContents, error)
	RenameFolder(ctx context.Context, folderID string, req *RenameRequest) (*models.Folder, error)

	// ArchiveFolder soft-deletes the folder and, transitively, every
	// descendant folder and document. Files are left active.
	ArchiveFolder(ctx context.Context, userID, folderID string) (*models.Folder, error)

	// DeleteFolder hard-deletes the folder and every descendant row, then
	// strips the folder's ChildRef from its parent. All-or-nothing.
	DeleteFolder(ctx context.Context, userID, folderID string) error

	// MoveFolder re-parents the folder atomically. Moving a folder into its
	// own subtree is rejected.
	MoveFolder(ctx context.Context, folderID string, req *MoveRequest) (*models.Folder, error)

	AddCollaborators(ctx context.Context, folderID string, req *AddCollaboratorsRequest) error
}
