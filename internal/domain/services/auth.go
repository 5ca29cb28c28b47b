package services

import "context"

// ResourceAuthorizer is the ownership guard invoked before every mutating or
// privacy-sensitive read. Implementations fail closed: a missing row surfaces
// as ErrNotFound, an owner mismatch as ErrUnauthorized. Multi-entity
// operations must call the guard independently for every entity they touch.
type ResourceAuthorizer interface {
	CanAccessWorkspace(ctx context.Context, userID, workspaceID string) error
	CanAccessFolder(ctx context.Context, userID, folderID string) error
	CanAccessDocument(ctx context.Context, userID, documentID string) error
	CanAccessFile(ctx context.Context, userID, fileID string) error
}
