package workspace

import (
	"context"
	"fmt"
	"time"

	"loft/internal/domain"
	models "loft/internal/domain/models/workspace"
	wsSvc "loft/internal/domain/services/workspace"
)

// AddCollaborators shares a folder with up to MaxCollaboratorsPerInvite other
// users by appending the folder's ChildRef to each target's workspace root.
// The whole invite is one transaction: if any target has no workspace yet,
// nothing is written.
func (s *folderService) AddCollaborators(ctx context.Context, folderID string, req *wsSvc.AddCollaboratorsRequest) error {
	if err := s.authorizer.CanAccessFolder(ctx, req.UserID, folderID); err != nil {
		return err
	}
	if err := validateAddCollaboratorsRequest(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	targets := dedupeIDs(req.TargetUserIDs, req.UserID)
	if len(targets) == 0 {
		return fmt.Errorf("%w: no collaborators to add", domain.ErrInvalidArgument)
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.folderRepo.GetByID(txCtx, folderID, req.UserID)
		if err != nil {
			return err
		}
		ref := folder.Ref()

		// Every target must already be bootstrapped; a missing workspace
		// aborts the whole invite.
		for _, targetID := range targets {
			ws, err := s.workspaceRepo.GetByUser(txCtx, targetID)
			if err != nil {
				return fmt.Errorf("collaborator %s: %w", targetID, err)
			}
			if models.FindChild(ws.Children, folder.ID) >= 0 {
				continue // already shared with this user
			}
			ws.Children = append(ws.Children, ref)
			ws.IsShared = true
			ws.UpdatedAt = time.Now()
			if err := s.workspaceRepo.Update(txCtx, ws); err != nil {
				return fmt.Errorf("collaborator %s: %w", targetID, err)
			}
		}

		// Record the membership on the owner's workspace as well.
		owner, err := s.workspaceRepo.GetByUser(txCtx, req.UserID)
		if err != nil {
			return err
		}
		owner.UsersIDs = mergeIDs(owner.UsersIDs, targets)
		owner.IsShared = true
		owner.UpdatedAt = time.Now()
		return s.workspaceRepo.Update(txCtx, owner)
	})
	if err != nil {
		return err
	}

	s.logger.Info("collaborators added",
		"folder_id", folderID,
		"user_id", req.UserID,
		"count", len(targets),
	)
	return nil
}

// dedupeIDs drops duplicates and the owner's own id, preserving order.
func dedupeIDs(ids []string, ownerID string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || id == ownerID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// mergeIDs appends the ids not already present, preserving order.
func mergeIDs(existing, added []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		seen[id] = struct{}{}
	}
	out := existing
	for _, id := range added {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
