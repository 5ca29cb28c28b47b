package workspace

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"loft/internal/domain"
	models "loft/internal/domain/models/workspace"
	wsSvc "loft/internal/domain/services/workspace"
)

func TestAddCollaborators(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Shared docs", models.WorkspaceParent(env.wsID))

	err := env.folders.AddCollaborators(ctx, folder.ID, &wsSvc.AddCollaboratorsRequest{
		UserID:        testUserID,
		TargetUserIDs: []string{otherUserID},
	})
	if err != nil {
		t.Fatalf("add collaborators: %v", err)
	}

	// The folder's ref lands on the target's workspace root.
	target := env.store.workspaces[env.otherWsID]
	if models.FindChild(target.Children, folder.ID) < 0 {
		t.Error("shared folder missing from collaborator workspace children")
	}
	if !target.IsShared {
		t.Error("collaborator workspace not flagged shared")
	}

	// The owner's workspace records the membership.
	owner := env.store.workspaces[env.wsID]
	if !owner.IsShared {
		t.Error("owner workspace not flagged shared")
	}
	if len(owner.UsersIDs) != 1 || owner.UsersIDs[0] != otherUserID {
		t.Errorf("owner users_ids = %v, want [%s]", owner.UsersIDs, otherUserID)
	}
}

func TestAddCollaboratorsIdempotentPerTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Shared", models.WorkspaceParent(env.wsID))
	req := &wsSvc.AddCollaboratorsRequest{
		UserID:        testUserID,
		TargetUserIDs: []string{otherUserID, otherUserID},
	}
	if err := env.folders.AddCollaborators(ctx, folder.ID, req); err != nil {
		t.Fatalf("first invite: %v", err)
	}
	if err := env.folders.AddCollaborators(ctx, folder.ID, req); err != nil {
		t.Fatalf("second invite: %v", err)
	}

	target := env.store.workspaces[env.otherWsID]
	count := 0
	for _, ref := range target.Children {
		if ref.ID == folder.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("shared ref appears %d times, want 1", count)
	}

	owner := env.store.workspaces[env.wsID]
	if len(owner.UsersIDs) != 1 {
		t.Errorf("owner users_ids = %v, want a single entry", owner.UsersIDs)
	}
}

func TestAddCollaboratorsTooMany(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Popular", models.WorkspaceParent(env.wsID))

	targets := make([]string, 6)
	for i := range targets {
		targets[i] = fmt.Sprintf("invitee-%d", i)
	}
	err := env.folders.AddCollaborators(ctx, folder.ID, &wsSvc.AddCollaboratorsRequest{
		UserID:        testUserID,
		TargetUserIDs: targets,
	})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}

	// No workspace was touched.
	for id, ws := range env.store.workspaces {
		if ws.IsShared || len(ws.UsersIDs) != 0 {
			t.Errorf("workspace %s modified by rejected invite", id)
		}
	}
}

func TestAddCollaboratorsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Shared", models.WorkspaceParent(env.wsID))

	// Second target has no workspace; the whole invite must roll back.
	err := env.folders.AddCollaborators(ctx, folder.ID, &wsSvc.AddCollaboratorsRequest{
		UserID:        testUserID,
		TargetUserIDs: []string{otherUserID, "never-bootstrapped"},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	target := env.store.workspaces[env.otherWsID]
	if models.FindChild(target.Children, folder.ID) >= 0 {
		t.Error("partial invite: first target kept the shared ref after rollback")
	}
	if target.IsShared {
		t.Error("partial invite: first target workspace flagged shared after rollback")
	}
}

func TestAddCollaboratorsRequiresOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Not yours", models.WorkspaceParent(env.wsID))

	err := env.folders.AddCollaborators(ctx, folder.ID, &wsSvc.AddCollaboratorsRequest{
		UserID:        otherUserID,
		TargetUserIDs: []string{"someone"},
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestAddCollaboratorsOnlySelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Lonely", models.WorkspaceParent(env.wsID))

	// Inviting only yourself leaves nothing to do.
	err := env.folders.AddCollaborators(ctx, folder.ID, &wsSvc.AddCollaboratorsRequest{
		UserID:        testUserID,
		TargetUserIDs: []string{testUserID},
	})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}
