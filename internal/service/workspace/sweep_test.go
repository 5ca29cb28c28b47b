package workspace

import (
	"context"
	"testing"

	models "loft/internal/domain/models/workspace"
	wsSvc "loft/internal/domain/services/workspace"
)

func TestSweepNoopOnHealthyTree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Tidy", models.WorkspaceParent(env.wsID))
	env.mustCreateDocument(t, "Doc", models.FolderParent(folder.ID))

	report, err := env.sweep.Reconcile(ctx, testUserID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if report.DanglingRefsRemoved != 0 || report.OrphansReattached != 0 {
		t.Errorf("report = %+v, want all zeros on a healthy tree", report)
	}
}

func TestSweepDropsDanglingRefs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Keeper", models.WorkspaceParent(env.wsID))

	// Corrupt the cache out-of-band: a ref pointing at nothing.
	ws := env.store.workspaces[env.wsID]
	ws.Children = append(ws.Children, models.ChildRef{ID: "ghost", Type: models.ChildKindDocument, Title: "Ghost"})

	report, err := env.sweep.Reconcile(ctx, testUserID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if report.DanglingRefsRemoved != 1 {
		t.Errorf("dangling removed = %d, want 1", report.DanglingRefsRemoved)
	}

	ws = env.store.workspaces[env.wsID]
	if models.FindChild(ws.Children, "ghost") >= 0 {
		t.Error("dangling ref survived the sweep")
	}
	if models.FindChild(ws.Children, folder.ID) < 0 {
		t.Error("live ref was dropped by the sweep")
	}
}

func TestSweepReattachesOrphans(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// A document whose parent folder row is gone.
	doc := env.mustCreateDocument(t, "Lost", models.WorkspaceParent(env.wsID))
	row := env.store.documents[doc.ID]
	row.Parent = models.FolderParent("deleted-folder")
	ws := env.store.workspaces[env.wsID]
	ws.Children = models.RemoveChild(ws.Children, doc.ID)

	report, err := env.sweep.Reconcile(ctx, testUserID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if report.OrphansReattached != 1 {
		t.Errorf("orphans reattached = %d, want 1", report.OrphansReattached)
	}

	got := env.store.documents[doc.ID]
	if got.Parent.Kind != models.ParentKindWorkspace || got.Parent.ID != env.wsID {
		t.Errorf("orphan parent = %+v, want workspace root", got.Parent)
	}
	ws = env.store.workspaces[env.wsID]
	if models.FindChild(ws.Children, doc.ID) < 0 {
		t.Error("reattached orphan missing from workspace children")
	}
}

func TestSweepKeepsSharedFolderRefs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Shared", models.WorkspaceParent(env.wsID))
	if err := env.folders.AddCollaborators(ctx, folder.ID, &wsSvc.AddCollaboratorsRequest{
		UserID:        testUserID,
		TargetUserIDs: []string{otherUserID},
	}); err != nil {
		t.Fatalf("add collaborators: %v", err)
	}

	// The ref in the collaborator's workspace points at a folder owned by
	// someone else; their sweep must not treat it as dangling.
	report, err := env.sweep.Reconcile(ctx, otherUserID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if report.DanglingRefsRemoved != 0 {
		t.Errorf("dangling removed = %d, want 0 with a live shared folder", report.DanglingRefsRemoved)
	}
	if models.FindChild(env.store.workspaces[env.otherWsID].Children, folder.ID) < 0 {
		t.Error("shared folder ref was pruned from the collaborator's workspace")
	}

	// Once the owner deletes the folder the stale share IS dangling, and the
	// collaborator's sweep is what cleans it up.
	if err := env.folders.DeleteFolder(ctx, testUserID, folder.ID); err != nil {
		t.Fatalf("delete folder: %v", err)
	}
	report, err = env.sweep.Reconcile(ctx, otherUserID)
	if err != nil {
		t.Fatalf("reconcile after delete: %v", err)
	}
	if report.DanglingRefsRemoved != 1 {
		t.Errorf("dangling removed = %d, want 1 after the owner deleted the folder", report.DanglingRefsRemoved)
	}
	if models.FindChild(env.store.workspaces[env.otherWsID].Children, folder.ID) >= 0 {
		t.Error("stale share survived the sweep")
	}
}

func TestSweepScopedToOneUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Corrupt the OTHER user's cache; sweeping testUserID must not touch it.
	other := env.store.workspaces[env.otherWsID]
	other.Children = append(other.Children, models.ChildRef{ID: "ghost", Type: models.ChildKindFolder, Title: "Ghost"})

	report, err := env.sweep.Reconcile(ctx, testUserID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if report.DanglingRefsRemoved != 0 {
		t.Errorf("dangling removed = %d, want 0 for the clean user", report.DanglingRefsRemoved)
	}
	if models.FindChild(env.store.workspaces[env.otherWsID].Children, "ghost") < 0 {
		t.Error("sweep crossed user boundary")
	}
}
