package workspace

import (
	"context"
	"errors"
	"testing"

	"loft/internal/domain"
	models "loft/internal/domain/models/workspace"
	wsSvc "loft/internal/domain/services/workspace"
)

func TestCreateFolderRegistersChildRef(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Research", models.WorkspaceParent(env.wsID))

	ws, err := env.workspaces.GetUserWorkspace(ctx, testUserID)
	if err != nil {
		t.Fatalf("get workspace: %v", err)
	}
	if len(ws.Children) != 1 {
		t.Fatalf("workspace children = %v, want exactly the new folder", childIDs(ws.Children))
	}
	ref := ws.Children[0]
	if ref.ID != folder.ID || ref.Type != models.ChildKindFolder || ref.Title != "Research" {
		t.Errorf("child ref = %+v, want id=%s type=folder title=Research", ref, folder.ID)
	}
}

func TestCreateFolderUnderMissingParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.folders.CreateFolder(ctx, &wsSvc.CreateFolderRequest{
		UserID: testUserID,
		Title:  "Orphan",
		Parent: models.FolderParent("no-such-folder"),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(env.store.folders) != 0 {
		t.Errorf("folder row was created despite missing parent")
	}
}

func TestCreateFolderUnderForeignParentWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Victim's workspace as parent, attacker as caller.
	_, err := env.folders.CreateFolder(ctx, &wsSvc.CreateFolderRequest{
		UserID: otherUserID,
		Title:  "Intruder",
		Parent: models.WorkspaceParent(env.wsID),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound (owner-scoped parent lookup)", err)
	}

	ws, _ := env.workspaces.GetUserWorkspace(ctx, testUserID)
	if len(ws.Children) != 0 {
		t.Errorf("victim workspace children = %v, want unchanged", childIDs(ws.Children))
	}
}

func TestCreateFolderInvalidTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		title string
	}{
		{"empty", ""},
		{"too long", string(make([]byte, 300))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.folders.CreateFolder(ctx, &wsSvc.CreateFolderRequest{
				UserID: testUserID,
				Title:  tt.title,
				Parent: models.WorkspaceParent(env.wsID),
			})
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestRenameFolderRewritesParentRef(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Drafts", models.WorkspaceParent(env.wsID))

	newTitle := "Final drafts"
	icon := "📄"
	renamed, err := env.folders.RenameFolder(ctx, folder.ID, &wsSvc.RenameRequest{
		UserID: testUserID,
		Title:  &newTitle,
		Icon:   &icon,
	})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Title != newTitle {
		t.Errorf("folder title = %q, want %q", renamed.Title, newTitle)
	}

	ws, _ := env.workspaces.GetUserWorkspace(ctx, testUserID)
	ref := ws.Children[0]
	if ref.Title != newTitle {
		t.Errorf("cached ref title = %q, want %q", ref.Title, newTitle)
	}
	if ref.Icon == nil || *ref.Icon != icon {
		t.Errorf("cached ref icon = %v, want %q", ref.Icon, icon)
	}
}

func TestRenameFolderIconRemoveSentinel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Ideas", models.WorkspaceParent(env.wsID))

	icon := "💡"
	if _, err := env.folders.RenameFolder(ctx, folder.ID, &wsSvc.RenameRequest{UserID: testUserID, Icon: &icon}); err != nil {
		t.Fatalf("set icon: %v", err)
	}

	remove := "remove"
	cleared, err := env.folders.RenameFolder(ctx, folder.ID, &wsSvc.RenameRequest{UserID: testUserID, Icon: &remove})
	if err != nil {
		t.Fatalf("clear icon: %v", err)
	}
	if cleared.Icon != nil {
		t.Errorf("folder icon = %v, want nil after remove", *cleared.Icon)
	}

	ws, _ := env.workspaces.GetUserWorkspace(ctx, testUserID)
	if ws.Children[0].Icon != nil {
		t.Errorf("cached ref icon = %v, want nil after remove", *ws.Children[0].Icon)
	}
}

func TestRenameFolderRequiresAField(t *testing.T) {
	env := newTestEnv(t)
	folder := env.mustCreateFolder(t, "Empty patch", models.WorkspaceParent(env.wsID))

	_, err := env.folders.RenameFolder(context.Background(), folder.ID, &wsSvc.RenameRequest{UserID: testUserID})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestArchiveFolderCascadesButSparesFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// root ─ top ─ mid ─ doc2
	//          ├─ doc1
	//          └─ file1
	top := env.mustCreateFolder(t, "Top", models.WorkspaceParent(env.wsID))
	mid := env.mustCreateFolder(t, "Mid", models.FolderParent(top.ID))
	doc1 := env.mustCreateDocument(t, "Doc one", models.FolderParent(top.ID))
	doc2 := env.mustCreateDocument(t, "Doc two", models.FolderParent(mid.ID))
	file1 := env.mustSaveFile(t, "asset", models.FolderParent(top.ID))

	if _, err := env.folders.ArchiveFolder(ctx, testUserID, top.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}

	for _, id := range []string{top.ID, mid.ID} {
		if !env.store.folders[id].IsArchived {
			t.Errorf("folder %s not archived", id)
		}
	}
	for _, id := range []string{doc1.ID, doc2.ID} {
		if !env.store.documents[id].IsArchived {
			t.Errorf("document %s not archived", id)
		}
	}
	if env.store.files[file1.ID].IsArchived {
		t.Errorf("file %s archived, files must stay active", file1.ID)
	}

	// Archived nodes stay in the tree view: the ChildRef survives.
	ws, _ := env.workspaces.GetUserWorkspace(ctx, testUserID)
	if models.FindChild(ws.Children, top.ID) < 0 {
		t.Errorf("archived folder vanished from workspace children")
	}
}

func TestDeleteFolderCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	top := env.mustCreateFolder(t, "Top", models.WorkspaceParent(env.wsID))
	mid := env.mustCreateFolder(t, "Mid", models.FolderParent(top.ID))
	deep := env.mustCreateFolder(t, "Deep", models.FolderParent(mid.ID))
	doc := env.mustCreateDocument(t, "Doc", models.FolderParent(deep.ID))
	file := env.mustSaveFile(t, "asset", models.FolderParent(mid.ID))
	keeper := env.mustCreateDocument(t, "Keeper", models.WorkspaceParent(env.wsID))

	if err := env.folders.DeleteFolder(ctx, testUserID, top.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, id := range []string{top.ID, mid.ID, deep.ID} {
		if _, ok := env.store.folders[id]; ok {
			t.Errorf("folder %s still exists after cascade", id)
		}
	}
	if _, ok := env.store.documents[doc.ID]; ok {
		t.Errorf("document %s still exists after cascade", doc.ID)
	}
	if _, ok := env.store.files[file.ID]; ok {
		t.Errorf("file %s still exists after cascade", file.ID)
	}
	if _, ok := env.store.documents[keeper.ID]; !ok {
		t.Errorf("sibling document was deleted by cascade")
	}

	ws, _ := env.workspaces.GetUserWorkspace(ctx, testUserID)
	if models.FindChild(ws.Children, top.ID) >= 0 {
		t.Errorf("deleted folder still cached in workspace children")
	}
	if models.FindChild(ws.Children, keeper.ID) < 0 {
		t.Errorf("sibling ref was stripped from workspace children")
	}

	// Second delete of the same id surfaces NotFound.
	if err := env.folders.DeleteFolder(ctx, testUserID, top.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("re-delete err = %v, want ErrNotFound", err)
	}
}

func TestDeleteFolderRollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	top := env.mustCreateFolder(t, "Top", models.WorkspaceParent(env.wsID))
	env.mustCreateDocument(t, "Doc", models.FolderParent(top.ID))

	// Stripping the ChildRef rewrites the workspace row; forcing that write
	// to fail must leave the whole subtree intact.
	env.store.failUpdates[env.wsID] = true
	err := env.folders.DeleteFolder(ctx, testUserID, top.ID)
	if err == nil {
		t.Fatal("delete succeeded despite forced workspace write failure")
	}

	if _, ok := env.store.folders[top.ID]; !ok {
		t.Errorf("folder deleted despite transaction failure")
	}
	if len(env.store.documents) != 1 {
		t.Errorf("documents = %d, want the child doc restored", len(env.store.documents))
	}
}

func TestMoveFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustCreateFolder(t, "A", models.WorkspaceParent(env.wsID))
	b := env.mustCreateFolder(t, "B", models.WorkspaceParent(env.wsID))
	doc := env.mustCreateDocument(t, "Doc in A", models.FolderParent(a.ID))

	moved, err := env.folders.MoveFolder(ctx, a.ID, &wsSvc.MoveRequest{
		UserID:    testUserID,
		NewParent: models.FolderParent(b.ID),
	})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !moved.Parent.IsFolder() || moved.Parent.ID != b.ID {
		t.Errorf("moved parent = %+v, want folder %s", moved.Parent, b.ID)
	}

	ws, _ := env.workspaces.GetUserWorkspace(ctx, testUserID)
	if models.FindChild(ws.Children, a.ID) >= 0 {
		t.Errorf("moved folder still cached on old parent")
	}
	bRow := env.store.folders[b.ID]
	if models.FindChild(bRow.Children, a.ID) < 0 {
		t.Errorf("moved folder missing from new parent children")
	}

	// Contents travel with the folder.
	if env.store.documents[doc.ID].Parent.ID != a.ID {
		t.Errorf("document parent changed; contents must keep their parent")
	}
}

func TestMoveFolderIntoOwnSubtreeRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	top := env.mustCreateFolder(t, "Top", models.WorkspaceParent(env.wsID))
	child := env.mustCreateFolder(t, "Child", models.FolderParent(top.ID))

	tests := []struct {
		name   string
		target string
	}{
		{"into itself", top.ID},
		{"into descendant", child.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.folders.MoveFolder(ctx, top.ID, &wsSvc.MoveRequest{
				UserID:    testUserID,
				NewParent: models.FolderParent(tt.target),
			})
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}

	// Nothing moved.
	if env.store.folders[top.ID].Parent.Kind != models.ParentKindWorkspace {
		t.Errorf("folder parent changed after rejected moves")
	}
}

func TestFolderOwnershipGuard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Private", models.WorkspaceParent(env.wsID))
	title := "Hijacked"

	// Every operation against a foreign folder fails without changing state.
	ops := []struct {
		name string
		call func() error
	}{
		{"get", func() error { _, err := env.folders.GetFolder(ctx, otherUserID, folder.ID); return err }},
		{"children", func() error { _, err := env.folders.GetChildren(ctx, otherUserID, folder.ID); return err }},
		{"rename", func() error {
			_, err := env.folders.RenameFolder(ctx, folder.ID, &wsSvc.RenameRequest{UserID: otherUserID, Title: &title})
			return err
		}},
		{"archive", func() error { _, err := env.folders.ArchiveFolder(ctx, otherUserID, folder.ID); return err }},
		{"delete", func() error { return env.folders.DeleteFolder(ctx, otherUserID, folder.ID) }},
	}
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			err := op.call()
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("err = %v, want ErrUnauthorized", err)
			}
		})
	}

	row := env.store.folders[folder.ID]
	if row == nil || row.Title != "Private" || row.IsArchived {
		t.Errorf("folder state changed by unauthorized calls: %+v", row)
	}
}

func TestGetChildrenListsLiveRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	top := env.mustCreateFolder(t, "Top", models.WorkspaceParent(env.wsID))
	sub := env.mustCreateFolder(t, "Sub", models.FolderParent(top.ID))
	doc := env.mustCreateDocument(t, "Doc", models.FolderParent(top.ID))
	file := env.mustSaveFile(t, "asset", models.FolderParent(top.ID))

	contents, err := env.folders.GetChildren(ctx, testUserID, top.ID)
	if err != nil {
		t.Fatalf("get children: %v", err)
	}

	if len(contents.Children) != 3 {
		t.Errorf("cached children = %v, want 3 entries", childIDs(contents.Children))
	}
	if len(contents.Folders) != 1 || contents.Folders[0].ID != sub.ID {
		t.Errorf("folders = %v, want [%s]", contents.Folders, sub.ID)
	}
	if len(contents.Documents) != 1 || contents.Documents[0].ID != doc.ID {
		t.Errorf("documents = %v, want [%s]", contents.Documents, doc.ID)
	}
	if len(contents.Files) != 1 || contents.Files[0].ID != file.ID {
		t.Errorf("files = %v, want [%s]", contents.Files, file.ID)
	}
}
