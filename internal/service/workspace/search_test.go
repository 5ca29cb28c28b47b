package workspace

import (
	"context"
	"testing"

	models "loft/internal/domain/models/workspace"
)

func TestSearchProjectionExcludesArchived(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Box", models.WorkspaceParent(env.wsID))
	live := env.mustCreateDocument(t, "Live", models.FolderParent(folder.ID))
	dead := env.mustCreateDocument(t, "Dead", models.FolderParent(folder.ID))
	if _, err := env.documents.ArchiveDocument(ctx, testUserID, dead.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}

	docs, err := env.search.SearchableDocuments(ctx, testUserID)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != live.ID {
		t.Errorf("searchable = %v, want only the live document", docs)
	}
}

func TestSearchProjectionScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateDocument(t, "Mine", models.WorkspaceParent(env.wsID))

	docs, err := env.search.SearchableDocuments(ctx, otherUserID)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("searchable for other user = %v, want empty", docs)
	}
}

func TestStandaloneListings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rootFolder := env.mustCreateFolder(t, "Root folder", models.WorkspaceParent(env.wsID))
	env.mustCreateFolder(t, "Nested", models.FolderParent(rootFolder.ID))
	rootDoc := env.mustCreateDocument(t, "Root doc", models.WorkspaceParent(env.wsID))
	env.mustCreateDocument(t, "Nested doc", models.FolderParent(rootFolder.ID))
	rootFile := env.mustSaveFile(t, "rootfile", models.WorkspaceParent(env.wsID))

	folders, err := env.search.StandaloneFolders(ctx, testUserID)
	if err != nil {
		t.Fatalf("standalone folders: %v", err)
	}
	if len(folders) != 1 || folders[0].ID != rootFolder.ID {
		t.Errorf("standalone folders = %v, want only the root-level one", folders)
	}

	docs, err := env.search.StandaloneDocuments(ctx, testUserID)
	if err != nil {
		t.Fatalf("standalone documents: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != rootDoc.ID {
		t.Errorf("standalone documents = %v, want only the root-level one", docs)
	}

	files, err := env.search.StandaloneFiles(ctx, testUserID)
	if err != nil {
		t.Fatalf("standalone files: %v", err)
	}
	if len(files) != 1 || files[0].ID != rootFile.ID {
		t.Errorf("standalone files = %v, want only the root-level one", files)
	}
}

func TestArchivedFolderLeavesSearchProjection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Doomed", models.WorkspaceParent(env.wsID))
	if _, err := env.folders.ArchiveFolder(ctx, testUserID, folder.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}

	folders, err := env.search.StandaloneFolders(ctx, testUserID)
	if err != nil {
		t.Fatalf("standalone folders: %v", err)
	}
	if len(folders) != 0 {
		t.Errorf("standalone folders = %v, want empty after archive", folders)
	}
}
