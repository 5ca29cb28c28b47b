package workspace

import (
	"context"
	"testing"
	"time"

	models "loft/internal/domain/models/workspace"
	wsSvc "loft/internal/domain/services/workspace"
	serviceAuth "loft/internal/service/auth"
)

const (
	testUserID  = "user-1"
	otherUserID = "user-2"
)

// testEnv wires every service over the shared in-memory store, with the real
// ownership authorizer in the middle.
type testEnv struct {
	store *fakeStore

	workspaceRepo *fakeWorkspaceRepo
	folderRepo    *fakeFolderRepo
	docRepo       *fakeDocumentRepo
	fileRepo      *fakeFileRepo
	profileRepo   *fakeProfileRepo

	folders    wsSvc.FolderService
	documents  wsSvc.DocumentService
	files      wsSvc.FileService
	workspaces wsSvc.WorkspaceService
	bootstrap  wsSvc.BootstrapService
	search     wsSvc.SearchService
	sweep      wsSvc.SweepService

	wsID      string
	otherWsID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newFakeStore()
	env := &testEnv{
		store:         store,
		workspaceRepo: &fakeWorkspaceRepo{store: store},
		folderRepo:    &fakeFolderRepo{store: store},
		docRepo:       &fakeDocumentRepo{store: store},
		fileRepo:      &fakeFileRepo{store: store},
		profileRepo:   &fakeProfileRepo{store: store},
	}

	txManager := &fakeTxManager{store: store}
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(env.workspaceRepo, env.folderRepo, env.docRepo, env.fileRepo)
	logger := testLogger()

	env.folders = NewFolderService(env.folderRepo, env.docRepo, env.fileRepo, env.workspaceRepo, txManager, authorizer, logger)
	env.documents = NewDocumentService(env.docRepo, env.folderRepo, env.fileRepo, env.workspaceRepo, txManager, authorizer, logger)
	env.files = NewFileService(env.fileRepo, env.folderRepo, env.docRepo, env.workspaceRepo, txManager, authorizer, logger)
	env.workspaces = NewWorkspaceService(env.workspaceRepo, txManager, authorizer, logger)
	env.bootstrap = NewBootstrapService(env.profileRepo, env.workspaceRepo, logger)
	env.search = NewSearchService(env.folderRepo, env.docRepo, env.fileRepo, logger)
	env.sweep = NewSweepService(env.workspaceRepo, env.folderRepo, env.docRepo, env.fileRepo, txManager, logger)

	env.wsID = env.seedWorkspace(t, testUserID)
	env.otherWsID = env.seedWorkspace(t, otherUserID)

	return env
}

func (e *testEnv) seedWorkspace(t *testing.T, userID string) string {
	t.Helper()
	now := time.Now()
	ws := &models.Workspace{
		ID:        "ws-" + userID,
		UserID:    userID,
		Name:      userID + "'s workspace",
		UsersIDs:  []string{},
		Children:  []models.ChildRef{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.workspaceRepo.Create(context.Background(), ws); err != nil {
		t.Fatalf("seed workspace for %s: %v", userID, err)
	}
	return ws.ID
}

// mustCreateFolder creates a folder for testUserID and fails the test on error.
func (e *testEnv) mustCreateFolder(t *testing.T, title string, parent models.ParentRef) *models.Folder {
	t.Helper()
	folder, err := e.folders.CreateFolder(context.Background(), &wsSvc.CreateFolderRequest{
		UserID: testUserID,
		Title:  title,
		Parent: parent,
	})
	if err != nil {
		t.Fatalf("create folder %q: %v", title, err)
	}
	return folder
}

func (e *testEnv) mustCreateDocument(t *testing.T, title string, parent models.ParentRef) *models.Document {
	t.Helper()
	doc, err := e.documents.CreateDocument(context.Background(), &wsSvc.CreateDocumentRequest{
		UserID: testUserID,
		Title:  title,
		Parent: parent,
	})
	if err != nil {
		t.Fatalf("create document %q: %v", title, err)
	}
	return doc
}

func (e *testEnv) mustSaveFile(t *testing.T, title string, parent models.ParentRef) *models.File {
	t.Helper()
	file, err := e.files.SaveFile(context.Background(), &wsSvc.SaveFileRequest{
		UserID: testUserID,
		Title:  title,
		URL:    "https://files.example.com/upload.bin",
		SizeMB: 1.5,
		Parent: parent,
	})
	if err != nil {
		t.Fatalf("save file %q: %v", title, err)
	}
	return file
}

// childIDs returns the ids in a children cache, in order.
func childIDs(children []models.ChildRef) []string {
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = c.ID
	}
	return out
}
