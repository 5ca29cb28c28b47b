package workspace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"loft/internal/domain"
	models "loft/internal/domain/models/workspace"
	"loft/internal/domain/repositories"
)

// fakeStore is an in-memory stand-in for the Postgres repositories. All repo
// fakes share one store so the transaction fake can snapshot and restore it,
// which lets tests assert all-or-nothing behavior without a database.
type fakeStore struct {
	profiles   map[string]*models.Profile
	workspaces map[string]*models.Workspace
	folders    map[string]*models.Folder
	documents  map[string]*models.Document
	files      map[string]*models.File

	// failUpdates forces Update calls on the named entity id to fail,
	// simulating a mid-transaction error.
	failUpdates map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:    make(map[string]*models.Profile),
		workspaces:  make(map[string]*models.Workspace),
		folders:     make(map[string]*models.Folder),
		documents:   make(map[string]*models.Document),
		files:       make(map[string]*models.File),
		failUpdates: make(map[string]bool),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	copied := newFakeStore()
	for id, p := range s.profiles {
		copied.profiles[id] = copyProfile(p)
	}
	for id, w := range s.workspaces {
		copied.workspaces[id] = copyWorkspace(w)
	}
	for id, f := range s.folders {
		copied.folders[id] = copyFolder(f)
	}
	for id, d := range s.documents {
		copied.documents[id] = copyDocument(d)
	}
	for id, f := range s.files {
		copied.files[id] = copyFile(f)
	}
	copied.failUpdates = s.failUpdates
	return copied
}

func (s *fakeStore) restore(from *fakeStore) {
	s.profiles = from.profiles
	s.workspaces = from.workspaces
	s.folders = from.folders
	s.documents = from.documents
	s.files = from.files
}

func copyProfile(p *models.Profile) *models.Profile {
	c := *p
	return &c
}

func copyWorkspace(w *models.Workspace) *models.Workspace {
	c := *w
	c.UsersIDs = append([]string(nil), w.UsersIDs...)
	c.Children = append([]models.ChildRef(nil), w.Children...)
	return &c
}

func copyFolder(f *models.Folder) *models.Folder {
	c := *f
	c.Children = append([]models.ChildRef(nil), f.Children...)
	return &c
}

func copyDocument(d *models.Document) *models.Document {
	c := *d
	return &c
}

func copyFile(f *models.File) *models.File {
	c := *f
	return &c
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}

// fakeTxManager snapshots the store before running fn and restores it when fn
// fails, mirroring a database rollback.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	before := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(before)
		return err
	}
	return nil
}

// --- profile repository ---

type fakeProfileRepo struct{ store *fakeStore }

func (r *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	for _, existing := range r.store.profiles {
		if existing.UserID == profile.UserID {
			return &domain.ConflictError{
				Message:      "profile already exists",
				ResourceType: "profile",
				ResourceID:   existing.ID,
			}
		}
	}
	r.store.profiles[profile.ID] = copyProfile(profile)
	return nil
}

func (r *fakeProfileRepo) GetByUser(ctx context.Context, userID string) (*models.Profile, error) {
	for _, p := range r.store.profiles {
		if p.UserID == userID {
			return copyProfile(p), nil
		}
	}
	return nil, notFound("profile for user", userID)
}

func (r *fakeProfileRepo) SearchByName(ctx context.Context, name, excludeUserID string) ([]models.Profile, error) {
	needle := strings.ToLower(name)
	out := []models.Profile{}
	for _, p := range r.store.profiles {
		if p.UserID == excludeUserID {
			continue
		}
		if strings.Contains(strings.ToLower(p.DisplayName), needle) {
			out = append(out, *copyProfile(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	if _, ok := r.store.profiles[profile.ID]; !ok {
		return notFound("profile", profile.ID)
	}
	r.store.profiles[profile.ID] = copyProfile(profile)
	return nil
}

// --- workspace repository ---

type fakeWorkspaceRepo struct{ store *fakeStore }

func (r *fakeWorkspaceRepo) Create(ctx context.Context, ws *models.Workspace) error {
	for _, existing := range r.store.workspaces {
		if existing.UserID == ws.UserID {
			return &domain.ConflictError{
				Message:      "workspace already exists",
				ResourceType: "workspace",
				ResourceID:   existing.ID,
			}
		}
	}
	r.store.workspaces[ws.ID] = copyWorkspace(ws)
	return nil
}

func (r *fakeWorkspaceRepo) GetByID(ctx context.Context, id, userID string) (*models.Workspace, error) {
	ws, ok := r.store.workspaces[id]
	if !ok || ws.UserID != userID {
		return nil, notFound("workspace", id)
	}
	return copyWorkspace(ws), nil
}

func (r *fakeWorkspaceRepo) GetByIDOnly(ctx context.Context, id string) (*models.Workspace, error) {
	ws, ok := r.store.workspaces[id]
	if !ok {
		return nil, notFound("workspace", id)
	}
	return copyWorkspace(ws), nil
}

func (r *fakeWorkspaceRepo) GetByUser(ctx context.Context, userID string) (*models.Workspace, error) {
	for _, ws := range r.store.workspaces {
		if ws.UserID == userID {
			return copyWorkspace(ws), nil
		}
	}
	return nil, notFound("workspace for user", userID)
}

func (r *fakeWorkspaceRepo) Update(ctx context.Context, ws *models.Workspace) error {
	if r.store.failUpdates[ws.ID] {
		return fmt.Errorf("forced update failure on %s", ws.ID)
	}
	existing, ok := r.store.workspaces[ws.ID]
	if !ok || existing.UserID != ws.UserID {
		return notFound("workspace", ws.ID)
	}
	r.store.workspaces[ws.ID] = copyWorkspace(ws)
	return nil
}

// --- folder repository ---

type fakeFolderRepo struct{ store *fakeStore }

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.store.folders[folder.ID] = copyFolder(folder)
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	f, ok := r.store.folders[id]
	if !ok || f.UserID != userID {
		return nil, notFound("folder", id)
	}
	return copyFolder(f), nil
}

func (r *fakeFolderRepo) GetByIDOnly(ctx context.Context, id string) (*models.Folder, error) {
	f, ok := r.store.folders[id]
	if !ok {
		return nil, notFound("folder", id)
	}
	return copyFolder(f), nil
}

func (r *fakeFolderRepo) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	out := []models.Folder{}
	for _, f := range r.store.folders {
		if f.UserID == userID {
			out = append(out, *copyFolder(f))
		}
	}
	sortFoldersByID(out)
	return out, nil
}

func (r *fakeFolderRepo) ListByParentFolder(ctx context.Context, userID, parentFolderID string) ([]models.Folder, error) {
	out := []models.Folder{}
	for _, f := range r.store.folders {
		if f.UserID == userID && f.Parent.IsFolder() && f.Parent.ID == parentFolderID {
			out = append(out, *copyFolder(f))
		}
	}
	sortFoldersByID(out)
	return out, nil
}

func (r *fakeFolderRepo) ListStandalone(ctx context.Context, userID string) ([]models.Folder, error) {
	out := []models.Folder{}
	for _, f := range r.store.folders {
		if f.UserID == userID && f.Parent.Kind == models.ParentKindWorkspace && !f.IsArchived {
			out = append(out, *copyFolder(f))
		}
	}
	sortFoldersByID(out)
	return out, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	if r.store.failUpdates[folder.ID] {
		return fmt.Errorf("forced update failure on %s", folder.ID)
	}
	existing, ok := r.store.folders[folder.ID]
	if !ok || existing.UserID != folder.UserID {
		return notFound("folder", folder.ID)
	}
	r.store.folders[folder.ID] = copyFolder(folder)
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, userID string) error {
	existing, ok := r.store.folders[id]
	if !ok || existing.UserID != userID {
		return notFound("folder", id)
	}
	delete(r.store.folders, id)
	return nil
}

func sortFoldersByID(folders []models.Folder) {
	sort.Slice(folders, func(i, j int) bool { return folders[i].ID < folders[j].ID })
}

// --- document repository ---

type fakeDocumentRepo struct{ store *fakeStore }

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	r.store.documents[doc.ID] = copyDocument(doc)
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id, userID string) (*models.Document, error) {
	d, ok := r.store.documents[id]
	if !ok || d.UserID != userID {
		return nil, notFound("document", id)
	}
	return copyDocument(d), nil
}

func (r *fakeDocumentRepo) GetByIDOnly(ctx context.Context, id string) (*models.Document, error) {
	d, ok := r.store.documents[id]
	if !ok {
		return nil, notFound("document", id)
	}
	return copyDocument(d), nil
}

func (r *fakeDocumentRepo) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	out := []models.Document{}
	for _, d := range r.store.documents {
		if d.UserID == userID {
			out = append(out, *copyDocument(d))
		}
	}
	sortDocumentsByID(out)
	return out, nil
}

func (r *fakeDocumentRepo) ListByParentFolder(ctx context.Context, userID, parentFolderID string) ([]models.Document, error) {
	out := []models.Document{}
	for _, d := range r.store.documents {
		if d.UserID == userID && d.Parent.IsFolder() && d.Parent.ID == parentFolderID {
			out = append(out, *copyDocument(d))
		}
	}
	sortDocumentsByID(out)
	return out, nil
}

func (r *fakeDocumentRepo) ListSearchable(ctx context.Context, userID string) ([]models.Document, error) {
	out := []models.Document{}
	for _, d := range r.store.documents {
		if d.UserID == userID && !d.IsArchived {
			out = append(out, *copyDocument(d))
		}
	}
	sortDocumentsByID(out)
	return out, nil
}

func (r *fakeDocumentRepo) ListStandalone(ctx context.Context, userID string) ([]models.Document, error) {
	out := []models.Document{}
	for _, d := range r.store.documents {
		if d.UserID == userID && d.Parent.Kind == models.ParentKindWorkspace && !d.IsArchived {
			out = append(out, *copyDocument(d))
		}
	}
	sortDocumentsByID(out)
	return out, nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, doc *models.Document) error {
	if r.store.failUpdates[doc.ID] {
		return fmt.Errorf("forced update failure on %s", doc.ID)
	}
	existing, ok := r.store.documents[doc.ID]
	if !ok || existing.UserID != doc.UserID {
		return notFound("document", doc.ID)
	}
	r.store.documents[doc.ID] = copyDocument(doc)
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id, userID string) error {
	existing, ok := r.store.documents[id]
	if !ok || existing.UserID != userID {
		return notFound("document", id)
	}
	delete(r.store.documents, id)
	return nil
}

func sortDocumentsByID(docs []models.Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
}

// --- file repository ---

type fakeFileRepo struct{ store *fakeStore }

func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	r.store.files[file.ID] = copyFile(file)
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id, userID string) (*models.File, error) {
	f, ok := r.store.files[id]
	if !ok || f.UserID != userID {
		return nil, notFound("file", id)
	}
	return copyFile(f), nil
}

func (r *fakeFileRepo) GetByIDOnly(ctx context.Context, id string) (*models.File, error) {
	f, ok := r.store.files[id]
	if !ok {
		return nil, notFound("file", id)
	}
	return copyFile(f), nil
}

func (r *fakeFileRepo) ListByUser(ctx context.Context, userID string) ([]models.File, error) {
	out := []models.File{}
	for _, f := range r.store.files {
		if f.UserID == userID {
			out = append(out, *copyFile(f))
		}
	}
	sortFilesByID(out)
	return out, nil
}

func (r *fakeFileRepo) ListByParentFolder(ctx context.Context, userID, parentFolderID string) ([]models.File, error) {
	out := []models.File{}
	for _, f := range r.store.files {
		if f.UserID == userID && f.Parent.IsFolder() && f.Parent.ID == parentFolderID {
			out = append(out, *copyFile(f))
		}
	}
	sortFilesByID(out)
	return out, nil
}

func (r *fakeFileRepo) ListSearchable(ctx context.Context, userID string) ([]models.File, error) {
	out := []models.File{}
	for _, f := range r.store.files {
		if f.UserID == userID && !f.IsArchived {
			out = append(out, *copyFile(f))
		}
	}
	sortFilesByID(out)
	return out, nil
}

func (r *fakeFileRepo) ListStandalone(ctx context.Context, userID string) ([]models.File, error) {
	out := []models.File{}
	for _, f := range r.store.files {
		if f.UserID == userID && f.Parent.Kind == models.ParentKindWorkspace && !f.IsArchived {
			out = append(out, *copyFile(f))
		}
	}
	sortFilesByID(out)
	return out, nil
}

func (r *fakeFileRepo) Update(ctx context.Context, file *models.File) error {
	if r.store.failUpdates[file.ID] {
		return fmt.Errorf("forced update failure on %s", file.ID)
	}
	existing, ok := r.store.files[file.ID]
	if !ok || existing.UserID != file.UserID {
		return notFound("file", file.ID)
	}
	r.store.files[file.ID] = copyFile(file)
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id, userID string) error {
	existing, ok := r.store.files[id]
	if !ok || existing.UserID != userID {
		return notFound("file", id)
	}
	delete(r.store.files, id)
	return nil
}

func sortFilesByID(files []models.File) {
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
