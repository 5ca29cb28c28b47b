package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"loft/internal/domain"
	models "loft/internal/domain/models/workspace"
	wsRepo "loft/internal/domain/repositories/workspace"
)

// treeStore implements the shared half of the tree mutation protocol: keeping
// a parent's children cache and the child rows' parent pointers mutually
// consistent. Folder, document and file services call into it from inside a
// transaction, so each helper is a plain sequence of repo calls with no
// compensation logic of its own.
type treeStore struct {
	workspaceRepo wsRepo.WorkspaceRepository
	folderRepo    wsRepo.FolderRepository
	docRepo       wsRepo.DocumentRepository
	fileRepo      wsRepo.FileRepository
	logger        *slog.Logger
}

func newTreeStore(
	workspaceRepo wsRepo.WorkspaceRepository,
	folderRepo wsRepo.FolderRepository,
	docRepo wsRepo.DocumentRepository,
	fileRepo wsRepo.FileRepository,
	logger *slog.Logger,
) *treeStore {
	return &treeStore{
		workspaceRepo: workspaceRepo,
		folderRepo:    folderRepo,
		docRepo:       docRepo,
		fileRepo:      fileRepo,
		logger:        logger,
	}
}

// requireParent loads the parent container owner-scoped, so a dangling or
// foreign parent reference surfaces as NotFound before any write happens.
func (t *treeStore) requireParent(ctx context.Context, userID string, parent models.ParentRef) error {
	var err error
	switch parent.Kind {
	case models.ParentKindWorkspace:
		_, err = t.workspaceRepo.GetByID(ctx, parent.ID, userID)
	case models.ParentKindFolder:
		_, err = t.folderRepo.GetByID(ctx, parent.ID, userID)
	default:
		return fmt.Errorf("unknown parent kind %q: %w", parent.Kind, domain.ErrInvalidArgument)
	}
	if err != nil {
		return fmt.Errorf("parent %s %s: %w", parent.Kind, parent.ID, err)
	}
	return nil
}

// appendChildRef registers a new child in its parent's children cache.
func (t *treeStore) appendChildRef(ctx context.Context, userID string, parent models.ParentRef, ref models.ChildRef) error {
	return t.patchChildren(ctx, userID, parent, func(children []models.ChildRef) []models.ChildRef {
		return append(children, ref)
	})
}

// rewriteChildRef updates the cached title/icon of a child in place. All
// other entries pass through untouched; a missing entry is repaired by
// appending, since the child row is authoritative.
func (t *treeStore) rewriteChildRef(ctx context.Context, userID string, parent models.ParentRef, ref models.ChildRef) error {
	return t.patchChildren(ctx, userID, parent, func(children []models.ChildRef) []models.ChildRef {
		i := models.FindChild(children, ref.ID)
		if i < 0 {
			return append(children, ref)
		}
		children[i].Title = ref.Title
		children[i].Icon = ref.Icon
		return children
	})
}

// removeChildRef strips a child's entry from its parent's children cache.
func (t *treeStore) removeChildRef(ctx context.Context, userID string, parent models.ParentRef, childID string) error {
	return t.patchChildren(ctx, userID, parent, func(children []models.ChildRef) []models.ChildRef {
		return models.RemoveChild(children, childID)
	})
}

func (t *treeStore) patchChildren(ctx context.Context, userID string, parent models.ParentRef, patch func([]models.ChildRef) []models.ChildRef) error {
	switch parent.Kind {
	case models.ParentKindWorkspace:
		ws, err := t.workspaceRepo.GetByID(ctx, parent.ID, userID)
		if err != nil {
			return fmt.Errorf("parent workspace %s: %w", parent.ID, err)
		}
		ws.Children = patch(ws.Children)
		ws.UpdatedAt = time.Now()
		return t.workspaceRepo.Update(ctx, ws)
	case models.ParentKindFolder:
		folder, err := t.folderRepo.GetByID(ctx, parent.ID, userID)
		if err != nil {
			return fmt.Errorf("parent folder %s: %w", parent.ID, err)
		}
		folder.Children = patch(folder.Children)
		folder.UpdatedAt = time.Now()
		return t.folderRepo.Update(ctx, folder)
	}
	return fmt.Errorf("unknown parent kind %q: %w", parent.Kind, domain.ErrInvalidArgument)
}

// archiveSubtree flips is_archived on every folder and document below the
// given folder. The walk is iterative over an explicit queue so pathological
// depth cannot exhaust the call stack, and each step is idempotent: archiving
// an already-archived row is a plain no-op rewrite. Files are deliberately
// left active; archival treats them as immutable artifacts rather than
// documents in progress.
func (t *treeStore) archiveSubtree(ctx context.Context, userID, rootFolderID string) error {
	queue := []string{rootFolderID}
	for len(queue) > 0 {
		folderID := queue[0]
		queue = queue[1:]

		docs, err := t.docRepo.ListByParentFolder(ctx, userID, folderID)
		if err != nil {
			return fmt.Errorf("list documents under %s: %w", folderID, err)
		}
		for i := range docs {
			docs[i].IsArchived = true
			docs[i].UpdatedAt = time.Now()
			if err := t.docRepo.Update(ctx, &docs[i]); err != nil {
				return fmt.Errorf("archive document %s: %w", docs[i].ID, err)
			}
		}

		subfolders, err := t.folderRepo.ListByParentFolder(ctx, userID, folderID)
		if err != nil {
			return fmt.Errorf("list folders under %s: %w", folderID, err)
		}
		for i := range subfolders {
			subfolders[i].IsArchived = true
			subfolders[i].UpdatedAt = time.Now()
			if err := t.folderRepo.Update(ctx, &subfolders[i]); err != nil {
				return fmt.Errorf("archive folder %s: %w", subfolders[i].ID, err)
			}
			queue = append(queue, subfolders[i].ID)
		}
	}
	return nil
}

// deleteSubtree hard-deletes every row below the given folder, then the
// folder itself. Children are fully removed before their parent folder's row:
// descendant folders are discovered breadth-first (parents before children)
// and deleted in reverse order. Descendants are found by the parent index,
// not the children cache, so rows missing from a stale cache still die.
func (t *treeStore) deleteSubtree(ctx context.Context, userID, rootFolderID string) error {
	folderIDs := []string{rootFolderID}
	for i := 0; i < len(folderIDs); i++ {
		subfolders, err := t.folderRepo.ListByParentFolder(ctx, userID, folderIDs[i])
		if err != nil {
			return fmt.Errorf("list folders under %s: %w", folderIDs[i], err)
		}
		for _, sub := range subfolders {
			folderIDs = append(folderIDs, sub.ID)
		}
	}

	for i := len(folderIDs) - 1; i >= 0; i-- {
		folderID := folderIDs[i]

		if err := t.deleteLeavesUnder(ctx, userID, folderID); err != nil {
			return err
		}
		if err := t.folderRepo.Delete(ctx, folderID, userID); err != nil {
			return fmt.Errorf("delete folder %s: %w", folderID, err)
		}
		t.logger.Debug("deleted folder in cascade", "folder_id", folderID, "user_id", userID)
	}

	return nil
}

// deleteLeavesUnder hard-deletes all documents and files directly under a folder.
func (t *treeStore) deleteLeavesUnder(ctx context.Context, userID, folderID string) error {
	docs, err := t.docRepo.ListByParentFolder(ctx, userID, folderID)
	if err != nil {
		return fmt.Errorf("list documents under %s: %w", folderID, err)
	}
	for _, doc := range docs {
		if err := t.docRepo.Delete(ctx, doc.ID, userID); err != nil {
			return fmt.Errorf("delete document %s: %w", doc.ID, err)
		}
	}

	files, err := t.fileRepo.ListByParentFolder(ctx, userID, folderID)
	if err != nil {
		return fmt.Errorf("list files under %s: %w", folderID, err)
	}
	for _, file := range files {
		if err := t.fileRepo.Delete(ctx, file.ID, userID); err != nil {
			return fmt.Errorf("delete file %s: %w", file.ID, err)
		}
	}

	return nil
}

// subtreeContains reports whether candidateID is rootFolderID or one of its
// descendants. Used to reject moving a folder into its own subtree.
func (t *treeStore) subtreeContains(ctx context.Context, userID, rootFolderID, candidateID string) (bool, error) {
	if rootFolderID == candidateID {
		return true, nil
	}
	queue := []string{rootFolderID}
	for len(queue) > 0 {
		folderID := queue[0]
		queue = queue[1:]

		subfolders, err := t.folderRepo.ListByParentFolder(ctx, userID, folderID)
		if err != nil {
			return false, fmt.Errorf("list folders under %s: %w", folderID, err)
		}
		for _, sub := range subfolders {
			if sub.ID == candidateID {
				return true, nil
			}
			queue = append(queue, sub.ID)
		}
	}
	return false, nil
}
