package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"loft/internal/domain"
	models "loft/internal/domain/models/workspace"
	"loft/internal/domain/repositories"
	wsRepo "loft/internal/domain/repositories/workspace"
	"loft/internal/domain/services"
	wsSvc "loft/internal/domain/services/workspace"
)

type folderService struct {
	folderRepo    wsRepo.FolderRepository
	docRepo       wsRepo.DocumentRepository
	fileRepo      wsRepo.FileRepository
	workspaceRepo wsRepo.WorkspaceRepository
	tree          *treeStore
	txManager     repositories.TransactionManager
	authorizer    services.ResourceAuthorizer
	logger        *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo wsRepo.FolderRepository,
	docRepo wsRepo.DocumentRepository,
	fileRepo wsRepo.FileRepository,
	workspaceRepo wsRepo.WorkspaceRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) wsSvc.FolderService {
	return &folderService{
		folderRepo:    folderRepo,
		docRepo:       docRepo,
		fileRepo:      fileRepo,
		workspaceRepo: workspaceRepo,
		tree:          newTreeStore(workspaceRepo, folderRepo, docRepo, fileRepo, logger),
		txManager:     txManager,
		authorizer:    authorizer,
		logger:        logger,
	}
}

// CreateFolder inserts the folder row and registers it in the parent's
// children cache in one transaction: a freshly created node is visible on
// both sides or not at all.
func (s *folderService) CreateFolder(ctx context.Context, req *wsSvc.CreateFolderRequest) (*models.Folder, error) {
	if err := validateCreateFolderRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	now := time.Now()
	folder := &models.Folder{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		Title:       strings.TrimSpace(req.Title),
		Icon:        req.Icon,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		Password:    req.Password,
		Children:    []models.ChildRef{},
		Parent:      req.Parent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.tree.requireParent(txCtx, req.UserID, req.Parent); err != nil {
			return err
		}
		if err := s.folderRepo.Create(txCtx, folder); err != nil {
			return err
		}
		return s.tree.appendChildRef(txCtx, req.UserID, req.Parent, folder.Ref())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"title", folder.Title,
		"user_id", folder.UserID,
		"parent_kind", folder.Parent.Kind,
		"parent_id", folder.Parent.ID,
	)

	return folder, nil
}

// GetFolder retrieves a folder by id.
// Authorization is checked first via the injected authorizer.
func (s *folderService) GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	if err := s.authorizer.CanAccessFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}
	return s.folderRepo.GetByIDOnly(ctx, folderID)
}

// GetChildren returns the folder's cached ChildRef list together with the
// live child rows found by the parent index.
func (s *folderService) GetChildren(ctx context.Context, userID, folderID string) (*wsSvc.FolderContents, error) {
	if err := s.authorizer.CanAccessFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByIDOnly(ctx, folderID)
	if err != nil {
		return nil, err
	}

	subfolders, err := s.folderRepo.ListByParentFolder(ctx, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}
	docs, err := s.docRepo.ListByParentFolder(ctx, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("list child documents: %w", err)
	}
	files, err := s.fileRepo.ListByParentFolder(ctx, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("list child files: %w", err)
	}

	return &wsSvc.FolderContents{
		Folder:    folder,
		Children:  folder.Children,
		Folders:   subfolders,
		Documents: docs,
		Files:     files,
	}, nil
}

// RenameFolder patches the folder's title/icon and rewrites the matching
// ChildRef in its parent inside one transaction, so the cache can never go
// stale against the row.
func (s *folderService) RenameFolder(ctx context.Context, folderID string, req *wsSvc.RenameRequest) (*models.Folder, error) {
	if err := s.authorizer.CanAccessFolder(ctx, req.UserID, folderID); err != nil {
		return nil, err
	}
	if err := validateRenameRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(txCtx, folderID, req.UserID)
		if err != nil {
			return err
		}

		if req.Title != nil {
			folder.Title = strings.TrimSpace(*req.Title)
		}
		folder.Icon = applyIcon(folder.Icon, req.Icon)
		folder.UpdatedAt = time.Now()

		if err := s.folderRepo.Update(txCtx, folder); err != nil {
			return err
		}
		return s.tree.rewriteChildRef(txCtx, req.UserID, folder.Parent, folder.Ref())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed", "id", folder.ID, "title", folder.Title, "user_id", req.UserID)
	return folder, nil
}

// ArchiveFolder soft-deletes the folder and cascades over descendant folders
// and documents. Files stay active. The parent's ChildRef is left in place:
// archived nodes remain visible in the tree view and disappear only from the
// flat search projection.
func (s *folderService) ArchiveFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	if err := s.authorizer.CanAccessFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(txCtx, folderID, userID)
		if err != nil {
			return err
		}

		folder.IsArchived = true
		folder.UpdatedAt = time.Now()
		if err := s.folderRepo.Update(txCtx, folder); err != nil {
			return err
		}
		return s.tree.archiveSubtree(txCtx, userID, folderID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder archived", "id", folderID, "user_id", userID)
	return folder, nil
}

// DeleteFolder hard-deletes the folder and every descendant row, then strips
// the folder's ChildRef from its parent, all in one transaction. Descendants
// are gone before the folder row and before the parent's cache entry, and a
// second delete of the same id surfaces NotFound.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	if err := s.authorizer.CanAccessFolder(ctx, userID, folderID); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.folderRepo.GetByID(txCtx, folderID, userID)
		if err != nil {
			return err
		}

		if err := s.tree.deleteSubtree(txCtx, userID, folderID); err != nil {
			return err
		}
		return s.tree.removeChildRef(txCtx, userID, folder.Parent, folderID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", folderID, "user_id", userID)
	return nil
}

// MoveFolder re-parents the folder in one atomic operation, preserving its
// identity and contents: ChildRef out of the old parent, parent pointer
// rewrite, ChildRef into the new parent.
func (s *folderService) MoveFolder(ctx context.Context, folderID string, req *wsSvc.MoveRequest) (*models.Folder, error) {
	if err := s.authorizer.CanAccessFolder(ctx, req.UserID, folderID); err != nil {
		return nil, err
	}
	if err := validateMoveRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(txCtx, folderID, req.UserID)
		if err != nil {
			return err
		}

		if err := s.tree.requireParent(txCtx, req.UserID, req.NewParent); err != nil {
			return err
		}

		// A folder cannot move into its own subtree
		if req.NewParent.IsFolder() {
			circular, err := s.tree.subtreeContains(txCtx, req.UserID, folderID, req.NewParent.ID)
			if err != nil {
				return err
			}
			if circular {
				return fmt.Errorf("cannot move folder %s into its own subtree: %w", folderID, domain.ErrInvalidArgument)
			}
		}

		oldParent := folder.Parent
		if err := s.tree.removeChildRef(txCtx, req.UserID, oldParent, folderID); err != nil {
			return err
		}

		folder.Parent = req.NewParent
		folder.UpdatedAt = time.Now()
		if err := s.folderRepo.Update(txCtx, folder); err != nil {
			return err
		}
		return s.tree.appendChildRef(txCtx, req.UserID, req.NewParent, folder.Ref())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder moved",
		"id", folderID,
		"user_id", req.UserID,
		"new_parent_kind", req.NewParent.Kind,
		"new_parent_id", req.NewParent.ID,
	)
	return folder, nil
}
