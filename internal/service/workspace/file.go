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

type fileService struct {
	fileRepo   wsRepo.FileRepository
	tree       *treeStore
	txManager  repositories.TransactionManager
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo wsRepo.FileRepository,
	folderRepo wsRepo.FolderRepository,
	docRepo wsRepo.DocumentRepository,
	workspaceRepo wsRepo.WorkspaceRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) wsSvc.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		tree:       newTreeStore(workspaceRepo, folderRepo, docRepo, fileRepo, logger),
		txManager:  txManager,
		authorizer: authorizer,
		logger:     logger,
	}
}

// SaveFile records an already-uploaded file under its parent. The caller must
// be authenticated; the parent must belong to them.
func (s *fileService) SaveFile(ctx context.Context, req *wsSvc.SaveFileRequest) (*models.File, error) {
	if err := validateSaveFileRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	now := time.Now()
	file := &models.File{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Title:     strings.TrimSpace(req.Title),
		URL:       req.URL,
		Format:    req.Format,
		SizeMB:    req.SizeMB,
		Parent:    req.Parent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.tree.requireParent(txCtx, req.UserID, req.Parent); err != nil {
			return err
		}
		if err := s.fileRepo.Create(txCtx, file); err != nil {
			return err
		}
		return s.tree.appendChildRef(txCtx, req.UserID, req.Parent, file.Ref())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file saved",
		"id", file.ID,
		"title", file.Title,
		"user_id", file.UserID,
		"size_mb", file.SizeMB,
	)
	return file, nil
}

func (s *fileService) GetFile(ctx context.Context, userID, fileID string) (*models.File, error) {
	if err := s.authorizer.CanAccessFile(ctx, userID, fileID); err != nil {
		return nil, err
	}
	return s.fileRepo.GetByIDOnly(ctx, fileID)
}

func (s *fileService) DeleteFile(ctx context.Context, userID, fileID string) error {
	if err := s.authorizer.CanAccessFile(ctx, userID, fileID); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		file, err := s.fileRepo.GetByID(txCtx, fileID, userID)
		if err != nil {
			return err
		}
		if err := s.fileRepo.Delete(txCtx, fileID, userID); err != nil {
			return err
		}
		return s.tree.removeChildRef(txCtx, userID, file.Parent, fileID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("file deleted", "id", fileID, "user_id", userID)
	return nil
}
