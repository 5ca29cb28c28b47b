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

type documentService struct {
	docRepo    wsRepo.DocumentRepository
	tree       *treeStore
	txManager  repositories.TransactionManager
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo wsRepo.DocumentRepository,
	folderRepo wsRepo.FolderRepository,
	fileRepo wsRepo.FileRepository,
	workspaceRepo wsRepo.WorkspaceRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) wsSvc.DocumentService {
	return &documentService{
		docRepo:    docRepo,
		tree:       newTreeStore(workspaceRepo, folderRepo, docRepo, fileRepo, logger),
		txManager:  txManager,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (s *documentService) CreateDocument(ctx context.Context, req *wsSvc.CreateDocumentRequest) (*models.Document, error) {
	if err := validateCreateDocumentRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	now := time.Now()
	doc := &models.Document{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Title:     strings.TrimSpace(req.Title),
		Icon:      req.Icon,
		Parent:    req.Parent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.tree.requireParent(txCtx, req.UserID, req.Parent); err != nil {
			return err
		}
		if err := s.docRepo.Create(txCtx, doc); err != nil {
			return err
		}
		return s.tree.appendChildRef(txCtx, req.UserID, req.Parent, doc.Ref())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"title", doc.Title,
		"user_id", doc.UserID,
		"parent_kind", doc.Parent.Kind,
		"parent_id", doc.Parent.ID,
	)
	return doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, userID, documentID string) (*models.Document, error) {
	if err := s.authorizer.CanAccessDocument(ctx, userID, documentID); err != nil {
		return nil, err
	}
	return s.docRepo.GetByIDOnly(ctx, documentID)
}

// UpdateDocument patches the document row. When the title or icon changes,
// the parent's ChildRef is rewritten in the same transaction.
func (s *documentService) UpdateDocument(ctx context.Context, documentID string, req *wsSvc.UpdateDocumentRequest) (*models.Document, error) {
	if err := s.authorizer.CanAccessDocument(ctx, req.UserID, documentID); err != nil {
		return nil, err
	}
	if err := validateUpdateDocumentRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	var doc *models.Document
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		doc, err = s.docRepo.GetByID(txCtx, documentID, req.UserID)
		if err != nil {
			return err
		}

		refChanged := false
		if req.Title != nil {
			doc.Title = strings.TrimSpace(*req.Title)
			refChanged = true
		}
		if req.Icon != nil {
			doc.Icon = applyIcon(doc.Icon, req.Icon)
			refChanged = true
		}
		if req.Content != nil {
			doc.Content = req.Content
		}
		if req.CoverImage.Present {
			doc.CoverImage = req.CoverImage.Value
		}
		if req.IsPublished != nil {
			doc.IsPublished = *req.IsPublished
		}
		if req.IsPrivate != nil {
			doc.IsPrivate = *req.IsPrivate
		}
		if req.Password != nil {
			doc.Password = req.Password
		}
		doc.UpdatedAt = time.Now()

		if err := s.docRepo.Update(txCtx, doc); err != nil {
			return err
		}
		if refChanged {
			return s.tree.rewriteChildRef(txCtx, req.UserID, doc.Parent, doc.Ref())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document updated", "id", documentID, "user_id", req.UserID)
	return doc, nil
}

func (s *documentService) ArchiveDocument(ctx context.Context, userID, documentID string) (*models.Document, error) {
	if err := s.authorizer.CanAccessDocument(ctx, userID, documentID); err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}
	doc.IsArchived = true
	doc.UpdatedAt = time.Now()
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document archived", "id", documentID, "user_id", userID)
	return doc, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, userID, documentID string) error {
	if err := s.authorizer.CanAccessDocument(ctx, userID, documentID); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetByID(txCtx, documentID, userID)
		if err != nil {
			return err
		}
		if err := s.docRepo.Delete(txCtx, documentID, userID); err != nil {
			return err
		}
		return s.tree.removeChildRef(txCtx, userID, doc.Parent, documentID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", documentID, "user_id", userID)
	return nil
}

func (s *documentService) RemoveCoverImage(ctx context.Context, userID, documentID string) (*models.Document, error) {
	if err := s.authorizer.CanAccessDocument(ctx, userID, documentID); err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}
	doc.CoverImage = nil
	doc.UpdatedAt = time.Now()
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
