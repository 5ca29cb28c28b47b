package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"loft/internal/config"
	"loft/internal/domain"
	models "loft/internal/domain/models/workspace"
	"loft/internal/domain/repositories"
	wsRepo "loft/internal/domain/repositories/workspace"
	"loft/internal/domain/services"
	wsSvc "loft/internal/domain/services/workspace"
)

type workspaceService struct {
	workspaceRepo wsRepo.WorkspaceRepository
	txManager     repositories.TransactionManager
	authorizer    services.ResourceAuthorizer
	logger        *slog.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	workspaceRepo wsRepo.WorkspaceRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) wsSvc.WorkspaceService {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		txManager:     txManager,
		authorizer:    authorizer,
		logger:        logger,
	}
}

func (s *workspaceService) GetUserWorkspace(ctx context.Context, userID string) (*models.Workspace, error) {
	return s.workspaceRepo.GetByUser(ctx, userID)
}

func (s *workspaceService) GetWorkspace(ctx context.Context, userID, workspaceID string) (*models.Workspace, error) {
	if err := s.authorizer.CanAccessWorkspace(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	return s.workspaceRepo.GetByIDOnly(ctx, workspaceID)
}

func (s *workspaceService) UpdateName(ctx context.Context, workspaceID string, req *wsSvc.UpdateWorkspaceNameRequest) (*models.Workspace, error) {
	if err := s.authorizer.CanAccessWorkspace(ctx, req.UserID, workspaceID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > config.MaxTitleLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", domain.ErrInvalidArgument, config.MaxTitleLength)
	}

	ws, err := s.workspaceRepo.GetByID(ctx, workspaceID, req.UserID)
	if err != nil {
		return nil, err
	}
	ws.Name = name
	ws.UpdatedAt = time.Now()
	if err := s.workspaceRepo.Update(ctx, ws); err != nil {
		return nil, err
	}

	s.logger.Info("workspace renamed", "id", workspaceID, "user_id", req.UserID)
	return ws, nil
}

// AddChild appends a ChildRef to the workspace root's children. The entry
// must name an existing kind and id; duplicates are rejected.
func (s *workspaceService) AddChild(ctx context.Context, workspaceID string, req *wsSvc.AddChildRequest) (*models.Workspace, error) {
	if err := s.authorizer.CanAccessWorkspace(ctx, req.UserID, workspaceID); err != nil {
		return nil, err
	}
	if req.Child.ID == "" || !req.Child.Type.Valid() {
		return nil, fmt.Errorf("%w: child must carry an id and a valid type", domain.ErrInvalidArgument)
	}

	var ws *models.Workspace
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		ws, err = s.workspaceRepo.GetByID(txCtx, workspaceID, req.UserID)
		if err != nil {
			return err
		}
		if models.FindChild(ws.Children, req.Child.ID) >= 0 {
			return &domain.ConflictError{
				Message:      "child already present",
				ResourceType: "workspace",
				ResourceID:   workspaceID,
			}
		}
		ws.Children = append(ws.Children, req.Child)
		ws.UpdatedAt = time.Now()
		return s.workspaceRepo.Update(txCtx, ws)
	})
	if err != nil {
		return nil, err
	}
	return ws, nil
}
