package workspace

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"loft/internal/domain"
	models "loft/internal/domain/models/workspace"
	"loft/internal/domain/repositories"
	wsRepo "loft/internal/domain/repositories/workspace"
	wsSvc "loft/internal/domain/services/workspace"
)

type sweepService struct {
	workspaceRepo wsRepo.WorkspaceRepository
	folderRepo    wsRepo.FolderRepository
	docRepo       wsRepo.DocumentRepository
	fileRepo      wsRepo.FileRepository
	txManager     repositories.TransactionManager
	logger        *slog.Logger
}

// NewSweepService creates a new sweep service
func NewSweepService(
	workspaceRepo wsRepo.WorkspaceRepository,
	folderRepo wsRepo.FolderRepository,
	docRepo wsRepo.DocumentRepository,
	fileRepo wsRepo.FileRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) wsSvc.SweepService {
	return &sweepService{
		workspaceRepo: workspaceRepo,
		folderRepo:    folderRepo,
		docRepo:       docRepo,
		fileRepo:      fileRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Reconcile repairs one user's tree in a single transaction: ChildRefs
// naming rows that no longer exist are dropped, and rows whose parent folder
// is gone are reattached to the workspace root.
func (s *sweepService) Reconcile(ctx context.Context, userID string) (*wsSvc.SweepReport, error) {
	report := &wsSvc.SweepReport{}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		ws, err := s.workspaceRepo.GetByUser(txCtx, userID)
		if err != nil {
			return err
		}
		folders, err := s.folderRepo.ListByUser(txCtx, userID)
		if err != nil {
			return err
		}
		docs, err := s.docRepo.ListByUser(txCtx, userID)
		if err != nil {
			return err
		}
		files, err := s.fileRepo.ListByUser(txCtx, userID)
		if err != nil {
			return err
		}

		live := make(map[string]struct{}, len(folders)+len(docs)+len(files))
		folderIDs := make(map[string]struct{}, len(folders))
		for i := range folders {
			live[folders[i].ID] = struct{}{}
			folderIDs[folders[i].ID] = struct{}{}
		}
		for i := range docs {
			live[docs[i].ID] = struct{}{}
		}
		for i := range files {
			live[files[i].ID] = struct{}{}
		}

		// Pass 1: reattach orphans. A row whose parent folder no longer
		// exists moves under the workspace root.
		for i := range folders {
			f := &folders[i]
			if !orphaned(f.Parent, ws.ID, folderIDs) {
				continue
			}
			f.Parent = models.WorkspaceParent(ws.ID)
			f.UpdatedAt = time.Now()
			if err := s.folderRepo.Update(txCtx, f); err != nil {
				return err
			}
			ws.Children = append(ws.Children, f.Ref())
			report.OrphansReattached++
		}
		for i := range docs {
			d := &docs[i]
			if !orphaned(d.Parent, ws.ID, folderIDs) {
				continue
			}
			d.Parent = models.WorkspaceParent(ws.ID)
			d.UpdatedAt = time.Now()
			if err := s.docRepo.Update(txCtx, d); err != nil {
				return err
			}
			ws.Children = append(ws.Children, d.Ref())
			report.OrphansReattached++
		}
		for i := range files {
			f := &files[i]
			if !orphaned(f.Parent, ws.ID, folderIDs) {
				continue
			}
			f.Parent = models.WorkspaceParent(ws.ID)
			f.UpdatedAt = time.Now()
			if err := s.fileRepo.Update(txCtx, f); err != nil {
				return err
			}
			ws.Children = append(ws.Children, f.Ref())
			report.OrphansReattached++
		}

		// Pass 2: drop ChildRefs pointing at rows that no longer exist.
		// A ref absent from the owner-scoped live set may still be another
		// user's folder shared into this workspace, so existence is
		// re-checked unscoped before anything is dropped.
		kept, err := s.pruneChildren(txCtx, ws.Children, live, report)
		if err != nil {
			return err
		}
		if len(kept) != len(ws.Children) || report.OrphansReattached > 0 {
			ws.Children = kept
			ws.UpdatedAt = time.Now()
			if err := s.workspaceRepo.Update(txCtx, ws); err != nil {
				return err
			}
		}
		for i := range folders {
			f := &folders[i]
			kept, err := s.pruneChildren(txCtx, f.Children, live, report)
			if err != nil {
				return err
			}
			if len(kept) == len(f.Children) {
				continue
			}
			f.Children = kept
			f.UpdatedAt = time.Now()
			if err := s.folderRepo.Update(txCtx, f); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if report.DanglingRefsRemoved > 0 || report.OrphansReattached > 0 {
		s.logger.Info("tree reconciled",
			"user_id", userID,
			"dangling_refs_removed", report.DanglingRefsRemoved,
			"orphans_reattached", report.OrphansReattached,
		)
	}
	return report, nil
}

func orphaned(parent models.ParentRef, workspaceID string, folderIDs map[string]struct{}) bool {
	switch parent.Kind {
	case models.ParentKindWorkspace:
		return parent.ID != workspaceID
	case models.ParentKindFolder:
		_, ok := folderIDs[parent.ID]
		return !ok
	default:
		return true
	}
}

func (s *sweepService) pruneChildren(ctx context.Context, children []models.ChildRef, live map[string]struct{}, report *wsSvc.SweepReport) ([]models.ChildRef, error) {
	kept := children[:0:0]
	for _, ref := range children {
		exists, err := s.refExists(ctx, ref, live)
		if err != nil {
			return nil, err
		}
		if exists {
			kept = append(kept, ref)
		} else {
			report.DanglingRefsRemoved++
		}
	}
	return kept, nil
}

// refExists reports whether the referenced row still exists anywhere, not
// just among the sweeping user's own rows. Shared folders live in another
// user's tree and must survive their collaborators' sweeps.
func (s *sweepService) refExists(ctx context.Context, ref models.ChildRef, live map[string]struct{}) (bool, error) {
	if _, ok := live[ref.ID]; ok {
		return true, nil
	}

	var err error
	switch ref.Type {
	case models.ChildKindFolder:
		_, err = s.folderRepo.GetByIDOnly(ctx, ref.ID)
	case models.ChildKindDocument:
		_, err = s.docRepo.GetByIDOnly(ctx, ref.ID)
	case models.ChildKindFile:
		_, err = s.fileRepo.GetByIDOnly(ctx, ref.ID)
	default:
		return false, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
