package workspace

import (
	"context"
	"log/slog"

	models "loft/internal/domain/models/workspace"
	wsRepo "loft/internal/domain/repositories/workspace"
	wsSvc "loft/internal/domain/services/workspace"
)

type searchService struct {
	folderRepo wsRepo.FolderRepository
	docRepo    wsRepo.DocumentRepository
	fileRepo   wsRepo.FileRepository
	logger     *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	folderRepo wsRepo.FolderRepository,
	docRepo wsRepo.DocumentRepository,
	fileRepo wsRepo.FileRepository,
	logger *slog.Logger,
) wsSvc.SearchService {
	return &searchService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

func (s *searchService) SearchableDocuments(ctx context.Context, userID string) ([]models.Document, error) {
	return s.docRepo.ListSearchable(ctx, userID)
}

func (s *searchService) SearchableFiles(ctx context.Context, userID string) ([]models.File, error) {
	return s.fileRepo.ListSearchable(ctx, userID)
}

func (s *searchService) StandaloneFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	return s.folderRepo.ListStandalone(ctx, userID)
}

func (s *searchService) StandaloneDocuments(ctx context.Context, userID string) ([]models.Document, error) {
	return s.docRepo.ListStandalone(ctx, userID)
}

func (s *searchService) StandaloneFiles(ctx context.Context, userID string) ([]models.File, error) {
	return s.fileRepo.ListStandalone(ctx, userID)
}
