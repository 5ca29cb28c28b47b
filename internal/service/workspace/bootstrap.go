package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"loft/internal/domain"
	authModels "loft/internal/domain/models"
	models "loft/internal/domain/models/workspace"
	wsRepo "loft/internal/domain/repositories/workspace"
	wsSvc "loft/internal/domain/services/workspace"
	"loft/internal/plans"
)

type bootstrapService struct {
	profileRepo   wsRepo.ProfileRepository
	workspaceRepo wsRepo.WorkspaceRepository
	logger        *slog.Logger
}

// NewBootstrapService creates a new bootstrap service
func NewBootstrapService(
	profileRepo wsRepo.ProfileRepository,
	workspaceRepo wsRepo.WorkspaceRepository,
	logger *slog.Logger,
) wsSvc.BootstrapService {
	return &bootstrapService{
		profileRepo:   profileRepo,
		workspaceRepo: workspaceRepo,
		logger:        logger,
	}
}

// EnsureWorkspaceAndProfile is the idempotent first-visit setup: get the
// caller's profile and workspace, creating whichever is missing. Uniqueness
// on user_id closes the concurrent-first-login race: the losing insert sees a
// duplicate-key conflict and re-reads the winner's row.
func (s *bootstrapService) EnsureWorkspaceAndProfile(ctx context.Context, userID string, claims *authModels.SupabaseClaims) (*wsSvc.Bootstrap, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", domain.ErrUnauthenticated)
	}

	profile, err := s.ensureProfile(ctx, userID, claims)
	if err != nil {
		return nil, err
	}
	ws, err := s.ensureWorkspace(ctx, userID, profile)
	if err != nil {
		return nil, err
	}

	return &wsSvc.Bootstrap{Profile: profile, Workspace: ws}, nil
}

func (s *bootstrapService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profileRepo.GetByUser(ctx, userID)
}

// SearchProfiles resolves collaborator invite targets by display name. An
// empty query matches everyone except the caller, mirroring the share
// dialog's initial listing.
func (s *bootstrapService) SearchProfiles(ctx context.Context, userID, name string) ([]models.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", domain.ErrUnauthenticated)
	}
	return s.profileRepo.SearchByName(ctx, strings.TrimSpace(name), userID)
}

func (s *bootstrapService) ensureProfile(ctx context.Context, userID string, claims *authModels.SupabaseClaims) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUser(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	profile = newProfileFromClaims(userID, claims)
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost the first-login race; the winner's row is authoritative.
			return s.profileRepo.GetByUser(ctx, userID)
		}
		return nil, err
	}

	s.logger.Info("profile created", "user_id", userID, "display_name", profile.DisplayName)
	return profile, nil
}

func (s *bootstrapService) ensureWorkspace(ctx context.Context, userID string, profile *models.Profile) (*models.Workspace, error) {
	ws, err := s.workspaceRepo.GetByUser(ctx, userID)
	if err == nil {
		return ws, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	ws = &models.Workspace{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      workspaceNameFor(profile),
		UsersIDs:  []string{},
		Children:  []models.ChildRef{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.workspaceRepo.Create(ctx, ws); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return s.workspaceRepo.GetByUser(ctx, userID)
		}
		return nil, err
	}

	s.logger.Info("workspace created", "id", ws.ID, "user_id", userID)
	return ws, nil
}

func newProfileFromClaims(userID string, claims *authModels.SupabaseClaims) *models.Profile {
	p := &models.Profile{
		ID:        uuid.New().String(),
		UserID:    userID,
		Plan:      plans.DefaultPlanID,
		UserType:  "member",
		CreatedAt: time.Now(),
	}
	if claims == nil {
		return p
	}
	p.Email = claims.Email
	p.FirstName = claims.GivenName()
	p.LastName = claims.FamilyName()
	p.DisplayName = claims.FullName()
	if p.DisplayName == "" {
		p.DisplayName = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	if p.DisplayName == "" {
		p.DisplayName = claims.Email
	}
	return p
}

func workspaceNameFor(profile *models.Profile) string {
	if profile != nil && profile.FirstName != "" {
		return profile.FirstName + "'s Workspace"
	}
	return "My Workspace"
}
