package workspace

import (
	"context"

	"loft/internal/domain/models"
	wsModels "loft/internal/domain/models/workspace"
)

// Bootstrap is the pair of rows every authenticated user is guaranteed to
// have after their first visit.
type Bootstrap struct {
	Profile   *wsModels.Profile   `json:"profile"`
	Workspace *wsModels.Workspace `json:"workspace"`
}

// BootstrapService provides the idempotent get-or-create performed on first
// sign-in. Safe under concurrent first-login calls: two racing bootstraps for
// a brand-new user converge on a single profile/workspace pair.
type BootstrapService interface {
	EnsureWorkspaceAndProfile(ctx context.Context, userID string, claims *models.SupabaseClaims) (*Bootstrap, error)

	// GetProfile returns the caller's profile, or ErrNotFound before bootstrap.
	GetProfile(ctx context.Context, userID string) (*wsModels.Profile, error)

	// SearchProfiles finds other users by display name so the share dialog
	// can resolve collaborator invite targets. The caller's own profile is
	// excluded.
	SearchProfiles(ctx context.Context, userID, name string) ([]wsModels.Profile, error)
}
