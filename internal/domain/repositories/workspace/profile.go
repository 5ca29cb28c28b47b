package workspace

import (
	"context"

	models "loft/internal/domain/models/workspace"
)

// ProfileRepository manages per-user profile rows.
type ProfileRepository interface {
	// Create inserts a new profile. Returns a ConflictError carrying the
	// existing profile's id if one already exists for the user.
	Create(ctx context.Context, profile *models.Profile) error

	// GetByUser retrieves the profile owned by userID.
	GetByUser(ctx context.Context, userID string) (*models.Profile, error)

	// SearchByName retrieves profiles whose display name contains name,
	// case-insensitively, excluding the profile owned by excludeUserID.
	// Backs collaborator-invite target lookup.
	SearchByName(ctx context.Context, name, excludeUserID string) ([]models.Profile, error)

	// Update rewrites the profile's mutable fields (display name, plan,
	// storage usage).
	Update(ctx context.Context, profile *models.Profile) error
}
