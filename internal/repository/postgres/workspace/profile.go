package workspace

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"loft/internal/domain"
	models "loft/internal/domain/models/workspace"
	wsRepo "loft/internal/domain/repositories/workspace"
	"loft/internal/repository/postgres"
)

// PostgresProfileRepository implements the ProfileRepository interface
type PostgresProfileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(config *postgres.RepositoryConfig) wsRepo.ProfileRepository {
	return &PostgresProfileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new profile. The unique user_id constraint catches racing
// first-login bootstraps; the loser gets a ConflictError with the winner's id.
func (r *PostgresProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, display_name, first_name, last_name, email, plan, user_type, used_storage_mb, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.tables.Profiles)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.DisplayName,
		profile.FirstName,
		profile.LastName,
		profile.Email,
		profile.Plan,
		profile.UserType,
		profile.UsedStorageMB,
		profile.CreatedAt,
	)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			existing, queryErr := r.GetByUser(ctx, profile.UserID)
			if queryErr != nil {
				return fmt.Errorf("profile for user %s already exists: %w", profile.UserID, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("profile for user %s already exists", profile.UserID),
				ResourceType: "profile",
				ResourceID:   existing.ID,
			}
		}
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

// GetByUser retrieves the profile owned by userID
func (r *PostgresProfileRepository) GetByUser(ctx context.Context, userID string) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, display_name, first_name, last_name, email, plan, user_type, used_storage_mb, created_at
		FROM %s
		WHERE user_id = $1
	`, r.tables.Profiles)

	var profile models.Profile
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.DisplayName,
		&profile.FirstName,
		&profile.LastName,
		&profile.Email,
		&profile.Plan,
		&profile.UserType,
		&profile.UsedStorageMB,
		&profile.CreatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("profile for user %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &profile, nil
}

// SearchByName retrieves profiles whose display name contains the query,
// case-insensitively, excluding the searching user's own profile.
func (r *PostgresProfileRepository) SearchByName(ctx context.Context, name, excludeUserID string) ([]models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, display_name, first_name, last_name, email, plan, user_type, used_storage_mb, created_at
		FROM %s
		WHERE display_name ILIKE '%%' || $1 || '%%' AND user_id != $2
		ORDER BY display_name
		LIMIT 20
	`, r.tables.Profiles)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, name, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var profile models.Profile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.DisplayName,
			&profile.FirstName,
			&profile.LastName,
			&profile.Email,
			&profile.Plan,
			&profile.UserType,
			&profile.UsedStorageMB,
			&profile.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}

	return profiles, nil
}

// Update rewrites a profile's mutable fields
func (r *PostgresProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET display_name = $1, plan = $2, user_type = $3, used_storage_mb = $4
		WHERE id = $5 AND user_id = $6
	`, r.tables.Profiles)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		profile.DisplayName,
		profile.Plan,
		profile.UserType,
		profile.UsedStorageMB,
		profile.ID,
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", profile.ID, domain.ErrNotFound)
	}

	return nil
}
