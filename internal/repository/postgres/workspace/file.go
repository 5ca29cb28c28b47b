package workspace

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"loft/internal/domain"
	models "loft/internal/domain/models/workspace"
	wsRepo "loft/internal/domain/repositories/workspace"
	"loft/internal/repository/postgres"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *postgres.RepositoryConfig) wsRepo.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const fileColumns = `id, user_id, title, url, format, size_mb, is_archived, is_published,
	is_private, password, parent_workspace_id, parent_folder_id, created_at, updated_at`

// Create inserts a new file row
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	parentWS, parentFolder := parentColumns(file.Parent)

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, url, format, size_mb, is_archived, is_published,
			is_private, password, parent_workspace_id, parent_folder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		file.ID,
		file.UserID,
		file.Title,
		file.URL,
		file.Format,
		file.SizeMB,
		file.IsArchived,
		file.IsPublished,
		file.IsPrivate,
		file.Password,
		parentWS,
		parentFolder,
		file.CreatedAt,
		file.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgCheckViolation(err) {
			return fmt.Errorf("file must have exactly one parent: %w", domain.ErrInvalidArgument)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID, scoped to the owner
func (r *PostgresFileRepository) GetByID(ctx context.Context, id, userID string) (*models.File, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND user_id = $2`, fileColumns, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	file, err := scanFile(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}
	return file, nil
}

// GetByIDOnly retrieves a file by ID without owner scoping
func (r *PostgresFileRepository) GetByIDOnly(ctx context.Context, id string) (*models.File, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, fileColumns, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	file, err := scanFile(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}
	return file, nil
}

// ListByUser retrieves all files owned by userID, newest first
func (r *PostgresFileRepository) ListByUser(ctx context.Context, userID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, fileColumns, r.tables.Files)
	return r.list(ctx, query, userID)
}

// ListByParentFolder retrieves the owner's files under a parent folder
func (r *PostgresFileRepository) ListByParentFolder(ctx context.Context, userID, parentFolderID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND parent_folder_id = $2
		ORDER BY created_at DESC
	`, fileColumns, r.tables.Files)
	return r.list(ctx, query, userID, parentFolderID)
}

// ListSearchable retrieves non-archived files for the quick-open search
// projection, newest first
func (r *PostgresFileRepository) ListSearchable(ctx context.Context, userID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND is_archived = FALSE
		ORDER BY created_at DESC
	`, fileColumns, r.tables.Files)
	return r.list(ctx, query, userID)
}

// ListStandalone retrieves non-archived files hanging directly off the
// workspace root, newest first
func (r *PostgresFileRepository) ListStandalone(ctx context.Context, userID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND is_archived = FALSE AND parent_folder_id IS NULL
		ORDER BY created_at DESC
	`, fileColumns, r.tables.Files)
	return r.list(ctx, query, userID)
}

// Update rewrites a file's mutable fields
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	parentWS, parentFolder := parentColumns(file.Parent)

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, url = $2, format = $3, size_mb = $4, is_archived = $5,
			is_published = $6, is_private = $7, password = $8, parent_workspace_id = $9,
			parent_folder_id = $10, updated_at = $11
		WHERE id = $12 AND user_id = $13
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		file.Title,
		file.URL,
		file.Format,
		file.SizeMB,
		file.IsArchived,
		file.IsPublished,
		file.IsPrivate,
		file.Password,
		parentWS,
		parentFolder,
		file.UpdatedAt,
		file.ID,
		file.UserID,
	)
	if err != nil {
		if postgres.IsPgCheckViolation(err) {
			return fmt.Errorf("file must have exactly one parent: %w", domain.ErrInvalidArgument)
		}
		return fmt.Errorf("update file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete hard-deletes a file row
func (r *PostgresFileRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresFileRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.File, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, *file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}

func scanFile(row pgx.Row) (*models.File, error) {
	var file models.File
	var parentWS, parentFolder *string

	err := row.Scan(
		&file.ID,
		&file.UserID,
		&file.Title,
		&file.URL,
		&file.Format,
		&file.SizeMB,
		&file.IsArchived,
		&file.IsPublished,
		&file.IsPrivate,
		&file.Password,
		&parentWS,
		&parentFolder,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	file.Parent = parentFromColumns(parentWS, parentFolder)

	return &file, nil
}
