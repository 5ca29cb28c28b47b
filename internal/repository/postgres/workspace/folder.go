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

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) wsRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const folderColumns = `id, user_id, title, icon, description, is_archived, is_published, is_private,
	password, children, parent_workspace_id, parent_folder_id, created_at, updated_at`

// Create inserts a new folder row
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	children, err := encodeChildren(folder.Children)
	if err != nil {
		return err
	}
	parentWS, parentFolder := parentColumns(folder.Parent)

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, icon, description, is_archived, is_published, is_private,
			password, children, parent_workspace_id, parent_folder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err = executor.Exec(ctx, query,
		folder.ID,
		folder.UserID,
		folder.Title,
		folder.Icon,
		folder.Description,
		folder.IsArchived,
		folder.IsPublished,
		folder.IsPrivate,
		folder.Password,
		children,
		parentWS,
		parentFolder,
		folder.CreatedAt,
		folder.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgCheckViolation(err) {
			return fmt.Errorf("folder must have exactly one parent: %w", domain.ErrInvalidArgument)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID, scoped to the owner
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND user_id = $2`, folderColumns, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return folder, nil
}

// GetByIDOnly retrieves a folder by ID without owner scoping.
// The authorizer performs the ownership check itself.
func (r *PostgresFolderRepository) GetByIDOnly(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, folderColumns, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return folder, nil
}

// ListByUser retrieves all folders owned by userID, newest first
func (r *PostgresFolderRepository) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, folderColumns, r.tables.Folders)
	return r.list(ctx, query, userID)
}

// ListByParentFolder retrieves the owner's folders under a parent folder
func (r *PostgresFolderRepository) ListByParentFolder(ctx context.Context, userID, parentFolderID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND parent_folder_id = $2
		ORDER BY created_at DESC
	`, folderColumns, r.tables.Folders)
	return r.list(ctx, query, userID, parentFolderID)
}

// ListStandalone retrieves non-archived folders hanging directly off the
// workspace root, newest first
func (r *PostgresFolderRepository) ListStandalone(ctx context.Context, userID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND is_archived = FALSE AND parent_folder_id IS NULL
		ORDER BY created_at DESC
	`, folderColumns, r.tables.Folders)
	return r.list(ctx, query, userID)
}

// Update rewrites a folder's mutable fields, including children and parent
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	children, err := encodeChildren(folder.Children)
	if err != nil {
		return err
	}
	parentWS, parentFolder := parentColumns(folder.Parent)

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, icon = $2, description = $3, is_archived = $4, is_published = $5,
			is_private = $6, password = $7, children = $8, parent_workspace_id = $9,
			parent_folder_id = $10, updated_at = $11
		WHERE id = $12 AND user_id = $13
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		folder.Title,
		folder.Icon,
		folder.Description,
		folder.IsArchived,
		folder.IsPublished,
		folder.IsPrivate,
		folder.Password,
		children,
		parentWS,
		parentFolder,
		folder.UpdatedAt,
		folder.ID,
		folder.UserID,
	)
	if err != nil {
		if postgres.IsPgCheckViolation(err) {
			return fmt.Errorf("folder must have exactly one parent: %w", domain.ErrInvalidArgument)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete hard-deletes a folder row
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresFolderRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Folder, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var folder models.Folder
	var children []byte
	var parentWS, parentFolder *string

	err := row.Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Title,
		&folder.Icon,
		&folder.Description,
		&folder.IsArchived,
		&folder.IsPublished,
		&folder.IsPrivate,
		&folder.Password,
		&children,
		&parentWS,
		&parentFolder,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	folder.Children, err = decodeChildren(children)
	if err != nil {
		return nil, err
	}
	folder.Parent = parentFromColumns(parentWS, parentFolder)

	return &folder, nil
}
