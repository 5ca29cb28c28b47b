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

// PostgresWorkspaceRepository implements the WorkspaceRepository interface
type PostgresWorkspaceRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(config *postgres.RepositoryConfig) wsRepo.WorkspaceRepository {
	return &PostgresWorkspaceRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const workspaceColumns = "id, user_id, name, description, is_shared, users_ids, children, created_at, updated_at"

// Create inserts a new workspace. The unique user_id constraint turns the
// bootstrap race into a ConflictError carrying the winner's id.
func (r *PostgresWorkspaceRepository) Create(ctx context.Context, ws *models.Workspace) error {
	children, err := encodeChildren(ws.Children)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, description, is_shared, users_ids, children, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Workspaces)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err = executor.Exec(ctx, query,
		ws.ID,
		ws.UserID,
		ws.Name,
		ws.Description,
		ws.IsShared,
		ws.UsersIDs,
		children,
		ws.CreatedAt,
		ws.UpdatedAt,
	)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			existing, queryErr := r.GetByUser(ctx, ws.UserID)
			if queryErr != nil {
				return fmt.Errorf("workspace for user %s already exists: %w", ws.UserID, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("workspace for user %s already exists", ws.UserID),
				ResourceType: "workspace",
				ResourceID:   existing.ID,
			}
		}
		return fmt.Errorf("create workspace: %w", err)
	}

	return nil
}

// GetByID retrieves a workspace by ID, scoped to the owner
func (r *PostgresWorkspaceRepository) GetByID(ctx context.Context, id, userID string) (*models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE id = $1 AND user_id = $2
	`, workspaceColumns, r.tables.Workspaces)

	executor := postgres.GetExecutor(ctx, r.pool)
	ws, err := scanWorkspace(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return ws, nil
}

// GetByIDOnly retrieves a workspace by ID without owner scoping.
// The authorizer performs the ownership check itself.
func (r *PostgresWorkspaceRepository) GetByIDOnly(ctx context.Context, id string) (*models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE id = $1
	`, workspaceColumns, r.tables.Workspaces)

	executor := postgres.GetExecutor(ctx, r.pool)
	ws, err := scanWorkspace(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return ws, nil
}

// GetByUser retrieves the workspace owned by userID
func (r *PostgresWorkspaceRepository) GetByUser(ctx context.Context, userID string) (*models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1
	`, workspaceColumns, r.tables.Workspaces)

	executor := postgres.GetExecutor(ctx, r.pool)
	ws, err := scanWorkspace(executor.QueryRow(ctx, query, userID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("workspace for user %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return ws, nil
}

// Update rewrites a workspace's mutable fields, including the children cache
func (r *PostgresWorkspaceRepository) Update(ctx context.Context, ws *models.Workspace) error {
	children, err := encodeChildren(ws.Children)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, is_shared = $3, users_ids = $4, children = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`, r.tables.Workspaces)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		ws.Name,
		ws.Description,
		ws.IsShared,
		ws.UsersIDs,
		children,
		ws.UpdatedAt,
		ws.ID,
		ws.UserID,
	)
	if err != nil {
		return fmt.Errorf("update workspace: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("workspace %s: %w", ws.ID, domain.ErrNotFound)
	}

	return nil
}

func scanWorkspace(row pgx.Row) (*models.Workspace, error) {
	var ws models.Workspace
	var children []byte

	err := row.Scan(
		&ws.ID,
		&ws.UserID,
		&ws.Name,
		&ws.Description,
		&ws.IsShared,
		&ws.UsersIDs,
		&children,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	ws.Children, err = decodeChildren(children)
	if err != nil {
		return nil, err
	}
	if ws.UsersIDs == nil {
		ws.UsersIDs = []string{}
	}

	return &ws, nil
}
