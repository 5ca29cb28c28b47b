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

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *postgres.RepositoryConfig) wsRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const documentColumns = `id, user_id, title, icon, cover_image, content, is_archived, is_published,
	is_private, password, parent_workspace_id, parent_folder_id, created_at, updated_at`

// Create inserts a new document row
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	parentWS, parentFolder := parentColumns(doc.Parent)

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, icon, cover_image, content, is_archived, is_published,
			is_private, password, parent_workspace_id, parent_folder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.Icon,
		doc.CoverImage,
		doc.Content,
		doc.IsArchived,
		doc.IsPublished,
		doc.IsPrivate,
		doc.Password,
		parentWS,
		parentFolder,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgCheckViolation(err) {
			return fmt.Errorf("document must have exactly one parent: %w", domain.ErrInvalidArgument)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID, scoped to the owner
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id, userID string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND user_id = $2`, documentColumns, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// GetByIDOnly retrieves a document by ID without owner scoping
func (r *PostgresDocumentRepository) GetByIDOnly(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// ListByUser retrieves all documents owned by userID, newest first
func (r *PostgresDocumentRepository) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, documentColumns, r.tables.Documents)
	return r.list(ctx, query, userID)
}

// ListByParentFolder retrieves the owner's documents under a parent folder
func (r *PostgresDocumentRepository) ListByParentFolder(ctx context.Context, userID, parentFolderID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND parent_folder_id = $2
		ORDER BY created_at DESC
	`, documentColumns, r.tables.Documents)
	return r.list(ctx, query, userID, parentFolderID)
}

// ListSearchable retrieves non-archived documents for the quick-open search
// projection, newest first
func (r *PostgresDocumentRepository) ListSearchable(ctx context.Context, userID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND is_archived = FALSE
		ORDER BY created_at DESC
	`, documentColumns, r.tables.Documents)
	return r.list(ctx, query, userID)
}

// ListStandalone retrieves non-archived documents hanging directly off the
// workspace root, newest first
func (r *PostgresDocumentRepository) ListStandalone(ctx context.Context, userID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND is_archived = FALSE AND parent_folder_id IS NULL
		ORDER BY created_at DESC
	`, documentColumns, r.tables.Documents)
	return r.list(ctx, query, userID)
}

// Update rewrites a document's mutable fields
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	parentWS, parentFolder := parentColumns(doc.Parent)

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, icon = $2, cover_image = $3, content = $4, is_archived = $5,
			is_published = $6, is_private = $7, password = $8, parent_workspace_id = $9,
			parent_folder_id = $10, updated_at = $11
		WHERE id = $12 AND user_id = $13
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		doc.Title,
		doc.Icon,
		doc.CoverImage,
		doc.Content,
		doc.IsArchived,
		doc.IsPublished,
		doc.IsPrivate,
		doc.Password,
		parentWS,
		parentFolder,
		doc.UpdatedAt,
		doc.ID,
		doc.UserID,
	)
	if err != nil {
		if postgres.IsPgCheckViolation(err) {
			return fmt.Errorf("document must have exactly one parent: %w", domain.ErrInvalidArgument)
		}
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete hard-deletes a document row
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresDocumentRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Document, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	var parentWS, parentFolder *string

	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Title,
		&doc.Icon,
		&doc.CoverImage,
		&doc.Content,
		&doc.IsArchived,
		&doc.IsPublished,
		&doc.IsPrivate,
		&doc.Password,
		&parentWS,
		&parentFolder,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Parent = parentFromColumns(parentWS, parentFolder)

	return &doc, nil
}
