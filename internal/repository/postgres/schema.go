package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates all tables and indexes if they don't exist.
//
// Two constraints carry protocol weight:
//   - UNIQUE (user_id) on profiles and workspaces turns the bootstrap
//     read-then-insert race into a detectable 23505 instead of a duplicate
//     workspace.
//   - The one_parent CHECK on folders/documents/files makes "exactly one of
//     {parent workspace, parent folder}" a structural fact rather than an
//     application invariant.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	stmts := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				user_id TEXT NOT NULL UNIQUE,
				display_name TEXT NOT NULL,
				first_name TEXT NOT NULL DEFAULT '',
				last_name TEXT NOT NULL DEFAULT '',
				email TEXT NOT NULL DEFAULT '',
				plan TEXT NOT NULL DEFAULT 'free',
				user_type TEXT NOT NULL DEFAULT 'member',
				used_storage_mb DOUBLE PRECISION NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Profiles),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				user_id TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				description TEXT,
				is_shared BOOLEAN NOT NULL DEFAULT FALSE,
				users_ids TEXT[] NOT NULL DEFAULT '{}',
				children JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Workspaces),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				user_id TEXT NOT NULL,
				title TEXT NOT NULL,
				icon TEXT,
				description TEXT,
				is_archived BOOLEAN NOT NULL DEFAULT FALSE,
				is_published BOOLEAN NOT NULL DEFAULT FALSE,
				is_private BOOLEAN NOT NULL DEFAULT FALSE,
				password TEXT,
				children JSONB NOT NULL DEFAULT '[]',
				parent_workspace_id UUID,
				parent_folder_id UUID,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT %s_one_parent CHECK (
					(parent_workspace_id IS NULL) <> (parent_folder_id IS NULL)
				)
			)`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				user_id TEXT NOT NULL,
				title TEXT NOT NULL,
				icon TEXT,
				cover_image TEXT,
				content TEXT,
				is_archived BOOLEAN NOT NULL DEFAULT FALSE,
				is_published BOOLEAN NOT NULL DEFAULT FALSE,
				is_private BOOLEAN NOT NULL DEFAULT FALSE,
				password TEXT,
				parent_workspace_id UUID,
				parent_folder_id UUID,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT %s_one_parent CHECK (
					(parent_workspace_id IS NULL) <> (parent_folder_id IS NULL)
				)
			)`, tables.Documents, tables.Documents),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				user_id TEXT NOT NULL,
				title TEXT NOT NULL,
				url TEXT NOT NULL,
				format TEXT,
				size_mb DOUBLE PRECISION NOT NULL DEFAULT 0,
				is_archived BOOLEAN NOT NULL DEFAULT FALSE,
				is_published BOOLEAN NOT NULL DEFAULT FALSE,
				is_private BOOLEAN NOT NULL DEFAULT FALSE,
				password TEXT,
				parent_workspace_id UUID,
				parent_folder_id UUID,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT %s_one_parent CHECK (
					(parent_workspace_id IS NULL) <> (parent_folder_id IS NULL)
				)
			)`, tables.Files, tables.Files),
	}

	// by_user and by_user_parent lookups back every listing and cascade walk
	for _, table := range []string{tables.Folders, tables.Documents, tables.Files} {
		stmts = append(stmts,
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_by_user ON %s (user_id)`, table, table),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_by_user_parent ON %s (user_id, parent_folder_id)`, table, table),
		)
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
