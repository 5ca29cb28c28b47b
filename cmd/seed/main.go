package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"loft/internal/auth"
	"loft/internal/config"
	"loft/internal/domain/models"
	wsModels "loft/internal/domain/models/workspace"
	wsSvc "loft/internal/domain/services/workspace"
	"loft/internal/repository/postgres"
	postgresWs "loft/internal/repository/postgres/workspace"
	serviceAuth "loft/internal/service/auth"
	serviceWs "loft/internal/service/workspace"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Clear all rows (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("🌱 Seed tool starting (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("🧹 Clearing existing rows...")
		if err := clearAllData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared")
		return
	}

	// Provision the test user through the Supabase Admin API when a service
	// key is configured; otherwise fall back to a fixed UUID.
	testUserID := "00000000-0000-0000-0000-000000000001"
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		admin := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
		_ = admin.DeleteUserByEmail(cfg.TestUserEmail)
		id, err := admin.CreateUser(cfg.TestUserEmail, cfg.TestUserPassword, map[string]interface{}{
			"given_name":  "Test",
			"family_name": "User",
			"full_name":   "Test User",
		})
		if err != nil {
			log.Fatalf("Failed to create test user: %v", err)
		}
		testUserID = id
		log.Printf("✅ Test user ready: %s (%s)", cfg.TestUserEmail, testUserID)
	} else {
		log.Printf("⚠️  No SUPABASE_URL/SUPABASE_KEY; using fixed test user id %s", testUserID)
	}

	// Repositories and services
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	profileRepo := postgresWs.NewProfileRepository(repoConfig)
	workspaceRepo := postgresWs.NewWorkspaceRepository(repoConfig)
	folderRepo := postgresWs.NewFolderRepository(repoConfig)
	docRepo := postgresWs.NewDocumentRepository(repoConfig)
	fileRepo := postgresWs.NewFileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(workspaceRepo, folderRepo, docRepo, fileRepo)

	bootstrapService := serviceWs.NewBootstrapService(profileRepo, workspaceRepo, logger)
	folderService := serviceWs.NewFolderService(folderRepo, docRepo, fileRepo, workspaceRepo, txManager, authorizer, logger)
	docService := serviceWs.NewDocumentService(docRepo, folderRepo, fileRepo, workspaceRepo, txManager, authorizer, logger)
	fileService := serviceWs.NewFileService(fileRepo, folderRepo, docRepo, workspaceRepo, txManager, authorizer, logger)

	// Bootstrap the workspace, then seed a small sample tree through the
	// service layer so the ChildRef caches are built the normal way.
	claims := &models.SupabaseClaims{
		Email: cfg.TestUserEmail,
		UserMetadata: map[string]interface{}{
			"given_name":  "Test",
			"family_name": "User",
			"full_name":   "Test User",
		},
	}
	claims.Subject = testUserID

	result, err := bootstrapService.EnsureWorkspaceAndProfile(ctx, testUserID, claims)
	if err != nil {
		log.Fatalf("Failed to bootstrap test user: %v", err)
	}
	ws := result.Workspace
	log.Printf("✅ Workspace ready: %s", ws.ID)

	log.Println("📝 Seeding sample tree...")

	notes, err := folderService.CreateFolder(ctx, &wsSvc.CreateFolderRequest{
		UserID: testUserID,
		Title:  "Notes",
		Parent: wsModels.WorkspaceParent(ws.ID),
	})
	if err != nil {
		log.Fatalf("Failed to create Notes folder: %v", err)
	}

	projects, err := folderService.CreateFolder(ctx, &wsSvc.CreateFolderRequest{
		UserID: testUserID,
		Title:  "Projects",
		Parent: wsModels.WorkspaceParent(ws.ID),
	})
	if err != nil {
		log.Fatalf("Failed to create Projects folder: %v", err)
	}

	for _, doc := range sampleDocuments(testUserID, ws.ID, notes.ID) {
		created, err := docService.CreateDocument(ctx, doc)
		if err != nil {
			log.Printf("❌ Failed to create document %q: %v", doc.Title, err)
			continue
		}
		log.Printf("✅ Created document: %s (ID: %s)", created.Title, created.ID)
	}

	format := "pdf"
	file, err := fileService.SaveFile(ctx, &wsSvc.SaveFileRequest{
		UserID: testUserID,
		Title:  "Onboarding checklist",
		URL:    "https://files.example.com/onboarding-checklist.pdf",
		Format: &format,
		SizeMB: 1.2,
		Parent: wsModels.FolderParent(projects.ID),
	})
	if err != nil {
		log.Printf("❌ Failed to save file: %v", err)
	} else {
		log.Printf("✅ Saved file: %s (ID: %s)", file.Title, file.ID)
	}

	log.Println("🎉 Seeding complete!")
}

func sampleDocuments(userID, workspaceID, notesFolderID string) []*wsSvc.CreateDocumentRequest {
	return []*wsSvc.CreateDocumentRequest{
		{
			UserID: userID,
			Title:  "Welcome",
			Parent: wsModels.WorkspaceParent(workspaceID),
		},
		{
			UserID: userID,
			Title:  "Meeting notes",
			Parent: wsModels.FolderParent(notesFolderID),
		},
		{
			UserID: userID,
			Title:  "Reading list",
			Parent: wsModels.FolderParent(notesFolderID),
		},
	}
}

// dropAllTables drops all tables. Children caches live inside the workspace
// and folder rows, so order only matters for readability.
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Files,
		tables.Documents,
		tables.Folders,
		tables.Workspaces,
		tables.Profiles,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}
	return nil
}

// clearAllData deletes every row but keeps the schema.
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Files,
		tables.Documents,
		tables.Folders,
		tables.Workspaces,
		tables.Profiles,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
