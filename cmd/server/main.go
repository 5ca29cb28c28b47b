package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"loft/internal/auth"
	"loft/internal/config"
	"loft/internal/handler"
	"loft/internal/middleware"
	"loft/internal/plans"
	"loft/internal/repository/postgres"
	postgresWs "loft/internal/repository/postgres/workspace"
	serviceAuth "loft/internal/service/auth"
	serviceWs "loft/internal/service/workspace"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging: pretty console output in dev, JSON in prod
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logHandler slog.Handler
	if cfg.Environment == "dev" {
		// Pretty console output, plus a rotating debug log on disk
		out := io.Writer(os.Stdout)
		if logFile, err := config.SetupLogFile("logs", 5); err == nil {
			defer logFile.Close()
			out = io.MultiWriter(os.Stdout, logFile)
		}
		logHandler = tint.NewHandler(out, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
		})
	} else {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		})
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	tables := postgres.NewTableNames(cfg.TablePrefix)

	// In dev the schema is applied on boot; prod tables are managed by the
	// seed tool.
	if cfg.Environment == "dev" {
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
	}

	// Repositories
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

	// Ownership guard shared by every service
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(workspaceRepo, folderRepo, docRepo, fileRepo)

	// Plan-tier catalog
	planRegistry, err := plans.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize plan registry: %v", err)
	}

	// Services
	bootstrapService := serviceWs.NewBootstrapService(profileRepo, workspaceRepo, logger)
	workspaceService := serviceWs.NewWorkspaceService(workspaceRepo, txManager, authorizer, logger)
	folderService := serviceWs.NewFolderService(folderRepo, docRepo, fileRepo, workspaceRepo, txManager, authorizer, logger)
	docService := serviceWs.NewDocumentService(docRepo, folderRepo, fileRepo, workspaceRepo, txManager, authorizer, logger)
	fileService := serviceWs.NewFileService(fileRepo, folderRepo, docRepo, workspaceRepo, txManager, authorizer, logger)
	searchService := serviceWs.NewSearchService(folderRepo, docRepo, fileRepo, logger)
	sweepService := serviceWs.NewSweepService(workspaceRepo, folderRepo, docRepo, fileRepo, txManager, logger)

	// Handlers
	healthHandler := handler.NewHealthHandler(pool)
	bootstrapHandler := handler.NewBootstrapHandler(bootstrapService, logger)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService, logger)
	folderHandler := handler.NewFolderHandler(folderService, searchService, logger)
	docHandler := handler.NewDocumentHandler(docService, searchService, logger)
	fileHandler := handler.NewFileHandler(fileService, searchService, logger)
	plansHandler := handler.NewPlansHandler(planRegistry)
	sweepHandler := handler.NewSweepHandler(sweepService, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Bootstrap and profile routes
	mux.HandleFunc("POST /api/bootstrap", bootstrapHandler.Bootstrap)
	mux.HandleFunc("GET /api/profile", bootstrapHandler.GetProfile)
	mux.HandleFunc("GET /api/profiles/search", bootstrapHandler.SearchProfiles)

	// Workspace routes
	mux.HandleFunc("GET /api/workspace", workspaceHandler.GetUserWorkspace)
	mux.HandleFunc("GET /api/workspaces/{id}", workspaceHandler.GetWorkspace)
	mux.HandleFunc("PATCH /api/workspaces/{id}", workspaceHandler.UpdateWorkspace)
	mux.HandleFunc("POST /api/workspaces/{id}/children", workspaceHandler.AddChild)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/standalone", folderHandler.StandaloneFolders) // Must come before {id} route
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("GET /api/folders/{id}/children", folderHandler.GetChildren)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.RenameFolder)
	mux.HandleFunc("POST /api/folders/{id}/archive", folderHandler.ArchiveFolder)
	mux.HandleFunc("POST /api/folders/{id}/move", folderHandler.MoveFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("POST /api/folders/{id}/collaborators", folderHandler.AddCollaborators)

	// Document routes
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/documents/search", docHandler.SearchDocuments) // Must come before {id} route
	mux.HandleFunc("GET /api/documents/standalone", docHandler.StandaloneDocuments)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)
	mux.HandleFunc("POST /api/documents/{id}/archive", docHandler.ArchiveDocument)
	mux.HandleFunc("DELETE /api/documents/{id}/cover", docHandler.RemoveCoverImage)

	// File routes
	mux.HandleFunc("POST /api/files", fileHandler.SaveFile)
	mux.HandleFunc("GET /api/files/search", fileHandler.SearchFiles) // Must come before {id} route
	mux.HandleFunc("GET /api/files/standalone", fileHandler.StandaloneFiles)
	mux.HandleFunc("GET /api/files/{id}", fileHandler.GetFile)
	mux.HandleFunc("DELETE /api/files/{id}", fileHandler.DeleteFile)

	// Plan catalog
	mux.HandleFunc("GET /api/plans", plansHandler.ListPlans)

	// Reconciliation sweep (dev only)
	if cfg.Debug {
		mux.HandleFunc("POST /api/admin/sweep", sweepHandler.Sweep)
		logger.Warn("debug route registered: POST /api/admin/sweep")
	}

	// Health check bypasses auth; everything under /api requires a token
	root := http.NewServeMux()
	root.HandleFunc("GET /health", healthHandler.HealthCheck)
	root.Handle("/api/", middleware.Auth(jwtVerifier, logger)(mux))

	var httpHandler http.Handler = root
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
