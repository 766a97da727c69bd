package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tactohq/ingest-backend/internal/api"
	filesapi "github.com/tactohq/ingest-backend/internal/api/files"
	ingestapi "github.com/tactohq/ingest-backend/internal/api/ingest"
	"github.com/tactohq/ingest-backend/internal/config"
	"github.com/tactohq/ingest-backend/internal/integration/extraction"
	"github.com/tactohq/ingest-backend/internal/integration/objectstorage"
	"github.com/tactohq/ingest-backend/internal/integration/vectorstore"
	"github.com/tactohq/ingest-backend/internal/pkg/validator"
	"github.com/tactohq/ingest-backend/internal/repository"
	filesuc "github.com/tactohq/ingest-backend/internal/usecase/files"
	ingestuc "github.com/tactohq/ingest-backend/internal/usecase/ingest"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	fileRepo := repository.NewFilePostgres(db)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var (
		vectorConn ingestuc.VectorStore
		extractor  ingestuc.Extractor
		storage    interface {
			ingestuc.ObjectStorage
			filesuc.ObjectStorage
		}
	)

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		vectorConn = vectorstore.NewMockConnector(logger)
		extractor = extraction.NewMockConnector(logger)
		storage = objectstorage.NewMockClient(logger)
	} else {
		logger.Info("Using real connectors for external services")
		vectorConn = vectorstore.NewConnector(cfg.VectorStoreCfg, logger)
		extractor = extraction.NewConnector(cfg.ExtractionCfg, logger)

		s3Client, err := objectstorage.NewClient(ctx, cfg.StorageCfg, logger)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("setup object storage: %w", err)
		}
		storage = s3Client
	}

	// Initialize validators
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)
	logger.Info("Validators initialized")

	// Initialize use cases
	ingestUC := ingestuc.NewUsecase(
		fileRepo,
		storage,
		vectorConn,
		extractor,
		cfg.IngestCfg,
		logger,
	)

	filesUC := filesuc.NewUsecase(
		fileRepo,
		storage,
		fileValidator,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	ingestHandler := ingestapi.NewHandler(ingestUC)
	filesHandler := filesapi.NewHandler(filesUC, cfg.FileUploadCfg)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(ingestHandler, filesHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server. Write timeout must cover the ingestion route
	// timeout or long extractions get cut off mid-response.
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 6 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}
