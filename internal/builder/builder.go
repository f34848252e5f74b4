package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/akorchak/docchat-backend/internal/api"
	chatapi "github.com/akorchak/docchat-backend/internal/api/chat"
	documentapi "github.com/akorchak/docchat-backend/internal/api/document"
	"github.com/akorchak/docchat-backend/internal/config"
	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/akorchak/docchat-backend/internal/integration/openai"
	"github.com/akorchak/docchat-backend/internal/integration/qdrant"
	"github.com/akorchak/docchat-backend/internal/pkg/fallback"
	"github.com/akorchak/docchat-backend/internal/pkg/validator"
	"github.com/akorchak/docchat-backend/internal/repository"
	"github.com/akorchak/docchat-backend/internal/telegram"
	chatuc "github.com/akorchak/docchat-backend/internal/usecase/chat"
	"github.com/akorchak/docchat-backend/internal/usecase/ingest"
	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// aiConnector is the combined OpenAI surface used by both usecases.
type aiConnector interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	Complete(ctx context.Context, messages []entity.ChatMessage) (string, error)
}

// vectorStore is the combined Qdrant surface used by both usecases.
type vectorStore interface {
	EnsureCollection(ctx context.Context) error
	Upsert(ctx context.Context, points []entity.VectorPoint) error
	Search(ctx context.Context, vector []float64, topK int) ([]entity.SearchHit, error)
}

// Build assembles the HTTP application from configuration.
func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	sessions, db, err := setupSessions(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	ai, store := setupConnectors(cfg, logger)

	// The collection must exist before the first upsert or search.
	// Startup is the only place retries happen.
	if err := retry.Do(
		func() error { return store.EnsureCollection(ctx) },
		cfg.QdrantCfg.Retry.ToOptions()...,
	); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("ensure vector collection: %w", err)
	}
	logger.Info("vector collection ready", zap.String("collection", cfg.QdrantCfg.Collection))

	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)

	ingestUC := ingest.NewUsecase(ai, store, cfg.ChatCfg.ChunkMaxLength, logger)
	chatUC := chatuc.NewUsecase(
		ai,
		store,
		ai,
		sessions,
		fallback.NewSelector(cfg.ChatCfg.DefaultLanguage),
		cfg.ChatCfg,
		logger,
	)
	logger.Info("use cases initialized")

	chatHandler := chatapi.NewHandler(chatUC)
	documentHandler := documentapi.NewHandler(ingestUC, fileValidator)

	router := api.SetupRouter(chatHandler, documentHandler, logger)
	logger.Info("http router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot assembles the Telegram frontend over the same
// answering pipeline as the HTTP server.
func BuildTelegramBot() (*telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("building telegram bot",
		zap.String("environment", cfg.Environment),
	)

	sessions, db, err := setupSessions(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ai, store := setupConnectors(cfg, logger)

	if err := retry.Do(
		func() error { return store.EnsureCollection(ctx) },
		cfg.QdrantCfg.Retry.ToOptions()...,
	); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("ensure vector collection: %w", err)
	}

	chatUC := chatuc.NewUsecase(
		ai,
		store,
		ai,
		sessions,
		fallback.NewSelector(cfg.ChatCfg.DefaultLanguage),
		cfg.ChatCfg,
		logger,
	)

	bot, err := telegram.NewBot(cfg.TelegramCfg, chatUC, logger)
	if err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("telegram bot built successfully")

	return bot, logger, nil
}

// setupConnectors picks real or mock integrations.
func setupConnectors(cfg *config.Config, logger *zap.Logger) (aiConnector, vectorStore) {
	if cfg.EnableMocks {
		logger.Info("using mock connectors for external services")
		return openai.NewMockConnector(logger), qdrant.NewMockConnector(logger)
	}
	return openai.NewConnector(cfg.OpenAICfg, logger), qdrant.NewConnector(cfg.QdrantCfg, logger)
}

// setupSessions builds the configured session repository. The returned
// pool is nil for the memory backend.
func setupSessions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SessionRepository, *pgxpool.Pool, error) {
	if cfg.SessionCfg.Backend == "memory" {
		logger.Info("using in-memory session store", zap.Duration("ttl", cfg.SessionCfg.TTL))
		return repository.NewSessionMemory(cfg.SessionCfg.TTL), nil, nil
	}

	db, err := setupDatabase(ctx, cfg.SessionCfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("running database migrations")
	if err := repository.RunMigrations(cfg.SessionCfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	return repository.NewSessionPostgres(db), db, nil
}

func closeDB(db *pgxpool.Pool) {
	if db != nil {
		db.Close()
	}
}
