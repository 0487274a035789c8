package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/adapter/repository"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/infrastructure/cache"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/infrastructure/database"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/infrastructure/storage"
	aiuse "github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/ai"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/meeting"
	pkgai "github.com/CS222-UIUC/fa25-fa25-team027/pkg/ai"
	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/config"
)

// NewLogger builds the process logger for the configured environment.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// App holds the process-lifetime resources shared by the commands
type App struct {
	DB          *sql.DB
	Service     *meeting.MeetingService
	Transcriber pkgai.Transcriber
	cache       cache.Store
	logger      *zap.Logger
}

// New opens the database and assembles the meeting service with every
// optional collaborator the configuration enables.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.NewSQLiteDB(&cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	a := &App{DB: db, logger: logger}

	if cfg.Database.AutoMigrate {
		if _, err := database.AutoMigrate(ctx, db, logger); err != nil {
			a.Close()
			return nil, err
		}
	}

	repo, err := repository.NewMeetingRepository(ctx, db, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	gen, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := []meeting.Option{meeting.WithDefaultPageSize(cfg.Server.DefaultPageSize)}

	if cfg.Assembly.APIKey != "" {
		a.Transcriber = pkgai.NewAssemblyAITranscriber(&cfg.Assembly, logger)
		opts = append(opts, meeting.WithTranscriber(a.Transcriber))
	} else {
		logger.Warn("app.transcriber_disabled", zap.String("reason", "ASSEMBLYAI_API_KEY is not set"))
	}

	if cfg.Storage.Enabled {
		archive, err := storage.NewMinIOClient(ctx, &cfg.Storage, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		opts = append(opts, meeting.WithArchive(archive))
	}

	store, err := cache.NewStore(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if store != nil {
		a.cache = store
		opts = append(opts, meeting.WithCache(store, cfg.Cache.TTL))
	}

	a.Service = meeting.NewMeetingService(repo, aiuse.NewExtractor(gen, logger), logger, opts...)
	return a, nil
}

// newGenerator builds the configured model client, checks that an Ollama
// model is installed when asked to, and adds retries when configured.
func newGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (pkgai.Generator, error) {
	gen, err := pkgai.NewGenerator(&cfg.LLM)
	if err != nil {
		return nil, err
	}
	if ollama, ok := gen.(*pkgai.OllamaClient); ok && cfg.LLM.VerifyModel {
		if err := ollama.VerifyModel(ctx); err != nil {
			logger.Warn("app.model_unverified", zap.String("model", cfg.LLM.Model), zap.Error(err))
		}
	}
	logger.Info("app.generator_ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.Int("max_retries", cfg.LLM.MaxRetries))
	return pkgai.NewRetryGenerator(gen, cfg.LLM.MaxRetries, logger), nil
}

// Close releases the cache and the database.
func (a *App) Close() error {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("app.cache_close_failed", zap.Error(err))
		}
	}
	return database.CloseDB(a.DB, a.logger)
}
