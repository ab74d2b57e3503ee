// Package app assembles the components shared by the API server and the
// command-line generator.
package app

import (
	"context"
	"fmt"

	"quiz-practice/internal/adapter"
	"quiz-practice/internal/adapter/llm"
	"quiz-practice/internal/adapter/pdf"
	"quiz-practice/internal/cache"
	"quiz-practice/internal/config"
	"quiz-practice/internal/database"
	"quiz-practice/internal/domain"
	"quiz-practice/internal/logger"
	"quiz-practice/internal/repository"
	"quiz-practice/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// Components is the wired application.
type Components struct {
	DB          *sqlx.DB
	RedisClient *redis.Client

	Questions       domain.QuestionRepository
	Records         domain.RecordRepository
	Generation      domain.GenerationService
	QuestionService service.QuestionService
}

// Build connects the configured model backend and wires everything else
// with BuildWithModel.
func Build(ctx context.Context, cfg *config.Config) (*Components, error) {
	model, err := llm.NewModel(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	logger.Get().Info("Model client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)
	return BuildWithModel(cfg, model)
}

// BuildWithModel opens the database and cache and wires the services around
// model. SQLite databases are migrated on open; Oracle schemas are managed
// by cmd/migrate.
func BuildWithModel(cfg *config.Config, model llms.Model) (*Components, error) {
	db, err := database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		return nil, err
	}
	if cfg.DB.Driver == database.DriverSQLite {
		if err := database.Migrate(db, database.DirectionUp); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
	}

	c := &Components{DB: db}

	var textCache domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Get().Warn("Redis unavailable, running without PDF text cache", zap.Error(err))
	} else if redisClient != nil {
		c.RedisClient = redisClient
		textCache = adapter.NewRedisCacheAdapter(redisClient)
		logger.Get().Info("Redis cache initialized", zap.String("address", cfg.Redis.Address))
	}

	c.Questions = repository.NewQuestionDatabaseAdapter(db)
	c.Records = repository.NewRecordDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	extractor := pdf.NewCachingExtractor(pdf.NewExtractor(), textCache, cfg.PDF.CacheTTL)
	c.Generation = service.NewGenerationService(
		pdf.NewFileSource(cfg.PDF.Path),
		extractor,
		llm.NewInvoker(model, cfg.LLM.Timeout),
		c.Questions,
		cfg.Generation,
	)
	c.QuestionService = service.NewQuestionService(c.Questions, c.Records, txManager)

	return c, nil
}

// Close releases the database and cache connections.
func (c *Components) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Get().Warn("Failed to close redis client", zap.Error(err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Get().Warn("Failed to close database", zap.Error(err))
		}
	}
}
