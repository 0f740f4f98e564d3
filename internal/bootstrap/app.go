package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cvalign-lens/internal/analysis"
	"cvalign-lens/internal/config"
	"cvalign-lens/internal/llm"
	"cvalign-lens/internal/llm/anthropic"
	"cvalign-lens/internal/llm/gemini"
	"cvalign-lens/internal/llm/openai"
	"cvalign-lens/internal/runs"
	"cvalign-lens/internal/services/health"
	"cvalign-lens/internal/shared/server"
	"cvalign-lens/internal/shared/storage/db"
	"cvalign-lens/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Router   *gin.Engine
	DB       *sql.DB
	Runs     runs.Store
	Model    string
	Analysis *analysis.Service
}

// modelCompleter is what every provider client offers.
type modelCompleter interface {
	llm.Completer
	Model() string
}

// Build wires config into a ready-to-serve App.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = telemetry.OrNop(logger)

	svc, model, err := BuildService(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	var store runs.Store
	if sqlDB != nil {
		store = &runs.PGStore{DB: sqlDB}
	} else {
		store = runs.NewMemoryStore(0)
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		DB:       sqlDB,
		Runs:     store,
		Model:    model,
		Analysis: svc,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Logger:             logger,
		Debug:              cfg.Debug,
		CORSAllowOrigins:   cfg.CORSAllowOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RateLimitBurst:     cfg.RateLimitBurst,
		AnalysisHandler: &analysis.Handler{
			Svc:      svc,
			Runs:     store,
			Provider: cfg.LLM.Provider,
			Model:    model,
			Logger:   logger,
		},
		RunsHandler: &runs.Handler{Store: store, Logger: logger},
		Health:      health.NewService(sqlDB),
	})
	return app, nil
}

// BuildService constructs the provider client, gateway, and pipeline. It
// returns the resolved model name.
func BuildService(ctx context.Context, cfg config.Config, logger *zap.Logger) (*analysis.Service, string, error) {
	completer, err := buildCompleter(ctx, cfg.LLM)
	if err != nil {
		return nil, "", err
	}
	llmLogger := telemetry.WithLLM(logger, cfg.LLM.Provider, completer.Model())
	gw := llm.NewGateway(completer,
		llm.WithTemperature(cfg.LLM.Temperature),
		llm.WithMaxTokens(cfg.LLM.MaxTokens),
		llm.WithLogger(llmLogger),
	)
	return analysis.NewService(gw, llmLogger), completer.Model(), nil
}

func buildCompleter(ctx context.Context, cfg config.LLMConfig) (modelCompleter, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
	case config.ProviderGemini:
		return gemini.NewClient(ctx, cfg.APIKey, cfg.Model, cfg.Timeout)
	case config.ProviderAnthropic:
		return anthropic.NewClient(cfg.APIKey, cfg.Model, cfg.Timeout)
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownProvider, cfg.Provider)
	}
}

// buildDB connects and migrates when DATABASE_URL is set. In dev a failed
// connection falls back to the memory ledger.
func buildDB(ctx context.Context, cfg config.Config, logger *zap.Logger) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("bootstrap: DATABASE_URL empty; using in-memory run ledger")
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions(), logger)
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts, logger)
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB, logger); err != nil {
			sqlDB.Close()
			sqlDB = nil
		}
	}
	if err != nil {
		if cfg.Env == "dev" {
			logger.Warn("bootstrap: database unavailable; using in-memory run ledger", zap.Error(err))
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
