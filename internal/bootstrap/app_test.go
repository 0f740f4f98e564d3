package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvalign-lens/internal/config"
	"cvalign-lens/internal/llm/anthropic"
	"cvalign-lens/internal/llm/openai"
	"cvalign-lens/internal/runs"
)

func testConfig(provider string) config.Config {
	return config.Config{
		Port: "5000",
		Env:  "dev",
		LLM: config.LLMConfig{
			Provider:    provider,
			APIKey:      "test-key",
			Temperature: 0.3,
			MaxTokens:   2048,
			Timeout:     time.Second,
		},
		CORSAllowOrigins:   []string{"http://localhost:5000"},
		RateLimitPerMinute: 10,
		RateLimitBurst:     5,
	}
}

func TestBuildRequiresAPIKey(t *testing.T) {
	cfg := testConfig(config.ProviderOpenAI)
	cfg.LLM.APIKey = ""

	_, err := Build(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestBuildOpenAIWithMemoryLedger(t *testing.T) {
	app, err := Build(context.Background(), testConfig(config.ProviderOpenAI), nil)
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, openai.DefaultModel, app.Model)
	assert.Nil(t, app.DB)
	assert.IsType(t, &runs.MemoryStore{}, app.Runs)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildServiceHonorsModelOverride(t *testing.T) {
	cfg := testConfig(config.ProviderAnthropic)
	_, model, err := BuildService(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, anthropic.DefaultModel, model)

	cfg.LLM.Model = "claude-haiku-4-5"
	_, model, err = BuildService(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5", model)
}

func TestBuildDevFallsBackWhenDatabaseUnreachable(t *testing.T) {
	cfg := testConfig(config.ProviderOpenAI)
	cfg.DatabaseURL = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"
	t.Setenv("DB_PING_TIMEOUT", "1s")

	app, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, app.DB)
	assert.IsType(t, &runs.MemoryStore{}, app.Runs)
}

func TestBuildProductionFailsWhenDatabaseUnreachable(t *testing.T) {
	cfg := testConfig(config.ProviderOpenAI)
	cfg.Env = "production"
	cfg.DatabaseURL = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"
	t.Setenv("DB_PING_TIMEOUT", "1s")

	_, err := Build(context.Background(), cfg, nil)
	assert.Error(t, err)
}
