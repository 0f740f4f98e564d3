package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

var (
	// ErrMissingAPIKey means no key was configured for the selected provider.
	ErrMissingAPIKey = errors.New("missing LLM API key")
	// ErrUnknownProvider means LLM_PROVIDER names a provider we cannot build.
	ErrUnknownProvider = errors.New("unknown LLM provider")
)

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	Debug              bool
	LogJSON            bool
	LLM                LLMConfig
	CORSAllowOrigins   []string
	RateLimitPerMinute int
	RateLimitBurst     int
	DatabaseURL        string
}

// LLMConfig selects and tunes the model provider.
type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// provider-specific key variables, checked in order after LLM_API_KEY
var providerKeyEnv = map[string][]string{
	ProviderOpenAI:    {"GROQ_API_KEY", "OPENAI_API_KEY"},
	ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	ProviderAnthropic: {"ANTHROPIC_API_KEY"},
}

// New returns a viper instance with defaults and env bindings. Local .env
// files are loaded first and never override the real environment.
func New() *viper.Viper {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("cmd/.env")

	v := viper.New()
	v.SetDefault("port", "5000")
	v.SetDefault("env", "dev")
	v.SetDefault("debug", false)
	v.SetDefault("log_json", true)
	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.max_tokens", 2048)
	v.SetDefault("llm.timeout", "120s")
	v.SetDefault("cors_allow_origins", "http://localhost:5000")
	v.SetDefault("rate_limit.per_minute", 10)
	v.SetDefault("rate_limit.burst", 5)

	bind := func(key string, envs ...string) {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	bind("port", "PORT")
	bind("env", "ENV")
	bind("debug", "DEBUG", "FLASK_DEBUG")
	bind("log_json", "LOG_JSON")
	bind("llm.provider", "LLM_PROVIDER")
	bind("llm.api_key", "LLM_API_KEY")
	bind("llm.model", "LLM_MODEL", "GROQ_MODEL")
	bind("llm.base_url", "LLM_BASE_URL")
	bind("llm.temperature", "LLM_TEMPERATURE")
	bind("llm.max_tokens", "LLM_MAX_TOKENS")
	bind("llm.timeout", "LLM_TIMEOUT")
	bind("cors_allow_origins", "CORS_ALLOW_ORIGINS")
	bind("rate_limit.per_minute", "RATE_LIMIT_PER_MINUTE")
	bind("rate_limit.burst", "RATE_LIMIT_BURST")
	bind("database_url", "DATABASE_URL")
	for provider, envs := range providerKeyEnv {
		bind("keys."+provider, envs...)
	}
	return v
}

// BindFlags lets command-line flags override env values. Flags missing from
// fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	pairs := map[string]string{
		"port":         "port",
		"debug":        "debug",
		"json":         "log_json",
		"provider":     "llm.provider",
		"model":        "llm.model",
		"database-url": "database_url",
	}
	for flag, key := range pairs {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load reads the effective configuration out of v.
func Load(v *viper.Viper) Config {
	provider := normalizeProvider(v.GetString("llm.provider"))
	apiKey := strings.TrimSpace(v.GetString("llm.api_key"))
	if apiKey == "" {
		apiKey = strings.TrimSpace(v.GetString("keys." + provider))
	}

	return Config{
		Port:    strings.TrimSpace(v.GetString("port")),
		Env:     normalizeEnv(v.GetString("env")),
		Debug:   v.GetBool("debug"),
		LogJSON: v.GetBool("log_json"),
		LLM: LLMConfig{
			Provider:    provider,
			APIKey:      apiKey,
			Model:       strings.TrimSpace(v.GetString("llm.model")),
			BaseURL:     strings.TrimSpace(v.GetString("llm.base_url")),
			Temperature: float32(v.GetFloat64("llm.temperature")),
			MaxTokens:   v.GetInt("llm.max_tokens"),
			Timeout:     readTimeout(v, "llm.timeout"),
		},
		CORSAllowOrigins:   splitAndTrim(v.GetString("cors_allow_origins")),
		RateLimitPerMinute: v.GetInt("rate_limit.per_minute"),
		RateLimitBurst:     v.GetInt("rate_limit.burst"),
		DatabaseURL:        strings.TrimSpace(v.GetString("database_url")),
	}
}

// Validate reports configuration the process cannot start with.
func (c Config) Validate() error {
	keys, ok := providerKeyEnv[c.LLM.Provider]
	if !ok {
		return fmt.Errorf("%w %q (expected openai, gemini or anthropic)", ErrUnknownProvider, c.LLM.Provider)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("%w: set LLM_API_KEY or %s", ErrMissingAPIKey, strings.Join(keys, " / "))
	}
	return nil
}

func normalizeProvider(raw string) string {
	switch p := strings.ToLower(strings.TrimSpace(raw)); p {
	case "", "groq", "openai":
		return ProviderOpenAI
	case "google":
		return ProviderGemini
	case "claude":
		return ProviderAnthropic
	default:
		return p
	}
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}

// readTimeout accepts Go durations ("90s") or a bare number of seconds.
func readTimeout(v *viper.Viper, key string) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return 120 * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
