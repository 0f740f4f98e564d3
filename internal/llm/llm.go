package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"cvalign-lens/internal/shared/metrics"
	"cvalign-lens/internal/shared/telemetry"
)

const (
	DefaultTemperature float32 = 0.3
	DefaultMaxTokens           = 2048
)

// Object is a decoded JSON object returned by a model.
type Object map[string]any

// Request is a single system+user chat completion.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Completer abstracts LLM providers. Implementations return the raw assistant text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrEmptyResponse is returned by providers when the model produced no text.
var ErrEmptyResponse = errors.New("llm returned empty content")

// Gateway sends prompts through a Completer and decodes the reply as a JSON object.
// It never retries.
type Gateway struct {
	completer   Completer
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

type Option func(*Gateway)

func WithTemperature(t float32) Option {
	return func(g *Gateway) { g.temperature = t }
}

func WithMaxTokens(n int) Option {
	return func(g *Gateway) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(g *Gateway) { g.logger = telemetry.OrNop(logger) }
}

// NewGateway wraps completer with the default sampling settings.
func NewGateway(completer Completer, opts ...Option) *Gateway {
	g := &Gateway{
		completer:   completer,
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Call performs one completion and extracts a JSON object from the reply.
func (g *Gateway) Call(ctx context.Context, systemPrompt, userPrompt string) (Object, error) {
	if g == nil || g.completer == nil {
		return nil, errors.New("llm gateway is not initialized")
	}

	metrics.IncLLMCalls()
	start := time.Now()
	raw, err := g.completer.Complete(ctx, Request{
		System:      systemPrompt,
		User:        userPrompt,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	elapsed := time.Since(start)
	if err != nil {
		g.logger.Error("llm.call_failed", zap.Duration("duration", elapsed), zap.Error(err))
		return nil, fmt.Errorf("llm completion: %w", err)
	}

	raw = strings.TrimSpace(raw)
	obj, err := ExtractJSON(raw)
	if err != nil {
		metrics.IncLLMParseFailures()
		g.logger.Warn("llm.parse_failed",
			zap.Duration("duration", elapsed),
			zap.String("raw_excerpt", telemetry.TruncateForLog(raw, 200)),
			zap.Error(err),
		)
		return nil, err
	}

	g.logger.Debug("llm.call_complete",
		zap.Duration("duration", elapsed),
		zap.Int("response_chars", len(raw)),
		zap.Int("keys", len(obj)),
	)
	return obj, nil
}
