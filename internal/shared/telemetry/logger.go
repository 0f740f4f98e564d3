package telemetry

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FieldProvider is the structured log field key for the LLM provider name.
	FieldProvider = "llm_provider"
	// FieldModel is the structured log field key for the LLM model identifier.
	FieldModel = "llm_model"
)

// New builds the process logger on stdout. json selects the JSON encoder over console output.
func New(json bool, debug bool) (*zap.Logger, error) {
	return newConfig(json, debug, "stdout").Build()
}

// NewStderr is New writing to stderr, for commands that print results on stdout.
func NewStderr(json bool, debug bool) (*zap.Logger, error) {
	return newConfig(json, debug, "stderr").Build()
}

func newConfig(json bool, debug bool, output string) zap.Config {
	level := zapcore.InfoLevel
	encoding := "console"
	if json {
		encoding = "json"
	}
	if debug {
		level = zapcore.DebugLevel
	}

	return zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "ts",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			EncodeDuration: zapcore.MillisDurationEncoder,
		},
	}
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// WithLLM attaches provider and model fields, skipping empty values.
func WithLLM(logger *zap.Logger, provider, model string) *zap.Logger {
	logger = OrNop(logger)
	fields := make([]zap.Field, 0, 2)
	if v := strings.TrimSpace(provider); v != "" {
		fields = append(fields, zap.String(FieldProvider, v))
	}
	if v := strings.TrimSpace(model); v != "" {
		fields = append(fields, zap.String(FieldModel, v))
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// TruncateForLog shortens s to limit characters, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
