package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cvalign-lens/internal/shared/telemetry"
)

// OutcomeKey is the gin context key handlers use to tag the request log with a run outcome.
const OutcomeKey = "runOutcome"

// Logging emits a structured log per request.
func Logging(logger *zap.Logger) gin.HandlerFunc {
	logger = telemetry.OrNop(logger)
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("request_id", RequestIDFromContext(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Float64("duration_ms", float64(latency.Microseconds())/1000.0),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if outcome := c.GetString(OutcomeKey); outcome != "" {
			fields = append(fields, zap.String("outcome", outcome))
		}

		switch {
		case status >= 500:
			logger.Error("request.complete", fields...)
		case status >= 400:
			logger.Warn("request.complete", fields...)
		default:
			logger.Info("request.complete", fields...)
		}
	}
}
