package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cvalign-lens/internal/shared/server/respond"
	"cvalign-lens/internal/shared/telemetry"
)

// Recovery turns handler panics into the generic 500 body.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	logger = telemetry.OrNop(logger)
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic",
					zap.String("request_id", RequestIDFromContext(c)),
					zap.Any("error", rec),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				respond.Error(c, http.StatusInternalServerError, respond.InternalErrorMessage)
			}
		}()
		c.Next()
	}
}
