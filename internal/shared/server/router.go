package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cvalign-lens/internal/analysis"
	"cvalign-lens/internal/runs"
	"cvalign-lens/internal/services/health"
	"cvalign-lens/internal/shared/metrics"
	"cvalign-lens/internal/shared/server/middleware"
	"cvalign-lens/internal/web"
)

const analyzeRateGroup = "ANALYZE"

// RouterDeps carries everything NewRouter mounts.
type RouterDeps struct {
	Logger             *zap.Logger
	Debug              bool
	CORSAllowOrigins   []string
	RateLimitPerMinute int
	RateLimitBurst     int
	AnalysisHandler    *analysis.Handler
	RunsHandler        *runs.Handler
	Health             *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = analysis.MaxUploadBytes

	rules := map[string]middleware.RateLimitRule{}
	if deps.RateLimitPerMinute > 0 {
		rules[analyzeRateGroup] = middleware.PerMinute(deps.RateLimitPerMinute, deps.RateLimitBurst)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.CORSAllowOrigins),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: rules,
			GroupFor: func(c *gin.Context) string {
				if strings.HasSuffix(c.FullPath(), "/analyze") {
					return analyzeRateGroup
				}
				return ""
			},
		}),
	)

	web.Register(r)
	r.GET("/metrics", metrics.Handler())

	legacy := r.Group("/api")
	api := r.Group("/api/v1")
	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, healthSvc.Status())
	})
	api.GET("/ready", func(c *gin.Context) {
		payload, err := healthSvc.Ready(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, payload)
			return
		}
		c.JSON(http.StatusOK, payload)
	})
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(legacy)
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	if deps.RunsHandler != nil {
		deps.RunsHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
