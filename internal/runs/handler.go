package runs

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"cvalign-lens/internal/shared/server/respond"
	"cvalign-lens/internal/shared/telemetry"
)

// Handler serves the run ledger.
type Handler struct {
	Store  Store
	Logger *zap.Logger
}

// RegisterRoutes mounts GET /runs on the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/runs", h.List)
}

// List handles GET /runs?limit=N.
func (h *Handler) List(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		v, err := cast.ToIntE(raw)
		if err != nil || v <= 0 {
			respond.Error(c, http.StatusBadRequest, ErrInvalidLimit.Error())
			return
		}
		limit = v
	}

	items, err := h.Store.List(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, ErrInvalidLimit) {
			respond.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		telemetry.OrNop(h.Logger).Error("runs.list_failed", zap.Error(err))
		respond.Error(c, http.StatusInternalServerError, "Could not list runs.")
		return
	}
	respond.OK(c, gin.H{"runs": items})
}
