package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stocktake/internal/service/reporting"
)

// DashboardHandler serves the derived read-only rollups.
type DashboardHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(svc *reporting.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Get recomputes and returns the dashboard view.
func (h *DashboardHandler) Get(c *gin.Context) {
	view, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, view)
}
