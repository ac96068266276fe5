package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jakababa94/mandazi-metrics/internal/service/metrics"
)

// DashboardHandler serves the aggregated financial overview: headline KPIs
// plus the daily revenue/cost series the charts render from.
type DashboardHandler struct {
	svc    *metrics.Service
	logger *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(svc *metrics.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Show returns the dashboard payload.
func (h *DashboardHandler) Show(c *gin.Context) {
	dashboard, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
