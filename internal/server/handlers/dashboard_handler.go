package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/service/ledger"
)

// DashboardHandler serves the landing-page aggregate.
type DashboardHandler struct {
	ledgerSvc *ledger.Service
	logger    *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(ledgerSvc *ledger.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{ledgerSvc: ledgerSvc, logger: logger}
}

// Get derives and returns the dashboard view from a fresh snapshot.
func (h *DashboardHandler) Get(c *gin.Context) {
	dashboard, err := h.ledgerSvc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
