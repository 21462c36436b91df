package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/service/backup"
	"github.com/ssemanda/boutique/internal/service/sales"
)

// OrderHandler exposes sale recording and the sales report export.
type OrderHandler struct {
	svc     *sales.Service
	backups *backup.Service
	logger  *zap.Logger
}

// NewOrderHandler constructs the HTTP handler adapter.
func NewOrderHandler(svc *sales.Service, backups *backup.Service, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{svc: svc, backups: backups, logger: logger}
}

type saleRequest struct {
	ProductName string `json:"productName" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
}

// List returns all orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.svc.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Create records a sale: one order plus the matching stock decrement.
func (h *OrderHandler) Create(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.svc.RecordSale(c.Request.Context(), req.ProductName, req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ExportCSV streams the sales report as a CSV attachment.
func (h *OrderHandler) ExportCSV(c *gin.Context) {
	report, err := h.backups.ExportSalesCSV(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("Boutique_Sales_Report_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(report))
}
