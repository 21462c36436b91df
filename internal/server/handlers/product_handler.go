package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/domain/models"
	"github.com/ssemanda/boutique/internal/service/sales"
)

// ProductHandler exposes the inventory CRUD surface.
type ProductHandler struct {
	svc    *sales.Service
	logger *zap.Logger
}

// NewProductHandler constructs the HTTP handler adapter.
func NewProductHandler(svc *sales.Service, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{svc: svc, logger: logger}
}

type productRequest struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Quantity  int    `json:"quantity"`
	CostPrice int64  `json:"costPrice"`
	SellPrice int64  `json:"sellPrice"`
}

// List returns all products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Create stores a new product.
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid product payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.svc.AddProduct(c.Request.Context(), models.Product{
		Name:      req.Name,
		Category:  models.ProductCategory(req.Category),
		Quantity:  req.Quantity,
		CostPrice: req.CostPrice,
		SellPrice: req.SellPrice,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Replace swaps the product keyed by the path id in one write.
func (h *ProductHandler) Replace(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid product payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product := models.Product{
		ID:        c.Param("id"),
		Name:      req.Name,
		Category:  models.ProductCategory(req.Category),
		Quantity:  req.Quantity,
		CostPrice: req.CostPrice,
		SellPrice: req.SellPrice,
	}
	if err := h.svc.ReplaceProduct(c.Request.Context(), product); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete removes a product by id.
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
