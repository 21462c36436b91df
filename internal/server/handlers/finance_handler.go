package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/domain/models"
	"github.com/ssemanda/boutique/internal/service/finance"
	"github.com/ssemanda/boutique/internal/service/ledger"
)

// FinanceHandler exposes expenses, the capital ledgers and the finance summary.
type FinanceHandler struct {
	svc       *finance.Service
	ledgerSvc *ledger.Service
	logger    *zap.Logger
}

// NewFinanceHandler constructs the HTTP handler adapter.
func NewFinanceHandler(svc *finance.Service, ledgerSvc *ledger.Service, logger *zap.Logger) *FinanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinanceHandler{svc: svc, ledgerSvc: ledgerSvc, logger: logger}
}

type expenseRequest struct {
	Description string `json:"description" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required"`
}

type amountRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Label  string `json:"label"`
}

// ListExpenses returns all expenses.
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.svc.ListExpenses(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// CreateExpense records an operating expense.
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid expense payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	expense, err := h.svc.AddExpense(c.Request.Context(), req.Description, req.Amount, models.ExpenseCategory(req.Category))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// DeleteExpense removes an expense by id.
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	if err := h.svc.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListStockPurchases returns the restock spend ledger.
func (h *FinanceHandler) ListStockPurchases(c *gin.Context) {
	purchases, err := h.svc.ListStockPurchases(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

// CreateStockPurchase logs capital spent restocking.
func (h *FinanceHandler) CreateStockPurchase(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid stock purchase payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	purchase, err := h.svc.AddStockPurchase(c.Request.Context(), req.Label, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

// ListWithdrawals returns the owner draw ledger.
func (h *FinanceHandler) ListWithdrawals(c *gin.Context) {
	withdrawals, err := h.svc.ListWithdrawals(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}

// CreateWithdrawal records an owner draw, bounded by the personal balance.
func (h *FinanceHandler) CreateWithdrawal(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid withdrawal payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	withdrawal, err := h.svc.Withdraw(c.Request.Context(), req.Amount, req.Label)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, withdrawal)
}

// ListInjections returns the capital injection ledger.
func (h *FinanceHandler) ListInjections(c *gin.Context) {
	injections, err := h.svc.ListInjections(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, injections)
}

// CreateInjection records fresh capital added to the business.
func (h *FinanceHandler) CreateInjection(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid injection payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	injection, err := h.svc.AddInjection(c.Request.Context(), req.Amount, req.Label)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, injection)
}

// AuditTrail returns the merged capital ledger, newest first.
func (h *FinanceHandler) AuditTrail(c *gin.Context) {
	entries, err := h.svc.AuditTrail(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Summary returns the full derived figure set.
func (h *FinanceHandler) Summary(c *gin.Context) {
	summary, err := h.ledgerSvc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
