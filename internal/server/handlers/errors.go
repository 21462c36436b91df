package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/domain/models"
	"github.com/ssemanda/boutique/internal/service/finance"
	"github.com/ssemanda/boutique/internal/service/sales"
)

// respondError maps a domain error to an HTTP status and writes the JSON error
// body. Unknown errors are treated as internal.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrInsufficientBalance):
		status = http.StatusConflict
	case errors.Is(err, models.ErrImportFailed),
		errors.Is(err, sales.ErrInvalidArguments),
		errors.Is(err, finance.ErrInvalidArguments):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	} else {
		logger.Warn("request rejected", zap.Error(err))
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
