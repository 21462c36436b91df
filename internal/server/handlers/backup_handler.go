package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/service/backup"
)

// BackupHandler exposes full-store export and restore.
type BackupHandler struct {
	svc    *backup.Service
	logger *zap.Logger
}

// NewBackupHandler constructs the HTTP handler adapter.
func NewBackupHandler(svc *backup.Service, logger *zap.Logger) *BackupHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupHandler{svc: svc, logger: logger}
}

// Export returns the full backup document.
func (h *BackupHandler) Export(c *gin.Context) {
	payload, err := h.svc.Export(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// Import restores the collections present in the uploaded backup. The restore
// is destructive per key, never a merge.
func (h *BackupHandler) Import(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.logger.Warn("unreadable backup payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.Import(c.Request.Context(), raw); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "restored"})
}
