package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finvault/finvault_backend/internal/core/ports/services"
	"github.com/finvault/finvault_backend/internal/dto"
	"github.com/finvault/finvault_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// syncHandler handles batch reconciliation of locally-originated records.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
}

// registerSyncRoutes registers the sync endpoint.
func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade) {
	h := &syncHandler{syncService: syncService}
	rg.POST("/sync", h.sync)
}

// sync reconciles a client batch of account types, accounts and transactions
// into the store.
func (h *syncHandler) sync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Sync", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.syncService.Sync(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to sync records")
		return
	}

	c.JSON(http.StatusOK, result)
}
