package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finvault/finvault_backend/internal/core/ports/services"
	"github.com/finvault/finvault_backend/internal/dto"
	"github.com/finvault/finvault_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountTypeHandler handles HTTP requests related to account type labels.
type accountTypeHandler struct {
	accountService portssvc.AccountSvcFacade
}

// registerAccountTypeRoutes registers routes related to account types.
func registerAccountTypeRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountTypeHandler{accountService: accountService}

	accountTypes := rg.Group("/account-types")
	{
		accountTypes.POST("", h.createAccountType)
		accountTypes.GET("", h.listAccountTypes)
		accountTypes.DELETE("/:id", h.deleteAccountType)
	}
}

// createAccountType creates a new classification label for the user.
func (h *accountTypeHandler) createAccountType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccountType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	accountType, err := h.accountService.CreateAccountType(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create account type")
		return
	}

	logger.Info("Account type created", slog.String("account_type_id", accountType.AccountTypeID))
	c.JSON(http.StatusCreated, dto.ToAccountTypeResponse(accountType))
}

// listAccountTypes retrieves the user's classification labels.
func (h *accountTypeHandler) listAccountTypes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	accountTypes, err := h.accountService.ListAccountTypes(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list account types")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountTypeResponses(accountTypes))
}

// deleteAccountType removes a classification label owned by the user.
func (h *accountTypeHandler) deleteAccountType(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccountType(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete account type")
		return
	}

	c.Status(http.StatusNoContent)
}
