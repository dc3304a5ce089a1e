package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finparse/statement-pipeline/internal/apperrors"
	portssvc "github.com/finparse/statement-pipeline/internal/core/ports/services"
	"github.com/finparse/statement-pipeline/internal/dto"
	"github.com/finparse/statement-pipeline/internal/middleware"
	"github.com/gin-gonic/gin"
)

// catalogHandler handles HTTP requests for the reference catalogues.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

// newCatalogHandler creates a new catalogHandler.
func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: cs}
}

// registerCatalogRoutes registers routes related to the reference catalogues.
func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
	}
	rg.GET("/validation-rules", h.listRules)
}

// createAccount adds a chart-of-accounts entry.
func (h *catalogHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.catalogService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating account entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Account code already exists"})
		} else {
			logger.Error("Failed to create account entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account entry"})
		}
		return
	}

	logger.Info("Account entry created", slog.String("code", entry.Code))
	c.JSON(http.StatusCreated, dto.ToAccountEntryResponse(*entry))
}

// listAccounts returns the full chart of accounts.
func (h *catalogHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entries, err := h.catalogService.ListAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	responses := make([]dto.AccountEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.ToAccountEntryResponse(entry))
	}
	c.JSON(http.StatusOK, gin.H{"accounts": responses})
}

// listRules returns the active validation rules.
func (h *catalogHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rules, err := h.catalogService.ListRules(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list validation rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list validation rules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}
