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

// documentHandler handles HTTP requests related to documents and extraction runs.
type documentHandler struct {
	documentService   portssvc.DocumentSvcFacade
	extractionService portssvc.ExtractionSvcFacade
}

// newDocumentHandler creates a new documentHandler.
func newDocumentHandler(ds portssvc.DocumentSvcFacade, es portssvc.ExtractionSvcFacade) *documentHandler {
	return &documentHandler{
		documentService:   ds,
		extractionService: es,
	}
}

// registerDocumentRoutes registers routes related to documents.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, extractionService portssvc.ExtractionSvcFacade) {
	h := newDocumentHandler(documentService, extractionService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.submitDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:id", h.getDocument)
		documents.POST("/:id/extract", h.extractDocument)
		documents.POST("/extract-batch", h.extractBatch)
		documents.GET("/:id/line-items", h.getLineItems)
		documents.GET("/:id/validation-results", h.getValidationResults)
	}
}

// submitDocument stages a document's raw lines and creates its pending header.
func (h *documentHandler) submitDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	header, err := h.documentService.SubmitDocument(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error submitting document", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to submit document", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit document"})
		}
		return
	}

	logger.Info("Document submitted", slog.String("document_id", header.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(header))
}

// listDocuments returns document headers, newest first.
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query struct {
		Limit  int `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
		Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	headers, err := h.documentService.ListDocuments(c.Request.Context(), query.Limit, query.Offset)
	if err != nil {
		logger.Error("Failed to list documents", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}

	responses := make([]dto.DocumentResponse, 0, len(headers))
	for i := range headers {
		responses = append(responses, dto.ToDocumentResponse(&headers[i]))
	}
	c.JSON(http.StatusOK, gin.H{"documents": responses})
}

// getDocument returns one document header.
func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	header, err := h.documentService.GetDocument(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			logger.Error("Failed to get document", slog.String("document_id", documentID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(header))
}

// extractDocument runs the extraction pipeline for one document.
func (h *documentHandler) extractDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	header, err := h.extractionService.RunDocument(c.Request.Context(), documentID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		case errors.Is(err, apperrors.ErrEmptyInput):
			logger.Warn("Document has no usable text", slog.String("document_id", documentID))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Document contains no usable text"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Document not in a runnable state", slog.String("document_id", documentID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Extraction run failed", slog.String("document_id", documentID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Extraction failed"})
		}
		return
	}

	logger.Info("Extraction run finished", slog.String("document_id", documentID), slog.String("status", string(header.Status)))
	c.JSON(http.StatusOK, dto.ToDocumentResponse(header))
}

// extractBatch runs the extraction pipeline for several documents concurrently.
func (h *documentHandler) extractBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req struct {
		DocumentIDs []string `json:"documentIDs" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	results := h.extractionService.RunBatch(c.Request.Context(), req.DocumentIDs)
	logger.Info("Batch extraction finished", slog.Int("documents", len(results)))
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// getLineItems returns a document's extracted line items in position order.
func (h *documentHandler) getLineItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	items, err := h.documentService.GetLineItems(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			logger.Error("Failed to get line items", slog.String("document_id", documentID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve line items"})
		}
		return
	}

	responses := make([]dto.LineItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.ToLineItemResponse(item))
	}
	c.JSON(http.StatusOK, gin.H{"lineItems": responses})
}

// getValidationResults returns a document's validation audit trail.
func (h *documentHandler) getValidationResults(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	results, err := h.documentService.GetValidationResults(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			logger.Error("Failed to get validation results", slog.String("document_id", documentID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve validation results"})
		}
		return
	}

	responses := make([]dto.ValidationResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, dto.ToValidationResultResponse(result))
	}
	c.JSON(http.StatusOK, gin.H{"validationResults": responses})
}
