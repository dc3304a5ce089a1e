package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finparse/statement-pipeline/internal/core/domain"
)

// RawLineInput is one extractor line as submitted by the orchestration layer.
type RawLineInput struct {
	Text         string             `json:"text"`
	PageNumber   int                `json:"pageNumber" binding:"required,min=1"`
	BoundingBox  domain.BoundingBox `json:"boundingBox"`
	ColumnValues []string           `json:"columnValues"`
}

// SubmitDocumentRequest stages a document's raw line stream for extraction.
type SubmitDocumentRequest struct {
	DocumentID   string              `json:"documentID"` // optional; generated when empty
	DocumentType domain.DocumentType `json:"documentType" binding:"required,oneof=BALANCE_SHEET INCOME_STATEMENT CASH_FLOW RENT_ROLL"`
	Lines        []RawLineInput      `json:"lines" binding:"required,min=1,dive"`
	SubmittedBy  string              `json:"submittedBy"`
}

// DocumentResponse mirrors domain.DocumentHeader for API consumers.
type DocumentResponse struct {
	DocumentID      string                     `json:"documentID"`
	EntityID        string                     `json:"entityID"`
	EntityName      string                     `json:"entityName"`
	DocumentType    domain.DocumentType        `json:"documentType"`
	PeriodStart     *time.Time                 `json:"periodStart"`
	PeriodEnd       *time.Time                 `json:"periodEnd"`
	AccountingBasis domain.AccountingBasis     `json:"accountingBasis"`
	ReportDate      *time.Time                 `json:"reportDate"`
	Status          domain.DocumentStatus      `json:"status"`
	FailureReason   string                     `json:"failureReason,omitempty"`
	TotalsSummary   map[string]decimal.Decimal `json:"totalsSummary,omitempty"`
	CreatedAt       time.Time                  `json:"createdAt"`
	LastUpdatedAt   time.Time                  `json:"lastUpdatedAt"`
}

// ToDocumentResponse converts a domain header to its API shape.
func ToDocumentResponse(h *domain.DocumentHeader) DocumentResponse {
	return DocumentResponse{
		DocumentID:      h.DocumentID,
		EntityID:        h.EntityID,
		EntityName:      h.EntityName,
		DocumentType:    h.DocumentType,
		PeriodStart:     h.PeriodStart,
		PeriodEnd:       h.PeriodEnd,
		AccountingBasis: h.AccountingBasis,
		ReportDate:      h.ReportDate,
		Status:          h.Status,
		FailureReason:   h.FailureReason,
		TotalsSummary:   h.TotalsSummary,
		CreatedAt:       h.CreatedAt,
		LastUpdatedAt:   h.LastUpdatedAt,
	}
}

// LineItemResponse mirrors domain.LineItem for API consumers.
type LineItemResponse struct {
	LineItemID       string               `json:"lineItemID"`
	AccountCode      *string              `json:"accountCode"`
	AccountName      string               `json:"accountName"`
	Section          domain.Section       `json:"section"`
	Category         string               `json:"category"`
	Subcategory      string               `json:"subcategory,omitempty"`
	Amount           decimal.Decimal      `json:"amount"`
	PeriodAmount     *decimal.Decimal     `json:"periodAmount,omitempty"`
	PeriodPercentage *decimal.Decimal     `json:"periodPercentage,omitempty"`
	Position         int                  `json:"position"`
	IsTotal          bool                 `json:"isTotal"`
	ParentLineID     *string              `json:"parentLineID"`
	MatchStrategy    domain.MatchStrategy `json:"matchStrategy"`
	MatchConfidence  float64              `json:"matchConfidence"`
	NeedsReview      bool                 `json:"needsReview"`
}

// ToLineItemResponse converts a domain line item to its API shape.
func ToLineItemResponse(item domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:       item.LineItemID,
		AccountCode:      item.AccountCode,
		AccountName:      item.AccountName,
		Section:          item.Section,
		Category:         item.Category,
		Subcategory:      item.Subcategory,
		Amount:           item.Amount,
		PeriodAmount:     item.PeriodAmount,
		PeriodPercentage: item.PeriodPercentage,
		Position:         item.Position,
		IsTotal:          item.IsTotal,
		ParentLineID:     item.ParentLineID,
		MatchStrategy:    item.MatchStrategy,
		MatchConfidence:  item.MatchConfidence,
		NeedsReview:      item.NeedsReview,
	}
}

// BatchResult reports the outcome of one document within a batch run.
type BatchResult struct {
	DocumentID string                `json:"documentID"`
	Status     domain.DocumentStatus `json:"status"`
	Error      string                `json:"error,omitempty"`
}
