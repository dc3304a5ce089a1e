package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finparse/statement-pipeline/internal/core/domain"
)

// CreateAccountEntryRequest defines the data needed to add a chart-of-accounts entry.
type CreateAccountEntryRequest struct {
	Code          string                `json:"code" binding:"required"`
	Name          string                `json:"name" binding:"required"`
	Category      string                `json:"category" binding:"required"`
	Subcategory   string                `json:"subcategory"`
	ParentCode    *string               `json:"parentCode"`
	DocumentTypes []domain.DocumentType `json:"documentTypes"`
	ExpectedSign  domain.ExpectedSign   `json:"expectedSign" binding:"omitempty,oneof=POSITIVE NEGATIVE EITHER"`
	IsSummary     bool                  `json:"isSummary"`
	UserID        string                `json:"userID"`
}

// AccountEntryResponse mirrors domain.ChartOfAccountsEntry.
type AccountEntryResponse struct {
	Code          string                `json:"code"`
	Name          string                `json:"name"`
	Category      string                `json:"category"`
	Subcategory   string                `json:"subcategory,omitempty"`
	ParentCode    *string               `json:"parentCode"`
	DocumentTypes []domain.DocumentType `json:"documentTypes,omitempty"`
	ExpectedSign  domain.ExpectedSign   `json:"expectedSign"`
	IsSummary     bool                  `json:"isSummary"`
	IsActive      bool                  `json:"isActive"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// ToAccountEntryResponse converts a catalogue entry to its API shape.
func ToAccountEntryResponse(e domain.ChartOfAccountsEntry) AccountEntryResponse {
	return AccountEntryResponse{
		Code:          e.Code,
		Name:          e.Name,
		Category:      e.Category,
		Subcategory:   e.Subcategory,
		ParentCode:    e.ParentCode,
		DocumentTypes: e.DocumentTypes,
		ExpectedSign:  e.ExpectedSign,
		IsSummary:     e.IsSummary,
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
	}
}

// ValidationResultResponse mirrors domain.ValidationResult.
type ValidationResultResponse struct {
	ResultID    string          `json:"resultID"`
	RuleID      string          `json:"ruleID"`
	Expected    decimal.Decimal `json:"expected"`
	Actual      decimal.Decimal `json:"actual"`
	Difference  decimal.Decimal `json:"difference"`
	Passed      bool            `json:"passed"`
	Severity    domain.Severity `json:"severity"`
	EvaluatedAt time.Time       `json:"evaluatedAt"`
}

// ToValidationResultResponse converts a result to its API shape.
func ToValidationResultResponse(r domain.ValidationResult) ValidationResultResponse {
	return ValidationResultResponse{
		ResultID:    r.ResultID,
		RuleID:      r.RuleID,
		Expected:    r.Expected,
		Actual:      r.Actual,
		Difference:  r.Difference,
		Passed:      r.Passed,
		Severity:    r.Severity,
		EvaluatedAt: r.EvaluatedAt,
	}
}

// CatalogSnapshot is the read-only reference data loaded once per run and
// shared lock-free across workers.
type CatalogSnapshot struct {
	Accounts []domain.ChartOfAccountsEntry
	Rules    []domain.ValidationRule
}
