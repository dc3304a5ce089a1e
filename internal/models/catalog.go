package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChartOfAccountsEntry is the database model for the chart_of_accounts table.
type ChartOfAccountsEntry struct {
	Code           string
	Name           string
	NormalizedName string
	Category       string
	Subcategory    string
	ParentCode     *string
	DocumentTypes  []string // text[] column; empty means all types
	ExpectedSign   string
	IsSummary      bool
	IsActive       bool
	AuditFields
}

// ValidationRule is the database model for the validation_rules table.
type ValidationRule struct {
	RuleID         string
	Name           string
	DocumentType   string
	Formula        string
	ToleranceKind  string
	ToleranceValue decimal.Decimal
	Severity       string
	IsActive       bool
	AuditFields
}

// ValidationResult is the database model for the validation_results table.
type ValidationResult struct {
	ResultID    string
	RuleID      string
	DocumentID  string
	Expected    decimal.Decimal
	Actual      decimal.Decimal
	Difference  decimal.Decimal
	Passed      bool
	Severity    string
	EvaluatedAt time.Time
}
