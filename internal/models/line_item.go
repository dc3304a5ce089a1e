package models

import "github.com/shopspring/decimal"

// LineItem is the database model for the line_items table.
type LineItem struct {
	LineItemID       string
	DocumentID       string
	AccountCode      *string
	AccountName      string
	Section          string
	Category         string
	Subcategory      string
	Amount           decimal.Decimal
	PeriodAmount     *decimal.Decimal
	PeriodPercentage *decimal.Decimal
	Position         int
	IsTotal          bool
	ParentLineID     *string
	MatchStrategy    string
	MatchConfidence  float64
	NeedsReview      bool
	AuditFields
}

// Adjustment is the database model for the document_adjustments table.
type Adjustment struct {
	AdjustmentID string
	DocumentID   string
	Description  string
	Amount       decimal.Decimal
	Section      string
	Position     int
}

// ReconciliationEntry is the database model for the reconciliation_entries table.
type ReconciliationEntry struct {
	EntryID     string
	DocumentID  string
	Description string
	Amount      decimal.Decimal
	Position    int
}
