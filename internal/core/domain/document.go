package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType identifies which kind of financial statement a document is.
// The set is closed: each type has a dedicated section/classification profile,
// and adding a type is a compile-time change, not ad-hoc branching.
type DocumentType string

const (
	BalanceSheet    DocumentType = "BALANCE_SHEET"
	IncomeStatement DocumentType = "INCOME_STATEMENT"
	CashFlow        DocumentType = "CASH_FLOW"
	RentRoll        DocumentType = "RENT_ROLL"
)

// DocumentTypes returns all supported document types.
func DocumentTypes() []DocumentType {
	return []DocumentType{BalanceSheet, IncomeStatement, CashFlow, RentRoll}
}

// IsValid reports whether t is a member of the closed document type set.
func (t DocumentType) IsValid() bool {
	switch t {
	case BalanceSheet, IncomeStatement, CashFlow, RentRoll:
		return true
	}
	return false
}

// AccountingBasis is the accounting method declared on the statement.
type AccountingBasis string

const (
	BasisCash    AccountingBasis = "CASH"
	BasisAccrual AccountingBasis = "ACCRUAL"
	BasisUnknown AccountingBasis = "UNKNOWN"
)

// DocumentStatus is the processing state of one extraction run for a document.
type DocumentStatus string

const (
	StatusPending     DocumentStatus = "PENDING"
	StatusProcessing  DocumentStatus = "PROCESSING"
	StatusCompleted   DocumentStatus = "COMPLETED"
	StatusFailed      DocumentStatus = "FAILED"
	StatusNeedsReview DocumentStatus = "NEEDS_REVIEW"
)

// IsTerminal reports whether no further transition is allowed except a brand-new run.
func (s DocumentStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusNeedsReview:
		return true
	}
	return false
}

// CanTransitionTo validates the extraction state machine:
// pending -> processing -> {completed, failed, needs_review}.
// A new run resets any state back to pending (replace semantics).
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	if next == StatusPending {
		// Re-submission replaces the prior run from any state.
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed || next == StatusNeedsReview
	}
	return false
}

// DocumentHeader is the one-per-document record owning all extracted line items.
type DocumentHeader struct {
	DocumentID      string                     `json:"documentID"`
	EntityID        string                     `json:"entityID"`   // property / company identifier as printed
	EntityName      string                     `json:"entityName"` // display name, may be empty
	DocumentType    DocumentType               `json:"documentType"`
	PeriodStart     *time.Time                 `json:"periodStart"`
	PeriodEnd       *time.Time                 `json:"periodEnd"`
	AccountingBasis AccountingBasis            `json:"accountingBasis"`
	ReportDate      *time.Time                 `json:"reportDate"`
	Status          DocumentStatus             `json:"status"`
	FailureReason   string                     `json:"failureReason,omitempty"` // set only when Status == FAILED
	TotalsSummary   map[string]decimal.Decimal `json:"totalsSummary"`           // named aggregates fed to the rule engine
	AuditFields
}

// Adjustment is a period adjustment entry persisted alongside a document's line items.
type Adjustment struct {
	AdjustmentID string          `json:"adjustmentID"`
	DocumentID   string          `json:"documentID"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Section      Section         `json:"section"`
	Position     int             `json:"position"`
}

// ReconciliationEntry is a cash/book reconciliation row persisted with the document.
type ReconciliationEntry struct {
	EntryID     string          `json:"entryID"`
	DocumentID  string          `json:"documentID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Position    int             `json:"position"`
}
