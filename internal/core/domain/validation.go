package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Severity ranks a validation rule's impact. Critical failures flag the whole
// document for review; warning and info do not change document status.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

// ToleranceKind selects how a rule's tolerance value is interpreted.
type ToleranceKind string

const (
	ToleranceAbsolute   ToleranceKind = "ABSOLUTE"
	TolerancePercentage ToleranceKind = "PERCENTAGE" // percent of the larger operand
)

// ValidationRule is a configured arithmetic check over a document's named
// aggregates, e.g. "total_assets = total_liabilities + total_equity".
// Rules are reference data, loaded before a run and never mutated by it.
type ValidationRule struct {
	RuleID         string          `json:"ruleID"`
	Name           string          `json:"name"`
	DocumentType   DocumentType    `json:"documentType"`
	Formula        string          `json:"formula"`
	ToleranceKind  ToleranceKind   `json:"toleranceKind"`
	ToleranceValue decimal.Decimal `json:"toleranceValue"`
	Severity       Severity        `json:"severity"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// ValidationResult records the outcome of one rule against one document.
// A result is written for every applicable rule, pass or fail, as an audit
// trail. Results are immutable.
type ValidationResult struct {
	ResultID    string          `json:"resultID"`
	RuleID      string          `json:"ruleID"`
	DocumentID  string          `json:"documentID"`
	Expected    decimal.Decimal `json:"expected"` // right-hand side value
	Actual      decimal.Decimal `json:"actual"`   // left-hand side value
	Difference  decimal.Decimal `json:"difference"`
	Passed      bool            `json:"passed"`
	Severity    Severity        `json:"severity"`
	EvaluatedAt time.Time       `json:"evaluatedAt"`
}
