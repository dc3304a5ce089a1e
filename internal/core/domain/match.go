package domain

import "github.com/shopspring/decimal"

// MatchStrategy names the cascade step that resolved (or failed to resolve)
// a classified line to a chart-of-accounts entry.
type MatchStrategy string

const (
	MatchExactCode        MatchStrategy = "exact_code"
	MatchExactName        MatchStrategy = "exact_name"
	MatchFuzzy            MatchStrategy = "fuzzy"
	MatchCategoryFallback MatchStrategy = "category_fallback"
	MatchNone             MatchStrategy = "none"
)

// MatchOutcome is the explicit result of one matcher run. Callers branch on
// Matched instead of catching errors; "no match" is an expected outcome, not
// a failure.
type MatchOutcome struct {
	Matched    bool
	Entry      *ChartOfAccountsEntry // nil when !Matched
	Strategy   MatchStrategy
	Confidence float64
	Reason     string // set when !Matched
}

// Unmatched builds the no-match outcome with a diagnostic reason.
func Unmatched(reason string) MatchOutcome {
	return MatchOutcome{Matched: false, Strategy: MatchNone, Reason: reason}
}

// MatchedLine is a ClassifiedLine with its resolved account (possibly none)
// and the parsed amount columns.
type MatchedLine struct {
	ClassifiedLine
	AccountCode     *string          `json:"accountCode"` // nil when unmatched
	AccountName     string           `json:"accountName"` // catalogue name, or raw label when unmatched
	MatchStrategy   MatchStrategy    `json:"matchStrategy"`
	MatchConfidence float64          `json:"matchConfidence"`
	NeedsReview     bool             `json:"needsReview"`
	Amount          decimal.Decimal  `json:"amount"`
	PeriodAmount    *decimal.Decimal `json:"periodAmount,omitempty"` // secondary column (e.g. YTD) when present
}
