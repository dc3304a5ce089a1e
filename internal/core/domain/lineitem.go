package domain

import "github.com/shopspring/decimal"

// LineItem is the durable record of a matched, deduplicated, hierarchy-linked
// line. Items are never updated in place: re-extraction replaces the whole set
// for a document. (document_id, account_code, account_name, position) is the
// idempotency key.
type LineItem struct {
	LineItemID       string           `json:"lineItemID"`
	DocumentID       string           `json:"documentID"`
	AccountCode      *string          `json:"accountCode"`
	AccountName      string           `json:"accountName"`
	Section          Section          `json:"section"`
	Category         string           `json:"category"`
	Subcategory      string           `json:"subcategory"`
	Amount           decimal.Decimal  `json:"amount"`
	PeriodAmount     *decimal.Decimal `json:"periodAmount,omitempty"`
	PeriodPercentage *decimal.Decimal `json:"periodPercentage,omitempty"` // share of its section total
	Position         int              `json:"position"`
	IsTotal          bool             `json:"isTotal"`

	// ParentIndex addresses the parent within the document's item arena by
	// slice position. It only ever points backward, which structurally rules
	// out cycles. ParentLineID is the persisted form, resolved at write time.
	ParentIndex  *int    `json:"parentIndex,omitempty"`
	ParentLineID *string `json:"parentLineID,omitempty"`

	MatchStrategy   MatchStrategy `json:"matchStrategy"`
	MatchConfidence float64       `json:"matchConfidence"`
	NeedsReview     bool          `json:"needsReview"`
	AuditFields
}

// Extraction is the complete in-memory result of one document's pipeline run,
// handed to the persistence writer as a unit.
type Extraction struct {
	Header          DocumentHeader
	Items           []LineItem // arena: ParentIndex addresses into this slice
	Adjustments     []Adjustment
	Reconciliations []ReconciliationEntry
}
