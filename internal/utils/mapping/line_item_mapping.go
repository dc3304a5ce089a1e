package mapping

import (
	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/models"
)

// ToModelLineItem converts a domain LineItem to its model form. The
// build-time ParentIndex is not persisted; callers resolve it into
// ParentLineID before mapping.
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:       d.LineItemID,
		DocumentID:       d.DocumentID,
		AccountCode:      d.AccountCode,
		AccountName:      d.AccountName,
		Section:          string(d.Section),
		Category:         d.Category,
		Subcategory:      d.Subcategory,
		Amount:           d.Amount,
		PeriodAmount:     d.PeriodAmount,
		PeriodPercentage: d.PeriodPercentage,
		Position:         d.Position,
		IsTotal:          d.IsTotal,
		ParentLineID:     d.ParentLineID,
		MatchStrategy:    string(d.MatchStrategy),
		MatchConfidence:  d.MatchConfidence,
		NeedsReview:      d.NeedsReview,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLineItem converts a model LineItem to its domain form.
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:       m.LineItemID,
		DocumentID:       m.DocumentID,
		AccountCode:      m.AccountCode,
		AccountName:      m.AccountName,
		Section:          domain.Section(m.Section),
		Category:         m.Category,
		Subcategory:      m.Subcategory,
		Amount:           m.Amount,
		PeriodAmount:     m.PeriodAmount,
		PeriodPercentage: m.PeriodPercentage,
		Position:         m.Position,
		IsTotal:          m.IsTotal,
		ParentLineID:     m.ParentLineID,
		MatchStrategy:    domain.MatchStrategy(m.MatchStrategy),
		MatchConfidence:  m.MatchConfidence,
		NeedsReview:      m.NeedsReview,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAdjustment converts a domain Adjustment to its model form.
func ToModelAdjustment(d domain.Adjustment) models.Adjustment {
	return models.Adjustment{
		AdjustmentID: d.AdjustmentID,
		DocumentID:   d.DocumentID,
		Description:  d.Description,
		Amount:       d.Amount,
		Section:      string(d.Section),
		Position:     d.Position,
	}
}

// ToDomainAdjustment converts a model Adjustment to its domain form.
func ToDomainAdjustment(m models.Adjustment) domain.Adjustment {
	return domain.Adjustment{
		AdjustmentID: m.AdjustmentID,
		DocumentID:   m.DocumentID,
		Description:  m.Description,
		Amount:       m.Amount,
		Section:      domain.Section(m.Section),
		Position:     m.Position,
	}
}

// ToModelReconciliationEntry converts a domain ReconciliationEntry to its model form.
func ToModelReconciliationEntry(d domain.ReconciliationEntry) models.ReconciliationEntry {
	return models.ReconciliationEntry{
		EntryID:     d.EntryID,
		DocumentID:  d.DocumentID,
		Description: d.Description,
		Amount:      d.Amount,
		Position:    d.Position,
	}
}

// ToDomainReconciliationEntry converts a model ReconciliationEntry to its domain form.
func ToDomainReconciliationEntry(m models.ReconciliationEntry) domain.ReconciliationEntry {
	return domain.ReconciliationEntry{
		EntryID:     m.EntryID,
		DocumentID:  m.DocumentID,
		Description: m.Description,
		Amount:      m.Amount,
		Position:    m.Position,
	}
}
