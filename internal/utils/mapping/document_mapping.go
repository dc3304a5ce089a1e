package mapping

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/models"
)

// ToModelDocumentHeader converts a domain DocumentHeader to its model form.
// The totals summary becomes jsonb.
func ToModelDocumentHeader(d domain.DocumentHeader) (models.DocumentHeader, error) {
	var totals []byte
	if len(d.TotalsSummary) > 0 {
		var err error
		totals, err = json.Marshal(d.TotalsSummary)
		if err != nil {
			return models.DocumentHeader{}, err
		}
	}
	return models.DocumentHeader{
		DocumentID:      d.DocumentID,
		EntityID:        d.EntityID,
		EntityName:      d.EntityName,
		DocumentType:    string(d.DocumentType),
		PeriodStart:     d.PeriodStart,
		PeriodEnd:       d.PeriodEnd,
		AccountingBasis: string(d.AccountingBasis),
		ReportDate:      d.ReportDate,
		Status:          string(d.Status),
		FailureReason:   d.FailureReason,
		TotalsSummary:   totals,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainDocumentHeader converts a model DocumentHeader to its domain form.
func ToDomainDocumentHeader(m models.DocumentHeader) (domain.DocumentHeader, error) {
	var totals map[string]decimal.Decimal
	if len(m.TotalsSummary) > 0 {
		if err := json.Unmarshal(m.TotalsSummary, &totals); err != nil {
			return domain.DocumentHeader{}, err
		}
	}
	return domain.DocumentHeader{
		DocumentID:      m.DocumentID,
		EntityID:        m.EntityID,
		EntityName:      m.EntityName,
		DocumentType:    domain.DocumentType(m.DocumentType),
		PeriodStart:     m.PeriodStart,
		PeriodEnd:       m.PeriodEnd,
		AccountingBasis: domain.AccountingBasis(m.AccountingBasis),
		ReportDate:      m.ReportDate,
		Status:          domain.DocumentStatus(m.Status),
		FailureReason:   m.FailureReason,
		TotalsSummary:   totals,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelRawLine converts a domain RawLine to its model form.
func ToModelRawLine(d domain.RawLine) models.RawLine {
	return models.RawLine{
		LineID:       d.LineID,
		DocumentID:   d.DocumentID,
		Text:         d.Text,
		PageNumber:   d.PageNumber,
		X0:           d.BoundingBox.X0,
		Y0:           d.BoundingBox.Y0,
		X1:           d.BoundingBox.X1,
		Y1:           d.BoundingBox.Y1,
		ColumnValues: d.ColumnValues,
		Position:     d.Position,
	}
}

// ToDomainRawLine converts a model RawLine to its domain form.
func ToDomainRawLine(m models.RawLine) domain.RawLine {
	return domain.RawLine{
		LineID:       m.LineID,
		DocumentID:   m.DocumentID,
		Text:         m.Text,
		PageNumber:   m.PageNumber,
		BoundingBox:  domain.BoundingBox{X0: m.X0, Y0: m.Y0, X1: m.X1, Y1: m.Y1},
		ColumnValues: m.ColumnValues,
		Position:     m.Position,
	}
}
