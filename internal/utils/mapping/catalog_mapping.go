package mapping

import (
	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/models"
)

// ToModelChartOfAccountsEntry converts a domain catalogue entry to its model form.
func ToModelChartOfAccountsEntry(d domain.ChartOfAccountsEntry) models.ChartOfAccountsEntry {
	types := make([]string, len(d.DocumentTypes))
	for i, t := range d.DocumentTypes {
		types[i] = string(t)
	}
	return models.ChartOfAccountsEntry{
		Code:           d.Code,
		Name:           d.Name,
		NormalizedName: d.NormalizedName,
		Category:       d.Category,
		Subcategory:    d.Subcategory,
		ParentCode:     d.ParentCode,
		DocumentTypes:  types,
		ExpectedSign:   string(d.ExpectedSign),
		IsSummary:      d.IsSummary,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChartOfAccountsEntry converts a model catalogue entry to its domain form.
func ToDomainChartOfAccountsEntry(m models.ChartOfAccountsEntry) domain.ChartOfAccountsEntry {
	types := make([]domain.DocumentType, len(m.DocumentTypes))
	for i, t := range m.DocumentTypes {
		types[i] = domain.DocumentType(t)
	}
	return domain.ChartOfAccountsEntry{
		Code:           m.Code,
		Name:           m.Name,
		NormalizedName: m.NormalizedName,
		Category:       m.Category,
		Subcategory:    m.Subcategory,
		ParentCode:     m.ParentCode,
		DocumentTypes:  types,
		ExpectedSign:   domain.ExpectedSign(m.ExpectedSign),
		IsSummary:      m.IsSummary,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelValidationRule converts a domain rule to its model form.
func ToModelValidationRule(d domain.ValidationRule) models.ValidationRule {
	return models.ValidationRule{
		RuleID:         d.RuleID,
		Name:           d.Name,
		DocumentType:   string(d.DocumentType),
		Formula:        d.Formula,
		ToleranceKind:  string(d.ToleranceKind),
		ToleranceValue: d.ToleranceValue,
		Severity:       string(d.Severity),
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainValidationRule converts a model rule to its domain form.
func ToDomainValidationRule(m models.ValidationRule) domain.ValidationRule {
	return domain.ValidationRule{
		RuleID:         m.RuleID,
		Name:           m.Name,
		DocumentType:   domain.DocumentType(m.DocumentType),
		Formula:        m.Formula,
		ToleranceKind:  domain.ToleranceKind(m.ToleranceKind),
		ToleranceValue: m.ToleranceValue,
		Severity:       domain.Severity(m.Severity),
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelValidationResult converts a domain result to its model form.
func ToModelValidationResult(d domain.ValidationResult) models.ValidationResult {
	return models.ValidationResult{
		ResultID:    d.ResultID,
		RuleID:      d.RuleID,
		DocumentID:  d.DocumentID,
		Expected:    d.Expected,
		Actual:      d.Actual,
		Difference:  d.Difference,
		Passed:      d.Passed,
		Severity:    string(d.Severity),
		EvaluatedAt: d.EvaluatedAt,
	}
}

// ToDomainValidationResult converts a model result to its domain form.
func ToDomainValidationResult(m models.ValidationResult) domain.ValidationResult {
	return domain.ValidationResult{
		ResultID:    m.ResultID,
		RuleID:      m.RuleID,
		DocumentID:  m.DocumentID,
		Expected:    m.Expected,
		Actual:      m.Actual,
		Difference:  m.Difference,
		Passed:      m.Passed,
		Severity:    domain.Severity(m.Severity),
		EvaluatedAt: m.EvaluatedAt,
	}
}
