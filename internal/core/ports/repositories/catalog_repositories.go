package repositories

import (
	"context"

	"github.com/finparse/statement-pipeline/internal/core/domain"
)

// AccountRepository manages the chart-of-accounts catalogue. During an
// extraction run the catalogue is read-only reference data.
type AccountRepository interface {
	SaveEntry(ctx context.Context, entry domain.ChartOfAccountsEntry) error
	FindEntryByCode(ctx context.Context, code string) (*domain.ChartOfAccountsEntry, error)
	ListEntries(ctx context.Context) ([]domain.ChartOfAccountsEntry, error)
}

// RuleRepository manages the validation rule catalogue and evaluation results.
type RuleRepository interface {
	SaveRule(ctx context.Context, rule domain.ValidationRule) error
	ListActiveRules(ctx context.Context) ([]domain.ValidationRule, error)
	// SaveValidationResults appends the audit trail for one run. Results for
	// a prior run of the same document are removed by the extraction writer,
	// not here.
	SaveValidationResults(ctx context.Context, results []domain.ValidationResult) error
	FindResultsByDocumentID(ctx context.Context, documentID string) ([]domain.ValidationResult, error)
}
