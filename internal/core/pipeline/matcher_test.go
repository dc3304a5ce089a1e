package pipeline_test

import (
	"testing"

	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/core/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogueEntry(code, name, category string, opts ...func(*domain.ChartOfAccountsEntry)) domain.ChartOfAccountsEntry {
	e := domain.ChartOfAccountsEntry{
		Code:           code,
		Name:           name,
		NormalizedName: pipeline.NormalizeName(name),
		Category:       category,
		ExpectedSign:   domain.SignEither,
		IsActive:       true,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func classified(text, category string) domain.ClassifiedLine {
	return domain.ClassifiedLine{
		RawLine:  domain.RawLine{Text: text},
		Section:  domain.SectionIncome,
		Category: category,
	}
}

func testCatalogue() []domain.ChartOfAccountsEntry {
	return []domain.ChartOfAccountsEntry{
		catalogueEntry("4000", "Rental Income", "base_rental", func(e *domain.ChartOfAccountsEntry) { e.IsSummary = true }),
		catalogueEntry("4010", "Base Rentals - Retail", "base_rental"),
		catalogueEntry("6110", "Repairs and Maintenance", "repairs_maintenance"),
	}
}

func TestMatcher_ExactCode(t *testing.T) {
	m := pipeline.NewMatcher(testCatalogue(), domain.IncomeStatement, 0.85)

	got := m.Match(classified("4010 Some Unrecognizable Label 1,000", "base_rental"), pipeline.NewMemoTable())
	require.True(t, got.Matched)
	assert.Equal(t, domain.MatchExactCode, got.Strategy)
	assert.Equal(t, "4010", got.Entry.Code)
	assert.Equal(t, 1.0, got.Confidence)
}

func TestMatcher_ExactName(t *testing.T) {
	m := pipeline.NewMatcher(testCatalogue(), domain.IncomeStatement, 0.85)

	// punctuation and case differences normalize away
	got := m.Match(classified("base rentals RETAIL 1,000", "base_rental"), pipeline.NewMemoTable())
	require.True(t, got.Matched)
	assert.Equal(t, domain.MatchExactName, got.Strategy)
	assert.Equal(t, "4010", got.Entry.Code)
	assert.Equal(t, 1.0, got.Confidence)
}

func TestMatcher_FuzzyMatch(t *testing.T) {
	m := pipeline.NewMatcher(testCatalogue(), domain.IncomeStatement, 0.85)

	got := m.Match(classified("Repairs and Maintanence 1,200", "repairs_maintenance"), pipeline.NewMemoTable())
	require.True(t, got.Matched)
	assert.Equal(t, domain.MatchFuzzy, got.Strategy)
	assert.Equal(t, "6110", got.Entry.Code)
	assert.GreaterOrEqual(t, got.Confidence, 0.85)
	assert.Less(t, got.Confidence, 1.0)
}

func TestMatcher_FuzzyNeverReportsExactConfidence(t *testing.T) {
	m := pipeline.NewMatcher(testCatalogue(), domain.IncomeStatement, 0.85)

	// token reorder gives similarity 1.0 on the token-sorted forms but is
	// not an exact normalized name
	got := m.Match(classified("Retail Base Rentals 1,000", "base_rental"), pipeline.NewMemoTable())
	require.True(t, got.Matched)
	assert.Equal(t, domain.MatchFuzzy, got.Strategy)
	assert.Less(t, got.Confidence, 1.0)
}

func TestMatcher_CategoryFallback(t *testing.T) {
	m := pipeline.NewMatcher(testCatalogue(), domain.IncomeStatement, 0.85)

	got := m.Match(classified("Billboard Lease Revenue 500", "base_rental"), pipeline.NewMemoTable())
	require.True(t, got.Matched)
	assert.Equal(t, domain.MatchCategoryFallback, got.Strategy)
	assert.Equal(t, "4000", got.Entry.Code) // the category summary row
	assert.Equal(t, 0.5, got.Confidence)
}

func TestMatcher_NoMatch(t *testing.T) {
	m := pipeline.NewMatcher(testCatalogue(), domain.IncomeStatement, 0.85)

	got := m.Match(classified("Billboard Lease Revenue 500", domain.CategoryUncategorized), pipeline.NewMemoTable())
	assert.False(t, got.Matched)
	assert.Equal(t, domain.MatchNone, got.Strategy)
	assert.Zero(t, got.Confidence)
	assert.NotEmpty(t, got.Reason)
}

func TestMatcher_FiltersByDocumentTypeAndActive(t *testing.T) {
	catalogue := []domain.ChartOfAccountsEntry{
		catalogueEntry("1010", "Operating Cash", "cash", func(e *domain.ChartOfAccountsEntry) {
			e.DocumentTypes = []domain.DocumentType{domain.BalanceSheet}
		}),
		catalogueEntry("9999", "Operating Cash Old", "cash", func(e *domain.ChartOfAccountsEntry) {
			e.IsActive = false
		}),
	}
	m := pipeline.NewMatcher(catalogue, domain.IncomeStatement, 0.85)

	// the only candidates are scoped to balance sheets or inactive
	got := m.Match(classified("Operating Cash 5,000", domain.CategoryUncategorized), pipeline.NewMemoTable())
	assert.False(t, got.Matched)
}

func TestMatcher_TieBreakPrefersExpectedSign(t *testing.T) {
	// both entries token-sort to "refunds tenant", so their similarity to the
	// query ties exactly and the sign break decides
	catalogue := []domain.ChartOfAccountsEntry{
		catalogueEntry("5100", "Refunds Tenant", "other_income", func(e *domain.ChartOfAccountsEntry) {
			e.ExpectedSign = domain.SignPositive
		}),
		catalogueEntry("5101", "Tenant Refunds", "other_income", func(e *domain.ChartOfAccountsEntry) {
			e.ExpectedSign = domain.SignNegative
		}),
	}
	m := pipeline.NewMatcher(catalogue, domain.IncomeStatement, 0.5)

	got := m.Match(classified("Tenant Refund (200)", "other_income"), pipeline.NewMemoTable())
	require.True(t, got.Matched)
	assert.Equal(t, domain.MatchFuzzy, got.Strategy)
	assert.Equal(t, domain.SignNegative, got.Entry.ExpectedSign)
}
