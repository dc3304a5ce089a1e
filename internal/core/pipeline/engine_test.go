package pipeline_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/finparse/statement-pipeline/internal/apperrors"
	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/core/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) *pipeline.Engine {
	t.Helper()
	catalogue := []domain.ChartOfAccountsEntry{
		catalogueEntry("4000", "Rental Income", "base_rental", func(e *domain.ChartOfAccountsEntry) { e.IsSummary = true }),
		catalogueEntry("4005", "Base Rentals", "base_rental"),
		catalogueEntry("4010", "Base Rentals - Retail", "base_rental"),
		catalogueEntry("4020", "Base Rentals - Office", "base_rental"),
		catalogueEntry("4300", "Parking Income", "parking_income"),
		catalogueEntry("6110", "Repairs and Maintenance", "repairs_maintenance"),
		catalogueEntry("6200", "Utilities", "utilities"),
	}
	e, err := pipeline.NewEngine(pipeline.DefaultRuleSpecs(), catalogue, pipeline.DefaultOptions(), slog.Default())
	require.NoError(t, err)
	return e
}

func incomeStatementLines() []domain.RawLine {
	texts := []string{
		"Lakeside Plaza LLC",
		"Income Statement",
		"For the Twelve Months Ended December 31, 2024",
		"INCOME",
		"Base Rentals 30,000",
		"Base Rentals - Retail 12,000",
		"Base Rentals - Office 18,000",
		"Parking Income 1,500",
		"Total Income 31,500",
		"OPERATING EXPENSES",
		"Repairs and Maintenance 1,200",
		"Utilities 4,500",
		"Total Operating Expenses 5,700",
		"Net Operating Income 25,800",
	}
	lines := make([]domain.RawLine, len(texts))
	for i, text := range texts {
		lines[i] = domain.RawLine{Text: text, PageNumber: 1, Position: i}
	}
	return lines
}

func findItem(t *testing.T, items []domain.LineItem, name string) *domain.LineItem {
	t.Helper()
	for i := range items {
		if items[i].AccountName == name {
			return &items[i]
		}
	}
	t.Fatalf("no line item named %q", name)
	return nil
}

func TestEngine_Process_IncomeStatement(t *testing.T) {
	e := testEngine(t)
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	extraction, err := e.Process("doc-1", domain.IncomeStatement, incomeStatementLines(), now)
	require.NoError(t, err)

	assert.Equal(t, "Lakeside Plaza LLC", extraction.Header.EntityName)
	require.NotNil(t, extraction.Header.PeriodEnd)

	// the entity, title, and period lines belong to the header; only the
	// nine statement rows become items
	require.Len(t, extraction.Items, 9)
	for _, item := range extraction.Items {
		assert.NotEqual(t, "INCOME", item.AccountName)
		assert.NotEqual(t, "OPERATING EXPENSES", item.AccountName)
		assert.NotEqual(t, "2024", item.Amount.String())
	}

	retail := findItem(t, extraction.Items, "Base Rentals - Retail")
	require.NotNil(t, retail.AccountCode)
	assert.Equal(t, "4010", *retail.AccountCode)
	assert.Equal(t, domain.MatchExactName, retail.MatchStrategy)
	assert.Equal(t, "base_rental", retail.Category)
	assert.Equal(t, "retail", retail.Subcategory)
	assert.Equal(t, "12000", retail.Amount.String())
	assert.False(t, retail.NeedsReview)

	// the leading group total owns the following details
	group := findItem(t, extraction.Items, "Base Rentals")
	assert.True(t, group.IsTotal)
	require.NotNil(t, retail.ParentIndex)
	office := findItem(t, extraction.Items, "Base Rentals - Office")
	require.NotNil(t, office.ParentIndex)
	assert.Equal(t, *retail.ParentIndex, *office.ParentIndex)

	// named aggregates feed the validation rule engine
	assert.Equal(t, "31500", extraction.Header.TotalsSummary["total_income"].String())
	assert.Equal(t, "5700", extraction.Header.TotalsSummary["total_expense"].String())
	assert.Equal(t, "25800", extraction.Header.TotalsSummary["net_operating_income"].String())

	// detail income lines get their share of the section total
	require.NotNil(t, retail.PeriodPercentage)
	assert.Equal(t, "38.1", retail.PeriodPercentage.String())
}

func TestEngine_Process_EmptyDocument(t *testing.T) {
	e := testEngine(t)

	lines := []domain.RawLine{
		{Text: "   ", PageNumber: 1, Position: 0},
		{Text: "", PageNumber: 1, Position: 1},
	}
	_, err := e.Process("doc-2", domain.IncomeStatement, lines, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEmptyInput))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 422, appErr.Code)
}

func TestEngine_Process_InvalidDocumentType(t *testing.T) {
	e := testEngine(t)

	_, err := e.Process("doc-3", domain.DocumentType("LEDGER"), incomeStatementLines(), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestEngine_Process_UnmatchedLineNeedsReview(t *testing.T) {
	e := testEngine(t)

	lines := []domain.RawLine{
		{Text: "INCOME", PageNumber: 1, Position: 0},
		{Text: "Billboard Wrap Revenue 500", PageNumber: 1, Position: 1},
	}
	extraction, err := e.Process("doc-4", domain.IncomeStatement, lines, time.Now())
	require.NoError(t, err)
	require.Len(t, extraction.Items, 1)

	item := extraction.Items[0]
	assert.True(t, item.NeedsReview)
}

func TestEngine_Process_DuplicateLinesCollapse(t *testing.T) {
	e := testEngine(t)

	lines := []domain.RawLine{
		{Text: "INCOME", PageNumber: 1, Position: 0},
		{Text: "Base Rentals - Retail 12,000", PageNumber: 1, Position: 1},
		{Text: "Base Rentals - Retail 3,000", PageNumber: 1, Position: 2},
	}
	extraction, err := e.Process("doc-5", domain.IncomeStatement, lines, time.Now())
	require.NoError(t, err)
	require.Len(t, extraction.Items, 1)

	// keep_first default keeps the first amount and flags the survivor
	assert.Equal(t, "12000", extraction.Items[0].Amount.String())
	assert.True(t, extraction.Items[0].NeedsReview)
}

func TestEngine_Process_TitleDoesNotShadowAccount(t *testing.T) {
	e := testEngine(t)

	// the report title resembles the catalogue's "Rental Income" entry; it
	// must not become an item and swallow the real line's amount at dedup
	lines := []domain.RawLine{
		{Text: "Rental Income Statement", PageNumber: 1, Position: 0},
		{Text: "INCOME", PageNumber: 1, Position: 1},
		{Text: "Rental Incomes 30,000", PageNumber: 1, Position: 2},
	}
	extraction, err := e.Process("doc-8", domain.IncomeStatement, lines, time.Now())
	require.NoError(t, err)
	require.Len(t, extraction.Items, 1)

	item := extraction.Items[0]
	require.NotNil(t, item.AccountCode)
	assert.Equal(t, "4000", *item.AccountCode)
	assert.Equal(t, "30000", item.Amount.String())
}

func TestEngine_Process_NoHeadings(t *testing.T) {
	e := testEngine(t)

	lines := []domain.RawLine{
		{Text: "Cash in Bank 5,000", PageNumber: 1, Position: 0},
		{Text: "9999-ZZZZ Unknown Misc Fee 500", PageNumber: 1, Position: 1},
	}
	extraction, err := e.Process("doc-9", domain.BalanceSheet, lines, time.Now())
	require.NoError(t, err)
	require.Len(t, extraction.Items, 2)

	// recognizable lines still classify, at depressed confidence, and the
	// unresolved ones stay uncategorized; everything is flagged for review
	cash := findItem(t, extraction.Items, "Cash in Bank")
	assert.Equal(t, domain.SectionUnclassified, cash.Section)
	assert.Equal(t, "cash", cash.Category)
	assert.True(t, cash.NeedsReview)

	unknown := findItem(t, extraction.Items, "9999-ZZZZ Unknown Misc Fee")
	assert.Equal(t, domain.SectionUnclassified, unknown.Section)
	assert.Equal(t, domain.CategoryUncategorized, unknown.Category)
	assert.Nil(t, unknown.AccountCode)
	assert.Equal(t, "500", unknown.Amount.String())
	assert.True(t, unknown.NeedsReview)
}

func TestEngine_Process_AdjustmentsAndReconciliation(t *testing.T) {
	e := testEngine(t)

	lines := []domain.RawLine{
		{Text: "Cash Flows from Operating Activities", PageNumber: 1, Position: 0},
		{Text: "Rent Collections 9,000", PageNumber: 1, Position: 1},
		{Text: "ADJUSTMENTS", PageNumber: 1, Position: 2},
		{Text: "Prior Period Correction (250)", PageNumber: 1, Position: 3},
		{Text: "Cash Reconciliation", PageNumber: 1, Position: 4},
		{Text: "Outstanding Checks (1,100)", PageNumber: 1, Position: 5},
	}
	extraction, err := e.Process("doc-6", domain.CashFlow, lines, time.Now())
	require.NoError(t, err)

	require.Len(t, extraction.Adjustments, 1)
	assert.Equal(t, "Prior Period Correction", extraction.Adjustments[0].Description)
	assert.Equal(t, "-250", extraction.Adjustments[0].Amount.String())

	require.Len(t, extraction.Reconciliations, 1)
	assert.Equal(t, "Outstanding Checks", extraction.Reconciliations[0].Description)
	assert.Equal(t, "-1100", extraction.Reconciliations[0].Amount.String())

	// adjustment and reconciliation rows never appear as line items
	for _, item := range extraction.Items {
		assert.NotEqual(t, domain.SectionAdjustments, item.Section)
		assert.NotEqual(t, domain.SectionReconciliation, item.Section)
	}
}

func TestEngine_Process_ColumnarLines(t *testing.T) {
	e := testEngine(t)

	lines := []domain.RawLine{
		{Text: "INCOME", PageNumber: 1, Position: 0},
		{
			Text:         "Base Rentals - Retail 12,000 144,000",
			ColumnValues: []string{"Base Rentals - Retail", "12,000", "144,000"},
			PageNumber:   1,
			Position:     1,
		},
	}
	extraction, err := e.Process("doc-7", domain.IncomeStatement, lines, time.Now())
	require.NoError(t, err)
	require.Len(t, extraction.Items, 1)

	item := extraction.Items[0]
	assert.Equal(t, "12000", item.Amount.String())
	require.NotNil(t, item.PeriodAmount)
	assert.Equal(t, "144000", item.PeriodAmount.String())
}
