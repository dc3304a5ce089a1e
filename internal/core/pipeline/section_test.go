package pipeline_test

import (
	"testing"

	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/core/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sections(lines []pipeline.SectionedLine) []domain.Section {
	out := make([]domain.Section, len(lines))
	for i, l := range lines {
		out[i] = l.Section
	}
	return out
}

func TestSectionDetector_IncomeStatement(t *testing.T) {
	lines := []domain.RawLine{
		rawLine(1, 0, "INCOME"),
		rawLine(1, 1, "Base Rent 30,000"),
		rawLine(1, 2, "Total Income 30,000"),
		rawLine(1, 3, "OPERATING EXPENSES"),
		rawLine(1, 4, "Utilities 4,500"),
		rawLine(1, 5, "Total Operating Expenses 4,500"),
		rawLine(1, 6, "ADJUSTMENTS"),
		rawLine(1, 7, "Prior period correction (250)"),
	}

	got := pipeline.NewSectionDetector(domain.IncomeStatement).Assign(lines)
	require.Len(t, got, len(lines))

	assert.Equal(t, []domain.Section{
		domain.SectionIncome,
		domain.SectionIncome,
		domain.SectionIncome,
		domain.SectionExpense,
		domain.SectionExpense,
		domain.SectionExpense,
		domain.SectionAdjustments,
		domain.SectionAdjustments,
	}, sections(got))

	assert.True(t, got[0].IsHeading)
	assert.False(t, got[1].IsHeading)
	assert.True(t, got[3].IsHeading)
}

func TestSectionDetector_TotalsDoNotReopenSections(t *testing.T) {
	lines := []domain.RawLine{
		rawLine(1, 0, "INCOME"),
		rawLine(1, 1, "Base Rent 30,000"),
		rawLine(1, 2, "EXPENSES"),
		// "Total Income" must stay inside expenses, not re-open income
		rawLine(1, 3, "Total Income 30,000"),
	}

	got := pipeline.NewSectionDetector(domain.IncomeStatement).Assign(lines)
	assert.Equal(t, domain.SectionExpense, got[3].Section)
	assert.False(t, got[3].IsHeading)
}

func TestSectionDetector_LinesBeforeAnyHeading(t *testing.T) {
	lines := []domain.RawLine{
		rawLine(1, 0, "Lakeside Plaza LLC"),
		rawLine(1, 1, "INCOME"),
	}

	got := pipeline.NewSectionDetector(domain.IncomeStatement).Assign(lines)
	assert.Equal(t, domain.SectionUnclassified, got[0].Section)
	assert.Equal(t, domain.SectionIncome, got[1].Section)
}

func TestSectionDetector_BalanceSheetSubsections(t *testing.T) {
	lines := []domain.RawLine{
		rawLine(1, 0, "ASSETS"),
		rawLine(1, 1, "Current Assets"),
		rawLine(1, 2, "Cash 5,000"),
		rawLine(1, 3, "LIABILITIES"),
		rawLine(1, 4, "Accounts Payable 2,000"),
		rawLine(1, 5, "Owners' Equity"),
		rawLine(1, 6, "Retained Earnings 3,000"),
	}

	got := pipeline.NewSectionDetector(domain.BalanceSheet).Assign(lines)
	assert.Equal(t, []domain.Section{
		domain.SectionAssets,
		domain.SectionAssets,
		domain.SectionAssets,
		domain.SectionLiabilities,
		domain.SectionLiabilities,
		domain.SectionEquity,
		domain.SectionEquity,
	}, sections(got))
}

func TestSectionDetector_CashFlowActivities(t *testing.T) {
	lines := []domain.RawLine{
		rawLine(1, 0, "Cash Flows from Operating Activities"),
		rawLine(1, 1, "Net Income 10,000"),
		rawLine(1, 2, "Adjustments to Reconcile Net Income"),
		rawLine(1, 3, "Depreciation 1,500"),
		rawLine(1, 4, "Investing Activities"),
		rawLine(1, 5, "Equipment Purchases (7,000)"),
		rawLine(1, 6, "Financing Activities"),
		rawLine(1, 7, "Loan Proceeds 20,000"),
	}

	got := pipeline.NewSectionDetector(domain.CashFlow).Assign(lines)
	assert.Equal(t, []domain.Section{
		domain.SectionOperating,
		domain.SectionOperating,
		domain.SectionAdjustments,
		domain.SectionAdjustments,
		domain.SectionInvesting,
		domain.SectionInvesting,
		domain.SectionFinancing,
		domain.SectionFinancing,
	}, sections(got))
}

func TestSectionDetector_RentRoll(t *testing.T) {
	lines := []domain.RawLine{
		rawLine(1, 0, "Rent Roll"),
		rawLine(1, 1, "Unit 101 950"),
		rawLine(1, 2, "Other Income"),
		rawLine(1, 3, "Parking 150"),
	}

	got := pipeline.NewSectionDetector(domain.RentRoll).Assign(lines)
	assert.Equal(t, []domain.Section{
		domain.SectionRentRoll,
		domain.SectionRentRoll,
		domain.SectionIncome,
		domain.SectionIncome,
	}, sections(got))
}

func TestSectionDetector_HeadingWithTrailingColon(t *testing.T) {
	lines := []domain.RawLine{
		rawLine(1, 0, "Income:"),
		rawLine(1, 1, "Base Rent 30,000"),
	}

	got := pipeline.NewSectionDetector(domain.IncomeStatement).Assign(lines)
	assert.Equal(t, domain.SectionIncome, got[0].Section)
	assert.True(t, got[0].IsHeading)
}
