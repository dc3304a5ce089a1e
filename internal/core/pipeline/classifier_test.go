package pipeline_test

import (
	"testing"

	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/core/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectioned(section domain.Section, text string) pipeline.SectionedLine {
	return pipeline.SectionedLine{RawLine: domain.RawLine{Text: text}, Section: section}
}

func TestNewClassifier_RejectsBadSpecs(t *testing.T) {
	_, err := pipeline.NewClassifier([]pipeline.RuleSpec{{Pattern: "x", Category: "not_real"}})
	assert.Error(t, err)

	_, err = pipeline.NewClassifier([]pipeline.RuleSpec{{Pattern: "x", Category: "payroll", Subcategory: "retail"}})
	assert.Error(t, err)

	_, err = pipeline.NewClassifier([]pipeline.RuleSpec{{Pattern: "([", Category: "payroll"}})
	assert.Error(t, err)
}

func TestClassifier_FirstMatchWins(t *testing.T) {
	c, err := pipeline.NewClassifier([]pipeline.RuleSpec{
		{Sections: []domain.Section{domain.SectionIncome}, Pattern: `^total\s+income$`, Category: "total_income", IsTotal: true, Confidence: 0.98},
		{Sections: []domain.Section{domain.SectionIncome}, Pattern: `income`, Category: "other_income", Confidence: 0.7},
	})
	require.NoError(t, err)

	got := c.Classify(sectioned(domain.SectionIncome, "Total Income 30,000"))
	assert.Equal(t, "total_income", got.Category)
	assert.True(t, got.IsTotal)
	assert.InDelta(t, 0.98, got.Confidence, 1e-9)
}

func TestClassifier_SectionScoping(t *testing.T) {
	c, err := pipeline.NewClassifier([]pipeline.RuleSpec{
		{Sections: []domain.Section{domain.SectionExpense}, Pattern: `insurance`, Category: "insurance", Confidence: 0.9},
	})
	require.NoError(t, err)

	// same label outside the scoped section stays uncategorized
	got := c.Classify(sectioned(domain.SectionIncome, "Insurance Proceeds 1,000"))
	assert.Equal(t, domain.CategoryUncategorized, got.Category)
	assert.Zero(t, got.Confidence)

	got = c.Classify(sectioned(domain.SectionExpense, "Insurance 1,000"))
	assert.Equal(t, "insurance", got.Category)
}

func TestClassifier_UnclassifiedSectionPenalty(t *testing.T) {
	c, err := pipeline.NewClassifier([]pipeline.RuleSpec{
		{Pattern: `utilities`, Category: "utilities", Confidence: 0.8},
	})
	require.NoError(t, err)

	got := c.Classify(sectioned(domain.SectionUnclassified, "Utilities 4,500"))
	assert.Equal(t, "utilities", got.Category)
	assert.InDelta(t, 0.6, got.Confidence, 1e-9)
}

func TestClassifier_NoMatchIsUncategorized(t *testing.T) {
	c, err := pipeline.NewClassifier([]pipeline.RuleSpec{
		{Pattern: `utilities`, Category: "utilities"},
	})
	require.NoError(t, err)

	got := c.Classify(sectioned(domain.SectionExpense, "Mystery Line 12"))
	assert.Equal(t, domain.CategoryUncategorized, got.Category)
	assert.Empty(t, got.Subcategory)
	assert.False(t, got.IsTotal)
	assert.Zero(t, got.Confidence)
}

func TestDefaultRuleSpecs_CompileAndCover(t *testing.T) {
	c, err := pipeline.NewClassifier(pipeline.DefaultRuleSpecs())
	require.NoError(t, err)

	tests := []struct {
		section  domain.Section
		text     string
		category string
		isTotal  bool
	}{
		{domain.SectionIncome, "Total Income 30,000", "total_income", true},
		{domain.SectionIncome, "Base Rentals - Retail 12,000", "base_rental", false},
		{domain.SectionExpense, "Repairs & Maintenance 1,200", "repairs_maintenance", false},
		{domain.SectionExpense, "Total Operating Expenses 4,500", "total_expense", true},
		{domain.SectionExpense, "Net Operating Income 25,500", "net_operating_income", true},
		{domain.SectionAssets, "Total Assets 100,000", "total_assets", true},
		{domain.SectionLiabilities, "Accounts Payable 2,000", "accounts_payable", false},
		{domain.SectionOperating, "Net Increase in Cash 9,000", "net_cash_change", true},
	}
	for _, tc := range tests {
		got := c.Classify(sectioned(tc.section, tc.text))
		assert.Equal(t, tc.category, got.Category, "text %q", tc.text)
		assert.Equal(t, tc.isTotal, got.IsTotal, "text %q", tc.text)
	}
}

func TestDefaultRuleSpecs_UnclassifiedSection(t *testing.T) {
	c, err := pipeline.NewClassifier(pipeline.DefaultRuleSpecs())
	require.NoError(t, err)

	// A line no rule recognizes must stay uncategorized even without a
	// section; the adjustment and reconciliation wildcards are scoped to
	// their own sections and must not swallow it.
	got := c.Classify(sectioned(domain.SectionUnclassified, "9999-ZZZZ Unknown Misc Fee 500"))
	assert.Equal(t, domain.CategoryUncategorized, got.Category)
	assert.Zero(t, got.Confidence)

	// Specific scoped rules still fire in a heading-less document, with
	// depressed confidence.
	got = c.Classify(sectioned(domain.SectionUnclassified, "Cash in Bank 5,000"))
	assert.Equal(t, "cash", got.Category)
	assert.InDelta(t, 0.9*0.75, got.Confidence, 1e-9)

	got = c.Classify(sectioned(domain.SectionUnclassified, "Deposits in Transit 700"))
	assert.Equal(t, "reconciliation_item", got.Category)
}
