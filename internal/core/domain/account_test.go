package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedSign_Matches(t *testing.T) {
	assert.True(t, SignPositive.Matches(false))
	assert.False(t, SignPositive.Matches(true))
	assert.True(t, SignNegative.Matches(true))
	assert.False(t, SignNegative.Matches(false))
	assert.True(t, SignEither.Matches(true))
	assert.True(t, SignEither.Matches(false))
}

func TestChartOfAccountsEntry_AppliesTo(t *testing.T) {
	unrestricted := ChartOfAccountsEntry{Code: "4000"}
	assert.True(t, unrestricted.AppliesTo(IncomeStatement))
	assert.True(t, unrestricted.AppliesTo(BalanceSheet))

	scoped := ChartOfAccountsEntry{Code: "1010", DocumentTypes: []DocumentType{BalanceSheet, CashFlow}}
	assert.True(t, scoped.AppliesTo(BalanceSheet))
	assert.True(t, scoped.AppliesTo(CashFlow))
	assert.False(t, scoped.AppliesTo(IncomeStatement))
}

func TestTaxonomy(t *testing.T) {
	assert.True(t, IsKnownCategory("base_rental"))
	assert.True(t, IsKnownCategory("total_assets"))
	assert.False(t, IsKnownCategory("snack_income"))

	assert.True(t, IsValidSubcategory("base_rental", "retail"))
	assert.True(t, IsValidSubcategory("base_rental", ""))
	assert.False(t, IsValidSubcategory("base_rental", "legal"))

	assert.True(t, IsTotalCategory("total_income"))
	assert.True(t, IsTotalCategory("net_operating_income"))
	assert.False(t, IsTotalCategory("base_rental"))
}
