package domain

// Section is a logical region of a statement detected from its headings.
type Section string

const (
	SectionIncome         Section = "income"
	SectionExpense        Section = "operating_expense"
	SectionAdjustments    Section = "adjustments"
	SectionReconciliation Section = "reconciliation"
	SectionAssets         Section = "assets"
	SectionLiabilities    Section = "liabilities"
	SectionEquity         Section = "equity"
	SectionOperating      Section = "operating_activities"
	SectionInvesting      Section = "investing_activities"
	SectionFinancing      Section = "financing_activities"
	SectionRentRoll       Section = "rent_roll"
	SectionUnclassified   Section = "unclassified"
)

// CategoryUncategorized is the sentinel for lines no classification rule matched.
// It is a member of the closed taxonomy so taxonomy closure holds for every
// persisted item.
const CategoryUncategorized = "uncategorized"

// taxonomy maps each category of the closed taxonomy to its allowed
// subcategories. An empty slice means the category carries no subcategory.
var taxonomy = map[string][]string{
	// Income
	"base_rental":      {"retail", "office", "residential", "industrial", "storage"},
	"percentage_rent":  {},
	"expense_recovery": {"cam", "tax", "insurance", "utilities"},
	"parking_income":   {},
	"other_income":     {"late_fees", "application_fees", "vending", "interest", "miscellaneous"},
	"vacancy_loss":     {},
	"concessions":      {"free_rent", "tenant_allowance"},
	"total_income":     {},
	"effective_income": {},

	// Operating expense
	"payroll":              {"salaries", "benefits", "payroll_taxes"},
	"repairs_maintenance":  {"hvac", "plumbing", "electrical", "elevator", "general"},
	"utilities":            {"electric", "gas", "water_sewer", "trash"},
	"property_management":  {"management_fees", "admin"},
	"insurance":            {"property", "liability"},
	"property_taxes":       {},
	"marketing":            {},
	"landscaping":          {},
	"security":             {},
	"professional_fees":    {"legal", "accounting"},
	"general_admin":        {"office_supplies", "telephone", "bank_charges"},
	"total_expense":        {},
	"net_operating_income": {},

	// Below-the-line / adjustments
	"debt_service":        {"interest", "principal"},
	"capital_expenditure": {"tenant_improvements", "leasing_commissions", "building"},
	"depreciation":        {},
	"amortization":        {},
	"adjustment":          {"accrual", "timing", "reclass", "prior_period"},
	"net_income":          {},

	// Balance sheet - assets
	"cash":                     {"operating", "reserve", "escrow", "security_deposits_held"},
	"accounts_receivable":      {"tenant", "other"},
	"prepaid_expense":          {},
	"land":                     {},
	"building":                 {},
	"accumulated_depreciation": {},
	"other_asset":              {"deposits", "deferred_charges"},
	"total_current_assets":     {},
	"total_fixed_assets":       {},
	"total_assets":             {},

	// Balance sheet - liabilities
	"accounts_payable":          {"trade", "accrued"},
	"security_deposits":         {},
	"prepaid_rent":              {},
	"mortgage_payable":          {"current", "long_term"},
	"notes_payable":             {},
	"accrued_liability":         {"taxes", "interest", "wages"},
	"other_liability":           {},
	"total_current_liabilities": {},
	"total_liabilities":         {},

	// Balance sheet - equity
	"owner_contribution": {},
	"owner_distribution": {},
	"retained_earnings":  {},
	"current_earnings":   {},
	"total_equity":       {},

	// Cash flow
	"operating_cash":      {"receipts", "disbursements"},
	"investing_cash":      {},
	"financing_cash":      {"loan_proceeds", "loan_payments", "contributions", "distributions"},
	"net_cash_change":     {},
	"beginning_cash":      {},
	"ending_cash":         {},
	"reconciliation_item": {"deposits_in_transit", "outstanding_checks", "bank_adjustment"},

	// Rent roll
	"unit_rent":            {"occupied", "vacant"},
	"lease_charge":         {"base", "cam", "other"},
	"total_scheduled_rent": {},

	CategoryUncategorized: {},
}

// totalCategories are taxonomy members whose lines summarize other lines.
var totalCategories = map[string]bool{
	"total_income":              true,
	"effective_income":          true,
	"total_expense":             true,
	"net_operating_income":      true,
	"net_income":                true,
	"total_current_assets":      true,
	"total_fixed_assets":        true,
	"total_assets":              true,
	"total_current_liabilities": true,
	"total_liabilities":         true,
	"total_equity":              true,
	"net_cash_change":           true,
	"ending_cash":               true,
	"total_scheduled_rent":      true,
}

// IsKnownCategory reports whether category belongs to the closed taxonomy.
func IsKnownCategory(category string) bool {
	_, ok := taxonomy[category]
	return ok
}

// IsValidSubcategory reports whether subcategory is allowed under category.
// The empty subcategory is always allowed.
func IsValidSubcategory(category, subcategory string) bool {
	subs, ok := taxonomy[category]
	if !ok {
		return false
	}
	if subcategory == "" {
		return true
	}
	for _, s := range subs {
		if s == subcategory {
			return true
		}
	}
	return false
}

// IsTotalCategory reports whether lines in this category summarize other lines.
func IsTotalCategory(category string) bool {
	return totalCategories[category]
}

// Categories returns the closed category set, including the uncategorized sentinel.
func Categories() []string {
	out := make([]string, 0, len(taxonomy))
	for c := range taxonomy {
		out = append(out, c)
	}
	return out
}

// ClassifiedLine is a RawLine tagged with its section and taxonomy assignment.
type ClassifiedLine struct {
	RawLine
	Section     Section `json:"section"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	IsTotal     bool    `json:"isTotal"`
	Confidence  float64 `json:"confidence"` // in [0,1]; 0.0 means unclassified
}
