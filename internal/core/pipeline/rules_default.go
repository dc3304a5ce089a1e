package pipeline

import "github.com/finparse/statement-pipeline/internal/core/domain"

// DefaultRuleSpecs is the built-in ordered classification cascade. Patterns
// are evaluated against the normalized (lowercased, punctuation-stripped)
// line label; first match wins, so specific rules precede general ones.
// A YAML rule catalogue, when configured, replaces this set wholesale.
func DefaultRuleSpecs() []RuleSpec {
	income := []domain.Section{domain.SectionIncome, domain.SectionRentRoll, domain.SectionUnclassified}
	expense := []domain.Section{domain.SectionExpense, domain.SectionUnclassified}
	assets := []domain.Section{domain.SectionAssets, domain.SectionUnclassified}
	liabilities := []domain.Section{domain.SectionLiabilities, domain.SectionUnclassified}
	equity := []domain.Section{domain.SectionEquity, domain.SectionUnclassified}
	cashflow := []domain.Section{domain.SectionOperating, domain.SectionInvesting, domain.SectionFinancing, domain.SectionUnclassified}
	recon := []domain.Section{domain.SectionReconciliation, domain.SectionUnclassified}
	adjust := []domain.Section{domain.SectionAdjustments, domain.SectionUnclassified}
	rentroll := []domain.Section{domain.SectionRentRoll, domain.SectionUnclassified}

	return []RuleSpec{
		// ---- Grand totals first: they are unambiguous and must not fall
		// through to detail patterns.
		{Sections: income, Pattern: `^total\s+(?:rental\s+)?income$|^total\s+revenues?$`, Category: "total_income", Confidence: 0.98},
		{Sections: income, Pattern: `^effective\s+(?:gross\s+)?income$|^gross\s+operating\s+income$`, Category: "effective_income", Confidence: 0.95},
		{Sections: expense, Pattern: `^total\s+(?:operating\s+)?expenses?$`, Category: "total_expense", Confidence: 0.98},
		{Pattern: `^net\s+operating\s+income$|^noi$`, Category: "net_operating_income", Confidence: 0.98},
		{Pattern: `^net\s+income(?:\s+loss)?$|^net\s+profit$`, Category: "net_income", Confidence: 0.98},
		{Sections: assets, Pattern: `^total\s+current\s+assets$`, Category: "total_current_assets", Confidence: 0.98},
		{Sections: assets, Pattern: `^total\s+(?:fixed\s+assets|property\s+and\s+equipment)$`, Category: "total_fixed_assets", Confidence: 0.98},
		{Sections: assets, Pattern: `^total\s+assets$`, Category: "total_assets", Confidence: 0.98},
		{Sections: liabilities, Pattern: `^total\s+current\s+liabilities$`, Category: "total_current_liabilities", Confidence: 0.98},
		{Sections: liabilities, Pattern: `^total\s+liabilities$`, Category: "total_liabilities", Confidence: 0.98},
		{Sections: equity, Pattern: `^total\s+(?:owners?\s+|stockholders?\s+|members?\s+)?equity$|^total\s+capital$`, Category: "total_equity", Confidence: 0.98},
		{Sections: cashflow, Pattern: `^net\s+(?:increase|decrease|change)\s+in\s+cash$`, Category: "net_cash_change", Confidence: 0.98},
		{Sections: cashflow, Pattern: `^(?:cash|cash\s+and\s+equivalents?)\s+(?:at\s+)?beginning(?:\s+of\s+(?:period|year))?$|^beginning\s+cash(?:\s+balance)?$`, Category: "beginning_cash", Confidence: 0.95},
		{Sections: cashflow, Pattern: `^(?:cash|cash\s+and\s+equivalents?)\s+(?:at\s+)?end(?:ing)?(?:\s+of\s+(?:period|year))?$|^ending\s+cash(?:\s+balance)?$`, Category: "ending_cash", Confidence: 0.95},
		{Sections: rentroll, Pattern: `^total\s+(?:scheduled|potential)\s+rent$`, Category: "total_scheduled_rent", Confidence: 0.98},

		// ---- Income details.
		{Sections: income, Pattern: `^base\s+rent(?:al)?s?\s+retail`, Category: "base_rental", Subcategory: "retail", Confidence: 0.95},
		{Sections: income, Pattern: `^base\s+rent(?:al)?s?\s+office`, Category: "base_rental", Subcategory: "office", Confidence: 0.95},
		{Sections: income, Pattern: `^base\s+rent(?:al)?s?\s+residential|^apartment\s+rent`, Category: "base_rental", Subcategory: "residential", Confidence: 0.95},
		{Sections: income, Pattern: `^base\s+rent(?:al)?s?\s+industrial|^warehouse\s+rent`, Category: "base_rental", Subcategory: "industrial", Confidence: 0.95},
		{Sections: income, Pattern: `storage\s+(?:rent|income)`, Category: "base_rental", Subcategory: "storage", Confidence: 0.9},
		{Sections: income, Pattern: `^base\s+rent(?:al)?s?$`, Category: "base_rental", IsTotal: true, Confidence: 0.9},
		{Sections: income, Pattern: `^(?:gross|scheduled|minimum)\s+rents?$|^rental?\s+income$`, Category: "base_rental", Confidence: 0.85},
		{Sections: income, Pattern: `percentage\s+rent|overage\s+rent`, Category: "percentage_rent", Confidence: 0.95},
		{Sections: income, Pattern: `cam\s+(?:recover(?:y|ies)|reimbursements?|income)|common\s+area`, Category: "expense_recovery", Subcategory: "cam", Confidence: 0.95},
		{Sections: income, Pattern: `(?:real\s+estate\s+)?tax\s+(?:recover(?:y|ies)|reimbursements?)`, Category: "expense_recovery", Subcategory: "tax", Confidence: 0.9},
		{Sections: income, Pattern: `insurance\s+(?:recover(?:y|ies)|reimbursements?)`, Category: "expense_recovery", Subcategory: "insurance", Confidence: 0.9},
		{Sections: income, Pattern: `utilit(?:y|ies)\s+(?:recover(?:y|ies)|reimbursements?|billbacks?)`, Category: "expense_recovery", Subcategory: "utilities", Confidence: 0.9},
		{Sections: income, Pattern: `^(?:expense\s+)?recover(?:y|ies)$|^(?:tenant\s+)?reimbursements?$`, Category: "expense_recovery", Confidence: 0.85},
		{Sections: income, Pattern: `parking`, Category: "parking_income", Confidence: 0.9},
		{Sections: income, Pattern: `late\s+(?:fees?|charges?)`, Category: "other_income", Subcategory: "late_fees", Confidence: 0.95},
		{Sections: income, Pattern: `application\s+fees?`, Category: "other_income", Subcategory: "application_fees", Confidence: 0.95},
		{Sections: income, Pattern: `vending|laundry`, Category: "other_income", Subcategory: "vending", Confidence: 0.9},
		{Sections: income, Pattern: `interest\s+(?:income|earned)`, Category: "other_income", Subcategory: "interest", Confidence: 0.9},
		{Sections: income, Pattern: `vacancy|credit\s+loss`, Category: "vacancy_loss", Confidence: 0.9},
		{Sections: income, Pattern: `free\s+rent|rent\s+abatement`, Category: "concessions", Subcategory: "free_rent", Confidence: 0.9},
		{Sections: income, Pattern: `concessions?`, Category: "concessions", Confidence: 0.85},
		{Sections: income, Pattern: `(?:other|misc(?:ellaneous)?)\s+income`, Category: "other_income", Subcategory: "miscellaneous", Confidence: 0.85},

		// ---- Operating expense details.
		{Sections: expense, Pattern: `salar(?:y|ies)|wages`, Category: "payroll", Subcategory: "salaries", Confidence: 0.95},
		{Sections: expense, Pattern: `payroll\s+tax`, Category: "payroll", Subcategory: "payroll_taxes", Confidence: 0.95},
		{Sections: expense, Pattern: `(?:employee\s+)?benefits|health\s+insurance`, Category: "payroll", Subcategory: "benefits", Confidence: 0.9},
		{Sections: expense, Pattern: `^payroll$`, Category: "payroll", Confidence: 0.85},
		{Sections: expense, Pattern: `hvac|heating|air\s+conditioning`, Category: "repairs_maintenance", Subcategory: "hvac", Confidence: 0.95},
		{Sections: expense, Pattern: `plumbing`, Category: "repairs_maintenance", Subcategory: "plumbing", Confidence: 0.95},
		{Sections: expense, Pattern: `electrical\s+(?:repairs?|maintenance)`, Category: "repairs_maintenance", Subcategory: "electrical", Confidence: 0.95},
		{Sections: expense, Pattern: `elevator`, Category: "repairs_maintenance", Subcategory: "elevator", Confidence: 0.95},
		{Sections: expense, Pattern: `repairs?(?:\s+(?:and|&)\s+maintenance)?|maintenance`, Category: "repairs_maintenance", Subcategory: "general", Confidence: 0.85},
		{Sections: expense, Pattern: `electric(?:ity)?$`, Category: "utilities", Subcategory: "electric", Confidence: 0.9},
		{Sections: expense, Pattern: `^(?:natural\s+)?gas$`, Category: "utilities", Subcategory: "gas", Confidence: 0.9},
		{Sections: expense, Pattern: `water(?:\s*(?:and|&|/)?\s*sewer)?$|^sewer$`, Category: "utilities", Subcategory: "water_sewer", Confidence: 0.9},
		{Sections: expense, Pattern: `trash|rubbish|waste\s+removal`, Category: "utilities", Subcategory: "trash", Confidence: 0.9},
		{Sections: expense, Pattern: `^utilit(?:y|ies)$`, Category: "utilities", Confidence: 0.85},
		{Sections: expense, Pattern: `management\s+fees?`, Category: "property_management", Subcategory: "management_fees", Confidence: 0.95},
		{Sections: expense, Pattern: `(?:property\s+)?administrat(?:ion|ive)`, Category: "property_management", Subcategory: "admin", Confidence: 0.85},
		{Sections: expense, Pattern: `(?:property|hazard|fire)\s+insurance`, Category: "insurance", Subcategory: "property", Confidence: 0.95},
		{Sections: expense, Pattern: `liability\s+insurance`, Category: "insurance", Subcategory: "liability", Confidence: 0.95},
		{Sections: expense, Pattern: `^insurance$`, Category: "insurance", Confidence: 0.85},
		{Sections: expense, Pattern: `(?:real\s+estate|property)\s+tax(?:es)?`, Category: "property_taxes", Confidence: 0.95},
		{Sections: expense, Pattern: `marketing|advertising`, Category: "marketing", Confidence: 0.9},
		{Sections: expense, Pattern: `landscap(?:e|ing)|grounds|snow\s+removal`, Category: "landscaping", Confidence: 0.9},
		{Sections: expense, Pattern: `security|alarm`, Category: "security", Confidence: 0.9},
		{Sections: expense, Pattern: `legal\s+(?:fees?|expenses?)?`, Category: "professional_fees", Subcategory: "legal", Confidence: 0.9},
		{Sections: expense, Pattern: `accounting|audit\s+fees?`, Category: "professional_fees", Subcategory: "accounting", Confidence: 0.9},
		{Sections: expense, Pattern: `professional\s+fees?`, Category: "professional_fees", Confidence: 0.85},
		{Sections: expense, Pattern: `office\s+supplies`, Category: "general_admin", Subcategory: "office_supplies", Confidence: 0.9},
		{Sections: expense, Pattern: `telephone|internet`, Category: "general_admin", Subcategory: "telephone", Confidence: 0.9},
		{Sections: expense, Pattern: `bank\s+(?:charges?|fees?)`, Category: "general_admin", Subcategory: "bank_charges", Confidence: 0.9},
		{Sections: expense, Pattern: `general\s+(?:and|&)\s+administrative|^g\s*a$`, Category: "general_admin", Confidence: 0.85},

		// ---- Below the line.
		{Pattern: `(?:mortgage|loan)\s+interest|interest\s+expense`, Category: "debt_service", Subcategory: "interest", Confidence: 0.9},
		{Pattern: `principal\s+(?:payments?|reduction)`, Category: "debt_service", Subcategory: "principal", Confidence: 0.9},
		{Pattern: `debt\s+service`, Category: "debt_service", Confidence: 0.85},
		{Pattern: `tenant\s+improvements?`, Category: "capital_expenditure", Subcategory: "tenant_improvements", Confidence: 0.9},
		{Pattern: `leasing\s+commissions?`, Category: "capital_expenditure", Subcategory: "leasing_commissions", Confidence: 0.9},
		{Pattern: `capital\s+(?:expenditures?|improvements?)`, Category: "capital_expenditure", Confidence: 0.85},
		{Pattern: `^depreciation(?:\s+expense)?$`, Category: "depreciation", Confidence: 0.95},
		{Pattern: `^amortization(?:\s+expense)?$`, Category: "amortization", Confidence: 0.95},

		// ---- Adjustments. The wildcard is scoped to the adjustments section
		// only: inside unclassified it would swallow every line that later,
		// more specific scoped rules should see, and unmatched lines must
		// stay uncategorized.
		{Sections: adjust, Pattern: `accrual`, Category: "adjustment", Subcategory: "accrual", Confidence: 0.85},
		{Sections: adjust, Pattern: `prior\s+(?:period|year)`, Category: "adjustment", Subcategory: "prior_period", Confidence: 0.85},
		{Sections: adjust, Pattern: `reclass`, Category: "adjustment", Subcategory: "reclass", Confidence: 0.85},
		{Sections: []domain.Section{domain.SectionAdjustments}, Pattern: `.`, Category: "adjustment", Confidence: 0.6},

		// ---- Balance sheet: assets.
		{Sections: assets, Pattern: `security\s+deposits?\s+(?:held|account)`, Category: "cash", Subcategory: "security_deposits_held", Confidence: 0.9},
		{Sections: assets, Pattern: `escrow`, Category: "cash", Subcategory: "escrow", Confidence: 0.9},
		{Sections: assets, Pattern: `(?:replacement\s+)?reserves?`, Category: "cash", Subcategory: "reserve", Confidence: 0.85},
		{Sections: assets, Pattern: `^(?:operating\s+)?cash(?:\s+in\s+bank|\s+and\s+equivalents?)?$|checking|^petty\s+cash$`, Category: "cash", Subcategory: "operating", Confidence: 0.9},
		{Sections: assets, Pattern: `(?:tenant|rent)\s+receivables?|accounts?\s+receivable\s+tenants?`, Category: "accounts_receivable", Subcategory: "tenant", Confidence: 0.9},
		{Sections: assets, Pattern: `accounts?\s+receivable|receivables?`, Category: "accounts_receivable", Confidence: 0.85},
		{Sections: assets, Pattern: `prepaid`, Category: "prepaid_expense", Confidence: 0.9},
		{Sections: assets, Pattern: `^land$`, Category: "land", Confidence: 0.95},
		{Sections: assets, Pattern: `building|improvements`, Category: "building", Confidence: 0.85},
		{Sections: assets, Pattern: `accumulated\s+depreciation`, Category: "accumulated_depreciation", Confidence: 0.95},
		{Sections: assets, Pattern: `deferred\s+(?:charges?|costs?)`, Category: "other_asset", Subcategory: "deferred_charges", Confidence: 0.9},
		{Sections: assets, Pattern: `deposits?$`, Category: "other_asset", Subcategory: "deposits", Confidence: 0.8},
		{Sections: assets, Pattern: `other\s+assets?`, Category: "other_asset", Confidence: 0.8},

		// ---- Balance sheet: liabilities.
		{Sections: liabilities, Pattern: `accrued\s+(?:real\s+estate\s+)?tax(?:es)?`, Category: "accrued_liability", Subcategory: "taxes", Confidence: 0.9},
		{Sections: liabilities, Pattern: `accrued\s+interest`, Category: "accrued_liability", Subcategory: "interest", Confidence: 0.9},
		{Sections: liabilities, Pattern: `accrued\s+(?:wages|payroll|salaries)`, Category: "accrued_liability", Subcategory: "wages", Confidence: 0.9},
		{Sections: liabilities, Pattern: `accrued`, Category: "accrued_liability", Confidence: 0.8},
		{Sections: liabilities, Pattern: `accounts?\s+payable\s+trade|trade\s+payables?`, Category: "accounts_payable", Subcategory: "trade", Confidence: 0.9},
		{Sections: liabilities, Pattern: `accounts?\s+payable|payables?`, Category: "accounts_payable", Confidence: 0.85},
		{Sections: liabilities, Pattern: `security\s+deposits?`, Category: "security_deposits", Confidence: 0.95},
		{Sections: liabilities, Pattern: `prepaid\s+rents?|rents?\s+(?:paid|received)\s+in\s+advance`, Category: "prepaid_rent", Confidence: 0.9},
		{Sections: liabilities, Pattern: `mortgage.*current|current\s+portion.*(?:mortgage|debt)`, Category: "mortgage_payable", Subcategory: "current", Confidence: 0.9},
		{Sections: liabilities, Pattern: `mortgage`, Category: "mortgage_payable", Subcategory: "long_term", Confidence: 0.85},
		{Sections: liabilities, Pattern: `notes?\s+payable|loans?\s+payable`, Category: "notes_payable", Confidence: 0.9},
		{Sections: liabilities, Pattern: `other\s+liabilit(?:y|ies)`, Category: "other_liability", Confidence: 0.8},

		// ---- Balance sheet: equity.
		{Sections: equity, Pattern: `contributions?`, Category: "owner_contribution", Confidence: 0.9},
		{Sections: equity, Pattern: `distributions?|draws?`, Category: "owner_distribution", Confidence: 0.9},
		{Sections: equity, Pattern: `retained\s+earnings`, Category: "retained_earnings", Confidence: 0.95},
		{Sections: equity, Pattern: `current\s+(?:year\s+)?(?:earnings|income)|net\s+income`, Category: "current_earnings", Confidence: 0.9},

		// ---- Cash flow.
		{Sections: []domain.Section{domain.SectionOperating}, Pattern: `receipts|collections|cash\s+received`, Category: "operating_cash", Subcategory: "receipts", Confidence: 0.85},
		{Sections: []domain.Section{domain.SectionOperating}, Pattern: `disbursements|payments|cash\s+paid`, Category: "operating_cash", Subcategory: "disbursements", Confidence: 0.85},
		{Sections: []domain.Section{domain.SectionOperating}, Pattern: `.`, Category: "operating_cash", Confidence: 0.6},
		{Sections: []domain.Section{domain.SectionInvesting}, Pattern: `.`, Category: "investing_cash", Confidence: 0.6},
		{Sections: []domain.Section{domain.SectionFinancing}, Pattern: `(?:loan|mortgage)\s+proceeds|borrowings`, Category: "financing_cash", Subcategory: "loan_proceeds", Confidence: 0.85},
		{Sections: []domain.Section{domain.SectionFinancing}, Pattern: `(?:loan|principal|mortgage)\s+(?:payments?|repayments?)`, Category: "financing_cash", Subcategory: "loan_payments", Confidence: 0.85},
		{Sections: []domain.Section{domain.SectionFinancing}, Pattern: `contributions?`, Category: "financing_cash", Subcategory: "contributions", Confidence: 0.85},
		{Sections: []domain.Section{domain.SectionFinancing}, Pattern: `distributions?`, Category: "financing_cash", Subcategory: "distributions", Confidence: 0.85},
		{Sections: []domain.Section{domain.SectionFinancing}, Pattern: `.`, Category: "financing_cash", Confidence: 0.6},

		// ---- Reconciliation.
		{Sections: recon, Pattern: `deposits?\s+in\s+transit`, Category: "reconciliation_item", Subcategory: "deposits_in_transit", Confidence: 0.95},
		{Sections: recon, Pattern: `outstanding\s+checks?`, Category: "reconciliation_item", Subcategory: "outstanding_checks", Confidence: 0.95},
		{Sections: recon, Pattern: `bank\s+(?:error|adjustment|charges?)`, Category: "reconciliation_item", Subcategory: "bank_adjustment", Confidence: 0.9},
		{Sections: []domain.Section{domain.SectionReconciliation}, Pattern: `.`, Category: "reconciliation_item", Confidence: 0.6},

		// ---- Rent roll.
		{Sections: rentroll, Pattern: `vacant`, Category: "unit_rent", Subcategory: "vacant", Confidence: 0.9},
		{Sections: rentroll, Pattern: `^(?:unit|suite|apt|apartment)\b`, Category: "unit_rent", Subcategory: "occupied", Confidence: 0.85},
		{Sections: rentroll, Pattern: `cam\s+charge`, Category: "lease_charge", Subcategory: "cam", Confidence: 0.9},
		{Sections: rentroll, Pattern: `base\s+charge|base\s+rent\s+charge`, Category: "lease_charge", Subcategory: "base", Confidence: 0.9},
		{Sections: rentroll, Pattern: `other\s+charge`, Category: "lease_charge", Subcategory: "other", Confidence: 0.85},
	}
}
