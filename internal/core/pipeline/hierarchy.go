package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finparse/statement-pipeline/internal/core/domain"
)

// HierarchyReport carries the consistency information computed while linking,
// consumed by the review pass and surfaced through validation logging.
type HierarchyReport struct {
	// ChildSums maps an arena index of a total line to the sum of its linked
	// children's amounts. Only totals with at least one child appear.
	ChildSums map[int]decimal.Decimal
	// Inconsistent lists arena indices of totals whose amount differs from
	// their child sum by more than the tolerance. Reported, never rejected.
	Inconsistent []int
}

// BuildHierarchy links detail lines to their parent subtotal/total lines in
// place, producing a flat parent index over the item arena.
//
// Items are scanned in document order with a stack of open totals: a total
// line opens a group; following detail lines attach to the most recently
// opened total that covers their category; a new total at the same depth
// closes the previous one, and a subcategory total attaches to its parent
// category's open total. ParentIndex always addresses an earlier arena
// position, so the parent graph is structurally acyclic.
func BuildHierarchy(items []domain.LineItem, tolerance decimal.Decimal) HierarchyReport {
	type openTotal struct {
		index    int
		category string
		section  domain.Section
		depth    int // 0 = section grand total, 1 = category group total
	}

	order := make([]int, len(items))
	for i := range items {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].Position < items[order[b]].Position
	})

	var stack []openTotal
	popTo := func(depth int) {
		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
	}
	// attachTo finds the innermost open total that can own an item of the
	// given category/section.
	attachTo := func(category string, section domain.Section) *openTotal {
		for i := len(stack) - 1; i >= 0; i-- {
			ot := &stack[i]
			if ot.depth == 1 && ot.category == category {
				return ot
			}
			if ot.depth == 0 && ot.section == section {
				return ot
			}
		}
		return nil
	}

	for _, idx := range order {
		item := &items[idx]
		if item.IsTotal {
			depth := 1
			if domain.IsTotalCategory(item.Category) {
				depth = 0
			}
			popTo(depth)
			if parent := attachTo(item.Category, item.Section); parent != nil && parent.index < idx {
				p := parent.index
				item.ParentIndex = &p
			}
			stack = append(stack, openTotal{index: idx, category: item.Category, section: item.Section, depth: depth})
			continue
		}
		if parent := attachTo(item.Category, item.Section); parent != nil && parent.index < idx {
			p := parent.index
			item.ParentIndex = &p
		}
	}

	report := HierarchyReport{ChildSums: make(map[int]decimal.Decimal)}
	for i := range items {
		if items[i].ParentIndex == nil {
			continue
		}
		p := *items[i].ParentIndex
		report.ChildSums[p] = report.ChildSums[p].Add(items[i].Amount)
	}
	for p, sum := range report.ChildSums {
		if !items[p].IsTotal {
			continue
		}
		if items[p].Amount.Sub(sum).Abs().GreaterThan(tolerance) {
			report.Inconsistent = append(report.Inconsistent, p)
		}
	}
	sort.Ints(report.Inconsistent)
	return report
}

// ApplyPeriodPercentages fills each detail item's share of its section's
// grand total, when that total is known and non-zero.
func ApplyPeriodPercentages(items []domain.LineItem, sectionTotals map[domain.Section]decimal.Decimal) {
	hundred := decimal.NewFromInt(100)
	for i := range items {
		total, ok := sectionTotals[items[i].Section]
		if !ok || total.IsZero() || items[i].IsTotal {
			continue
		}
		pct := items[i].Amount.Div(total).Mul(hundred).Round(2)
		items[i].PeriodPercentage = &pct
	}
}
