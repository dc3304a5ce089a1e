package pipeline

import (
	"regexp"
	"strings"

	"github.com/finparse/statement-pipeline/internal/core/domain"
)

// sectionSignature pairs a heading pattern with the section it opens.
// Level 1 signatures are top-level statement regions that reset the stack;
// level 2 signatures are sub-regions pushed on top of the current region.
type sectionSignature struct {
	pattern *regexp.Regexp
	section domain.Section
	level   int
}

func sig(pattern string, section domain.Section, level int) sectionSignature {
	return sectionSignature{
		pattern: regexp.MustCompile(`(?i)^\s*(?:` + pattern + `)\s*:?\s*$`),
		section: section,
		level:   level,
	}
}

// sectionSignatures returns the priority-ordered heading signatures for a
// document type. Scoping by type keeps e.g. "operating" headings on a cash
// flow statement from colliding with operating expenses on an income statement.
func sectionSignatures(docType domain.DocumentType) []sectionSignature {
	switch docType {
	case domain.BalanceSheet:
		return []sectionSignature{
			sig(`assets`, domain.SectionAssets, 1),
			sig(`current\s+assets`, domain.SectionAssets, 2),
			sig(`fixed\s+assets|property\s*(?:,|and)?\s*(?:plant\s+and\s+)?equipment`, domain.SectionAssets, 2),
			sig(`liabilities\s+(?:and|&)\s+(?:owners?'?|stockholders?'?|shareholders?'?)?\s*equity`, domain.SectionLiabilities, 1),
			sig(`liabilities`, domain.SectionLiabilities, 1),
			sig(`current\s+liabilities`, domain.SectionLiabilities, 2),
			sig(`long[\s-]*term\s+liabilities`, domain.SectionLiabilities, 2),
			sig(`(?:owners?'?|stockholders?'?|shareholders?'?|members?'?)\s*equity|capital`, domain.SectionEquity, 1),
		}
	case domain.CashFlow:
		return []sectionSignature{
			sig(`(?:cash\s+(?:flows?\s+)?from\s+)?operating\s+activities`, domain.SectionOperating, 1),
			sig(`(?:cash\s+(?:flows?\s+)?from\s+)?investing\s+activities`, domain.SectionInvesting, 1),
			sig(`(?:cash\s+(?:flows?\s+)?from\s+)?financing\s+activities`, domain.SectionFinancing, 1),
			sig(`(?:cash|bank)\s+reconciliation|reconciliation\s+(?:to|of)\s+(?:bank|cash)`, domain.SectionReconciliation, 1),
			sig(`adjustments?(?:\s+to\s+reconcile.*)?`, domain.SectionAdjustments, 2),
		}
	case domain.RentRoll:
		return []sectionSignature{
			sig(`rent\s+roll|unit\s+(?:detail|listing)|lease\s+(?:detail|charges)`, domain.SectionRentRoll, 1),
			sig(`(?:other|misc(?:ellaneous)?)\s+(?:income|charges)`, domain.SectionIncome, 1),
			sig(`adjustments?`, domain.SectionAdjustments, 1),
		}
	default: // IncomeStatement
		return []sectionSignature{
			sig(`(?:rental\s+|operating\s+)?income|revenue`, domain.SectionIncome, 1),
			sig(`(?:operating\s+|administrative\s+|general\s+(?:and|&)\s+administrative\s+)?expenses?`, domain.SectionExpense, 1),
			sig(`other\s+income\s*(?:\(expenses?\)|/\s*expenses?)?`, domain.SectionIncome, 2),
			sig(`adjustments?`, domain.SectionAdjustments, 1),
			sig(`(?:cash|bank)\s+reconciliation`, domain.SectionReconciliation, 1),
		}
	}
}

// SectionedLine is a raw line with its detected section.
type SectionedLine struct {
	domain.RawLine
	Section   domain.Section
	IsHeading bool
}

// SectionDetector partitions an ordered line stream into logical sections
// using heading pattern recognition and a section stack.
type SectionDetector struct {
	signatures []sectionSignature
}

// NewSectionDetector builds a detector scoped to one document type.
func NewSectionDetector(docType domain.DocumentType) *SectionDetector {
	return &SectionDetector{signatures: sectionSignatures(docType)}
}

// Assign walks the lines in document order. A heading match pushes or replaces
// the current section; every other line inherits the top of the stack. Lines
// seen before any heading get SectionUnclassified. Every line gets exactly one
// section.
func (d *SectionDetector) Assign(lines []domain.RawLine) []SectionedLine {
	type frame struct {
		section domain.Section
		level   int
	}
	stack := []frame{}
	top := func() domain.Section {
		if len(stack) == 0 {
			return domain.SectionUnclassified
		}
		return stack[len(stack)-1].section
	}

	out := make([]SectionedLine, 0, len(lines))
	for _, line := range lines {
		label := LineLabel(line.ColumnValues, line.Text)
		matched := false
		if label != "" && !isTotalLabel(label) {
			for _, s := range d.signatures {
				if !s.pattern.MatchString(label) {
					continue
				}
				// Pop frames at the same or deeper level, then push.
				for len(stack) > 0 && stack[len(stack)-1].level >= s.level {
					stack = stack[:len(stack)-1]
				}
				stack = append(stack, frame{section: s.section, level: s.level})
				out = append(out, SectionedLine{RawLine: line, Section: s.section, IsHeading: true})
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, SectionedLine{RawLine: line, Section: top()})
		}
	}
	return out
}

// isTotalLabel keeps summary rows like "Total Operating Expenses" from being
// mistaken for a section heading re-opening that section.
func isTotalLabel(label string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	return strings.HasPrefix(l, "total") || strings.HasPrefix(l, "net ")
}
