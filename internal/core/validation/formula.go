package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Formula is the compiled form of a rule equation such as
//
//	total_assets = total_liabilities + total_equity
//
// Each side is a signed sum of named aggregate fields. Formulas are compiled
// once at rule load time and evaluated per document.
type Formula struct {
	LHS SideExpr
	RHS SideExpr
}

// SideExpr is one side of the equation: ordered terms with signs.
type SideExpr struct {
	Terms []Term
}

// Term is a single named aggregate reference with its sign.
type Term struct {
	Field    string
	Negative bool
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseFormula compiles "lhs = term (+|- term)*" with identifier terms on
// both sides.
func ParseFormula(formula string) (*Formula, error) {
	parts := strings.Split(formula, "=")
	if len(parts) != 2 {
		return nil, fmt.Errorf("formula %q must contain exactly one '='", formula)
	}
	lhs, err := parseSide(parts[0])
	if err != nil {
		return nil, fmt.Errorf("formula %q: %w", formula, err)
	}
	rhs, err := parseSide(parts[1])
	if err != nil {
		return nil, fmt.Errorf("formula %q: %w", formula, err)
	}
	return &Formula{LHS: lhs, RHS: rhs}, nil
}

func parseSide(side string) (SideExpr, error) {
	side = strings.TrimSpace(side)
	if side == "" {
		return SideExpr{}, fmt.Errorf("empty side")
	}

	var expr SideExpr
	negative := false
	field := ""
	flush := func() error {
		f := strings.TrimSpace(field)
		if f == "" {
			return fmt.Errorf("dangling operator")
		}
		if !identRe.MatchString(f) {
			return fmt.Errorf("invalid field name %q", f)
		}
		expr.Terms = append(expr.Terms, Term{Field: f, Negative: negative})
		field = ""
		return nil
	}

	for i, r := range side {
		switch r {
		case '+', '-':
			if i == 0 || strings.TrimSpace(field) == "" {
				// Leading sign on the first term.
				if strings.TrimSpace(field) != "" {
					return SideExpr{}, fmt.Errorf("unexpected operator")
				}
				negative = r == '-'
				continue
			}
			if err := flush(); err != nil {
				return SideExpr{}, err
			}
			negative = r == '-'
		default:
			field += string(r)
		}
	}
	if err := flush(); err != nil {
		return SideExpr{}, err
	}
	return expr, nil
}

// Fields returns every aggregate name the formula references.
func (f *Formula) Fields() []string {
	var out []string
	for _, t := range append(append([]Term{}, f.LHS.Terms...), f.RHS.Terms...) {
		out = append(out, t.Field)
	}
	return out
}

// Evaluate substitutes aggregate values and computes both sides. Missing
// fields evaluate as zero and are reported so the caller can record the miss.
func (f *Formula) Evaluate(aggregates map[string]decimal.Decimal) (lhs, rhs decimal.Decimal, missing []string) {
	eval := func(side SideExpr) decimal.Decimal {
		sum := decimal.Zero
		for _, t := range side.Terms {
			v, ok := aggregates[t.Field]
			if !ok {
				missing = append(missing, t.Field)
			}
			if t.Negative {
				sum = sum.Sub(v)
			} else {
				sum = sum.Add(v)
			}
		}
		return sum
	}
	return eval(f.LHS), eval(f.RHS), missing
}
