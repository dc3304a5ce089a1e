package validation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finparse/statement-pipeline/internal/core/domain"
)

// compiledRule pairs a configured rule with its parsed formula.
type compiledRule struct {
	rule    domain.ValidationRule
	formula *Formula
}

// Engine evaluates the configured rule catalogue against a document's
// committed aggregates. Rules are compiled once per run; evaluation is
// read-only and safe for concurrent use across documents.
type Engine struct {
	rules  []compiledRule
	logger *slog.Logger
}

// NewEngine compiles the active rules. A malformed formula is a configuration
// error and fails engine construction rather than being skipped silently.
func NewEngine(rules []domain.ValidationRule, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		f, err := ParseFormula(r.Formula)
		if err != nil {
			return nil, fmt.Errorf("rule %s (%s): %w", r.RuleID, r.Name, err)
		}
		compiled = append(compiled, compiledRule{rule: r, formula: f})
	}
	return &Engine{rules: compiled, logger: logger}, nil
}

// Outcome is the result of evaluating every applicable rule for one document.
type Outcome struct {
	Results []domain.ValidationResult
	// CriticalFailed is true when any critical-severity rule failed; the
	// document escalates to needs_review.
	CriticalFailed bool
}

// Evaluate runs every rule applicable to the document's type. Exactly one
// ValidationResult is produced per applicable rule, pass or fail — rules are
// independent and one failure never skips another. Missing aggregates
// evaluate as zero and fail the rule rather than aborting it.
func (e *Engine) Evaluate(documentID string, docType domain.DocumentType, aggregates map[string]decimal.Decimal, now time.Time) Outcome {
	var out Outcome
	for _, cr := range e.rules {
		if cr.rule.DocumentType != "" && cr.rule.DocumentType != docType {
			continue
		}

		lhs, rhs, missing := cr.formula.Evaluate(aggregates)
		diff := lhs.Sub(rhs).Abs()
		tolerance := e.tolerance(cr.rule, lhs, rhs)
		passed := len(missing) == 0 && diff.LessThanOrEqual(tolerance)

		if len(missing) > 0 {
			e.logger.Warn("validation rule references missing aggregates",
				slog.String("document_id", documentID),
				slog.String("rule_id", cr.rule.RuleID),
				slog.Any("missing", missing),
			)
		}

		out.Results = append(out.Results, domain.ValidationResult{
			ResultID:    uuid.NewString(),
			RuleID:      cr.rule.RuleID,
			DocumentID:  documentID,
			Expected:    rhs,
			Actual:      lhs,
			Difference:  diff,
			Passed:      passed,
			Severity:    cr.rule.Severity,
			EvaluatedAt: now,
		})
		if !passed && cr.rule.Severity == domain.SeverityCritical {
			out.CriticalFailed = true
		}
	}
	return out
}

// tolerance resolves a rule's tolerance: absolute amount, or a percentage of
// the larger operand.
func (e *Engine) tolerance(rule domain.ValidationRule, lhs, rhs decimal.Decimal) decimal.Decimal {
	if rule.ToleranceKind == domain.TolerancePercentage {
		larger := lhs.Abs()
		if rhs.Abs().GreaterThan(larger) {
			larger = rhs.Abs()
		}
		return larger.Mul(rule.ToleranceValue).Div(decimal.NewFromInt(100))
	}
	return rule.ToleranceValue
}
