package pipeline

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finparse/statement-pipeline/internal/apperrors"
	"github.com/finparse/statement-pipeline/internal/core/domain"
)

// Options configures one Engine. All knobs come from configuration; the
// engine itself holds no mutable state across documents.
type Options struct {
	FuzzyThreshold     float64
	DedupPolicy        DedupPolicy
	HierarchyTolerance decimal.Decimal
	// ReviewConfidence is the floor below which a line's combined
	// classification/match confidence flags it for review.
	ReviewConfidence float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold:     0.85,
		DedupPolicy:        DedupKeepFirst,
		HierarchyTolerance: decimal.NewFromInt(1),
		ReviewConfidence:   0.6,
	}
}

// Engine composes the in-memory pipeline stages for one document: header
// extraction, section detection, classification, account matching,
// deduplication, and hierarchy building. Process is pure computation over
// its inputs; persistence and validation happen around it, not in it.
//
// One Engine is built per run from the read-only catalogues and shared by
// all workers; per-document mutable state (the fuzzy memo table) is created
// inside Process.
type Engine struct {
	classifier *Classifier
	catalogue  []domain.ChartOfAccountsEntry
	opts       Options
	logger     *slog.Logger
}

// NewEngine builds an engine from the classification rule set and the
// chart-of-accounts catalogue snapshot.
func NewEngine(specs []RuleSpec, catalogue []domain.ChartOfAccountsEntry, opts Options, logger *slog.Logger) (*Engine, error) {
	classifier, err := NewClassifier(specs)
	if err != nil {
		return nil, fmt.Errorf("compile classification rules: %w", err)
	}
	if opts.FuzzyThreshold <= 0 || opts.FuzzyThreshold > 1 {
		opts.FuzzyThreshold = DefaultOptions().FuzzyThreshold
	}
	if opts.ReviewConfidence <= 0 {
		opts.ReviewConfidence = DefaultOptions().ReviewConfidence
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{classifier: classifier, catalogue: catalogue, opts: opts, logger: logger}, nil
}

// Process runs stages 1-6 for one document and returns the complete
// in-memory extraction, ready for the transactional writer. It returns
// apperrors.ErrEmptyInput for an unusable stream and
// apperrors.ErrInternalInvariant if a duplicate key survives deduplication;
// both are fatal for this document only.
func (e *Engine) Process(documentID string, docType domain.DocumentType, rawLines []domain.RawLine, now time.Time) (*domain.Extraction, error) {
	logger := e.logger.With(slog.String("document_id", documentID), slog.String("document_type", string(docType)))

	if !docType.IsValid() {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("unsupported document type %q", docType), apperrors.ErrValidation)
	}
	if !hasUsableText(rawLines) {
		return nil, apperrors.NewAppError(422, "document "+documentID+" has no extractable text", apperrors.ErrEmptyInput)
	}

	// Stage 1: header.
	header := NewHeaderExtractor().Extract(documentID, docType, rawLines)

	// Stage 2: sections.
	sectioned := NewSectionDetector(docType).Assign(rawLines)

	// Stages 3-4: classify and match. The memo table is scoped to this call.
	matcher := NewMatcher(e.catalogue, docType, e.opts.FuzzyThreshold)
	memo := NewMemoTable()

	var matched []domain.MatchedLine
	var adjustments []domain.Adjustment
	var reconciliations []domain.ReconciliationEntry
	seenHeading := false
	for _, line := range sectioned {
		if line.IsHeading {
			seenHeading = true
		}
		classified := e.classifier.Classify(line)
		amount, periodAmount, hasAmount := LineAmounts(line.ColumnValues, line.Text)
		label := LineLabel(line.ColumnValues, line.Text)

		// Headings and blank rows carry no amount and are structural only.
		if !hasAmount && (line.IsHeading || strings.TrimSpace(label) == "") {
			continue
		}
		// Preamble before the first heading is the header extractor's
		// territory: titles, date lines, and other amount-less text must not
		// become line items or shadow real accounts at dedup time.
		if !seenHeading && line.Section == domain.SectionUnclassified {
			if !hasAmount || looksLikeHeaderMetadata(line.Text) {
				continue
			}
		}

		switch line.Section {
		case domain.SectionAdjustments:
			adjustments = append(adjustments, domain.Adjustment{
				DocumentID:  documentID,
				Description: label,
				Amount:      amount,
				Section:     line.Section,
				Position:    line.Position,
			})
			continue
		case domain.SectionReconciliation:
			reconciliations = append(reconciliations, domain.ReconciliationEntry{
				DocumentID:  documentID,
				Description: label,
				Amount:      amount,
				Position:    line.Position,
			})
			continue
		}

		ml := domain.MatchedLine{
			ClassifiedLine: classified,
			AccountName:    label,
			MatchStrategy:  domain.MatchNone,
			Amount:         amount,
			PeriodAmount:   periodAmount,
		}
		outcome := matcher.Match(classified, memo)
		if outcome.Matched {
			code := outcome.Entry.Code
			ml.AccountCode = &code
			ml.AccountName = outcome.Entry.Name
			ml.MatchStrategy = outcome.Strategy
			ml.MatchConfidence = outcome.Confidence
			ml.NeedsReview = outcome.Strategy == domain.MatchCategoryFallback
		} else {
			ml.NeedsReview = true
		}
		if classified.Category == domain.CategoryUncategorized {
			ml.NeedsReview = true
		}
		if classified.Confidence < e.opts.ReviewConfidence || ml.MatchConfidence < e.opts.ReviewConfidence {
			ml.NeedsReview = true
		}
		matched = append(matched, ml)
	}

	// Stage 5: dedup.
	deduped, collisions := Deduplicate(matched, e.opts.DedupPolicy)
	for _, c := range collisions {
		logger.Warn("duplicate line collapsed",
			slog.String("account_code", c.AccountCode),
			slog.String("account_name", c.AccountName),
			slog.Int("occurrences", c.Count),
			slog.String("policy", string(c.Policy)),
		)
	}
	if err := VerifyUnique(deduped); err != nil {
		// Defect in the dedup stage, not a business condition.
		logger.Error("deduplication invariant violated", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "deduplication invariant violated for document "+documentID, apperrors.ErrInternalInvariant)
	}

	// Stage 6: hierarchy over the item arena.
	items := make([]domain.LineItem, 0, len(deduped))
	for _, ml := range deduped {
		items = append(items, domain.LineItem{
			DocumentID:      documentID,
			AccountCode:     ml.AccountCode,
			AccountName:     ml.AccountName,
			Section:         ml.Section,
			Category:        ml.Category,
			Subcategory:     ml.Subcategory,
			Amount:          ml.Amount,
			PeriodAmount:    ml.PeriodAmount,
			Position:        ml.Position,
			IsTotal:         ml.IsTotal,
			MatchStrategy:   ml.MatchStrategy,
			MatchConfidence: ml.MatchConfidence,
			NeedsReview:     ml.NeedsReview,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		})
	}
	report := BuildHierarchy(items, e.opts.HierarchyTolerance)
	for _, idx := range report.Inconsistent {
		items[idx].NeedsReview = true
		logger.Warn("total does not equal sum of its children",
			slog.String("account_name", items[idx].AccountName),
			slog.String("amount", items[idx].Amount.String()),
			slog.String("child_sum", report.ChildSums[idx].String()),
		)
	}

	header.TotalsSummary = summarizeTotals(items)
	ApplyPeriodPercentages(items, sectionTotals(items))

	return &domain.Extraction{
		Header:          header,
		Items:           items,
		Adjustments:     adjustments,
		Reconciliations: reconciliations,
	}, nil
}

func hasUsableText(lines []domain.RawLine) bool {
	for _, l := range lines {
		if strings.TrimSpace(l.Text) != "" {
			return true
		}
		for _, cv := range l.ColumnValues {
			if strings.TrimSpace(cv) != "" {
				return true
			}
		}
	}
	return false
}

// summarizeTotals collects the named aggregates the validation rule engine
// evaluates against: one entry per total category present in the document.
func summarizeTotals(items []domain.LineItem) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, item := range items {
		if !item.IsTotal || !domain.IsTotalCategory(item.Category) {
			continue
		}
		totals[item.Category] = item.Amount
	}
	return totals
}

func sectionTotals(items []domain.LineItem) map[domain.Section]decimal.Decimal {
	totals := make(map[domain.Section]decimal.Decimal)
	for _, item := range items {
		if item.IsTotal && domain.IsTotalCategory(item.Category) {
			if _, seen := totals[item.Section]; !seen {
				totals[item.Section] = item.Amount
			}
		}
	}
	return totals
}
