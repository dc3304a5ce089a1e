package pipeline

import (
	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/xrash/smetrics"
)

// Jaro-Winkler parameters: standard boost threshold and prefix size.
const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// categoryFallbackConfidence is the fixed low confidence assigned when a line
// only resolves to its category's summary row.
const categoryFallbackConfidence = 0.5

// MemoTable caches fuzzy similarity scores for one document's run. It is
// created per Process call and passed down explicitly, so no mutable state is
// shared across documents.
type MemoTable struct {
	scores map[string]float64
}

// NewMemoTable creates an empty per-run memo table.
func NewMemoTable() *MemoTable {
	return &MemoTable{scores: make(map[string]float64)}
}

func (m *MemoTable) similarity(a, b string) float64 {
	key := a + "\x00" + b
	if s, ok := m.scores[key]; ok {
		return s
	}
	s := smetrics.JaroWinkler(TokenSort(a), TokenSort(b), jwBoostThreshold, jwPrefixSize)
	m.scores[key] = s
	return s
}

// Matcher resolves classified lines against the chart-of-accounts catalogue
// for one document type. The catalogue snapshot is read-only; a Matcher is
// safe for concurrent use as long as each document brings its own MemoTable.
type Matcher struct {
	entries    []domain.ChartOfAccountsEntry
	byCode     map[string]*domain.ChartOfAccountsEntry
	byNormName map[string]*domain.ChartOfAccountsEntry
	threshold  float64
}

// NewMatcher filters the catalogue to active entries valid for docType and
// indexes them for the exact-match cascade steps.
func NewMatcher(catalogue []domain.ChartOfAccountsEntry, docType domain.DocumentType, threshold float64) *Matcher {
	m := &Matcher{
		byCode:     make(map[string]*domain.ChartOfAccountsEntry),
		byNormName: make(map[string]*domain.ChartOfAccountsEntry),
		threshold:  threshold,
	}
	for _, e := range catalogue {
		if !e.IsActive || !e.AppliesTo(docType) {
			continue
		}
		if e.NormalizedName == "" {
			e.NormalizedName = NormalizeName(e.Name)
		}
		m.entries = append(m.entries, e)
	}
	for i := range m.entries {
		e := &m.entries[i]
		if _, taken := m.byCode[e.Code]; !taken {
			m.byCode[e.Code] = e
		}
		if _, taken := m.byNormName[e.NormalizedName]; !taken {
			m.byNormName[e.NormalizedName] = e
		}
	}
	return m
}

// Match runs the cascade for one classified line. Steps are evaluated in
// order and the first hit wins:
//
//  1. exact account code token           (confidence 1.0)
//  2. exact normalized name              (confidence 1.0)
//  3. fuzzy name similarity >= threshold (confidence = similarity, < 1.0)
//  4. category summary-row fallback      (confidence 0.5, needs review)
//  5. no match
//
// "No match" is an ordinary outcome, not an error.
func (m *Matcher) Match(line domain.ClassifiedLine, memo *MemoTable) domain.MatchOutcome {
	label := LineLabel(line.ColumnValues, line.Text)
	normalized := NormalizeName(label)
	amount, _, _ := LineAmounts(line.ColumnValues, line.Text)
	negative := amount.IsNegative()

	// 1. Exact code.
	if code, ok := ExtractAccountCode(line.Text); ok {
		if entry, found := m.byCode[code]; found {
			return domain.MatchOutcome{Matched: true, Entry: entry, Strategy: domain.MatchExactCode, Confidence: 1.0}
		}
	}

	if normalized == "" {
		return domain.Unmatched("empty line label")
	}

	// 2. Exact normalized name.
	if entry, found := m.byNormName[normalized]; found {
		return domain.MatchOutcome{Matched: true, Entry: entry, Strategy: domain.MatchExactName, Confidence: 1.0}
	}

	// 3. Fuzzy name match. Among candidates above threshold the highest
	// similarity wins; exact ties prefer the entry whose expected sign
	// agrees with the line's observed sign.
	var best *domain.ChartOfAccountsEntry
	bestScore := 0.0
	for i := range m.entries {
		entry := &m.entries[i]
		score := memo.similarity(normalized, entry.NormalizedName)
		if score < m.threshold {
			continue
		}
		switch {
		case score > bestScore:
			best, bestScore = entry, score
		case score == bestScore && best != nil:
			if !best.ExpectedSign.Matches(negative) && entry.ExpectedSign.Matches(negative) {
				best = entry
			}
		}
	}
	if best != nil {
		confidence := bestScore
		if confidence >= 1.0 {
			// Similarity 1.0 with a non-identical normalized form still
			// counts as fuzzy; keep the exact/fuzzy confidence invariant.
			confidence = 0.999
		}
		return domain.MatchOutcome{Matched: true, Entry: best, Strategy: domain.MatchFuzzy, Confidence: confidence}
	}

	// 4. Category fallback onto the summary row.
	if line.Category != domain.CategoryUncategorized {
		for i := range m.entries {
			entry := &m.entries[i]
			if entry.IsSummary && entry.Category == line.Category {
				return domain.MatchOutcome{
					Matched:    true,
					Entry:      entry,
					Strategy:   domain.MatchCategoryFallback,
					Confidence: categoryFallbackConfidence,
				}
			}
		}
	}

	// 5. No match.
	return domain.Unmatched("no catalogue entry for " + label)
}
