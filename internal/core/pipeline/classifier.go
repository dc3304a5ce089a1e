package pipeline

import (
	"fmt"
	"regexp"

	"github.com/finparse/statement-pipeline/internal/core/domain"
)

// RuleSpec is one classification rule as data: an ordered (section scope,
// pattern, category, subcategory) entry. Rules come from the built-in set or
// a YAML catalogue; they are loaded once per run and never mutated.
type RuleSpec struct {
	Sections    []domain.Section `yaml:"sections"` // empty means any section
	Pattern     string           `yaml:"pattern"`
	Category    string           `yaml:"category"`
	Subcategory string           `yaml:"subcategory"`
	IsTotal     bool             `yaml:"isTotal"`
	Confidence  float64          `yaml:"confidence"`
}

type classifierRule struct {
	sections    map[domain.Section]bool // nil means any
	pattern     *regexp.Regexp
	category    string
	subcategory string
	isTotal     bool
	confidence  float64
}

// unclassifiedPenalty depresses confidence for lines in documents where no
// heading was ever recognized; they are still processed downstream.
const unclassifiedPenalty = 0.75

// Classifier assigns each sectioned line to a leaf of the closed taxonomy
// using an ordered pattern cascade scoped to the line's section. First match
// wins; classification is fully deterministic.
type Classifier struct {
	rules []classifierRule
}

// NewClassifier compiles the ordered rule list. It rejects rules that name a
// category or subcategory outside the closed taxonomy, and invalid patterns.
func NewClassifier(specs []RuleSpec) (*Classifier, error) {
	rules := make([]classifierRule, 0, len(specs))
	for i, spec := range specs {
		if !domain.IsKnownCategory(spec.Category) {
			return nil, fmt.Errorf("rule %d: unknown category %q", i, spec.Category)
		}
		if !domain.IsValidSubcategory(spec.Category, spec.Subcategory) {
			return nil, fmt.Errorf("rule %d: invalid subcategory %q for category %q", i, spec.Subcategory, spec.Category)
		}
		re, err := regexp.Compile(`(?i)` + spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: bad pattern %q: %w", i, spec.Pattern, err)
		}
		var sections map[domain.Section]bool
		if len(spec.Sections) > 0 {
			sections = make(map[domain.Section]bool, len(spec.Sections))
			for _, s := range spec.Sections {
				sections[s] = true
			}
		}
		confidence := spec.Confidence
		if confidence <= 0 || confidence > 1 {
			confidence = 0.9
		}
		rules = append(rules, classifierRule{
			sections:    sections,
			pattern:     re,
			category:    spec.Category,
			subcategory: spec.Subcategory,
			isTotal:     spec.IsTotal || domain.IsTotalCategory(spec.Category),
			confidence:  confidence,
		})
	}
	return &Classifier{rules: rules}, nil
}

// Classify tags one sectioned line. A line inside a section is only tested
// against rules scoped to that section (or unscoped rules), which keeps
// cross-section pattern collisions down. No match yields the uncategorized
// sentinel at confidence 0.
func (c *Classifier) Classify(line SectionedLine) domain.ClassifiedLine {
	label := LineLabel(line.ColumnValues, line.Text)
	normalized := NormalizeName(label)

	out := domain.ClassifiedLine{
		RawLine:  line.RawLine,
		Section:  line.Section,
		Category: domain.CategoryUncategorized,
	}
	if normalized == "" {
		return out
	}

	for _, rule := range c.rules {
		if rule.sections != nil && !rule.sections[line.Section] {
			continue
		}
		if !rule.pattern.MatchString(normalized) {
			continue
		}
		out.Category = rule.category
		out.Subcategory = rule.subcategory
		out.IsTotal = rule.isTotal
		out.Confidence = rule.confidence
		if line.Section == domain.SectionUnclassified {
			out.Confidence *= unclassifiedPenalty
		}
		return out
	}
	return out
}
