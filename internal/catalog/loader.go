package catalog

import (
	"fmt"
	"os"
	"time"

	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/core/pipeline"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// AccountSpec is one chart-of-accounts entry as authored in YAML.
type AccountSpec struct {
	Code          string   `yaml:"code"`
	Name          string   `yaml:"name"`
	Category      string   `yaml:"category"`
	Subcategory   string   `yaml:"subcategory"`
	ParentCode    string   `yaml:"parent_code"`
	DocumentTypes []string `yaml:"document_types"`
	ExpectedSign  string   `yaml:"expected_sign"`
	IsSummary     bool     `yaml:"is_summary"`
}

// RuleSpec is one validation rule as authored in YAML.
type RuleSpec struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	DocumentType   string `yaml:"document_type"`
	Formula        string `yaml:"formula"`
	ToleranceKind  string `yaml:"tolerance_kind"`
	ToleranceValue string `yaml:"tolerance_value"`
	Severity       string `yaml:"severity"`
}

// LoadAccounts reads a chart-of-accounts seed file and converts it into
// domain entries, validating each against the category taxonomy.
func LoadAccounts(path string, now time.Time, createdBy string) ([]domain.ChartOfAccountsEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read account catalogue %s: %w", path, err)
	}

	var file struct {
		Accounts []AccountSpec `yaml:"accounts"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse account catalogue %s: %w", path, err)
	}

	entries := make([]domain.ChartOfAccountsEntry, 0, len(file.Accounts))
	seen := make(map[string]bool, len(file.Accounts))
	for _, spec := range file.Accounts {
		if spec.Code == "" || spec.Name == "" {
			return nil, fmt.Errorf("account catalogue %s: entry missing code or name", path)
		}
		if seen[spec.Code] {
			return nil, fmt.Errorf("account catalogue %s: duplicate code %s", path, spec.Code)
		}
		seen[spec.Code] = true
		if !domain.IsKnownCategory(spec.Category) {
			return nil, fmt.Errorf("account catalogue %s: entry %s has unknown category %q", path, spec.Code, spec.Category)
		}
		if spec.Subcategory != "" && !domain.IsValidSubcategory(spec.Category, spec.Subcategory) {
			return nil, fmt.Errorf("account catalogue %s: entry %s has invalid subcategory %q for category %q", path, spec.Code, spec.Subcategory, spec.Category)
		}

		sign := domain.ExpectedSign(spec.ExpectedSign)
		if spec.ExpectedSign == "" {
			sign = domain.SignEither
		}
		switch sign {
		case domain.SignPositive, domain.SignNegative, domain.SignEither:
		default:
			return nil, fmt.Errorf("account catalogue %s: entry %s has invalid expected sign %q", path, spec.Code, spec.ExpectedSign)
		}

		types := make([]domain.DocumentType, 0, len(spec.DocumentTypes))
		for _, t := range spec.DocumentTypes {
			dt := domain.DocumentType(t)
			if !dt.IsValid() {
				return nil, fmt.Errorf("account catalogue %s: entry %s names unknown document type %q", path, spec.Code, t)
			}
			types = append(types, dt)
		}

		var parentCode *string
		if spec.ParentCode != "" {
			parentCode = &spec.ParentCode
		}

		entries = append(entries, domain.ChartOfAccountsEntry{
			Code:           spec.Code,
			Name:           spec.Name,
			NormalizedName: pipeline.NormalizeName(spec.Name),
			Category:       spec.Category,
			Subcategory:    spec.Subcategory,
			ParentCode:     parentCode,
			DocumentTypes:  types,
			ExpectedSign:   sign,
			IsSummary:      spec.IsSummary,
			IsActive:       true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     createdBy,
				LastUpdatedAt: now,
				LastUpdatedBy: createdBy,
			},
		})
	}

	for _, entry := range entries {
		if entry.ParentCode != nil && !seen[*entry.ParentCode] {
			return nil, fmt.Errorf("account catalogue %s: entry %s references unknown parent %s", path, entry.Code, *entry.ParentCode)
		}
	}
	return entries, nil
}

// LoadClassificationRules reads an ordered classification rule file. The
// specs are validated by the classifier constructor, not here.
func LoadClassificationRules(path string) ([]pipeline.RuleSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classification rules %s: %w", path, err)
	}

	var file struct {
		Rules []pipeline.RuleSpec `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse classification rules %s: %w", path, err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("classification rules %s: no rules defined", path)
	}
	return file.Rules, nil
}

// LoadValidationRules reads a validation rule file and converts it into
// domain rules ready for seeding.
func LoadValidationRules(path string, now time.Time, createdBy string) ([]domain.ValidationRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read validation rules %s: %w", path, err)
	}

	var file struct {
		Rules []RuleSpec `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse validation rules %s: %w", path, err)
	}

	rules := make([]domain.ValidationRule, 0, len(file.Rules))
	seen := make(map[string]bool, len(file.Rules))
	for _, spec := range file.Rules {
		if spec.ID == "" || spec.Formula == "" {
			return nil, fmt.Errorf("validation rules %s: rule missing id or formula", path)
		}
		if seen[spec.ID] {
			return nil, fmt.Errorf("validation rules %s: duplicate rule id %s", path, spec.ID)
		}
		seen[spec.ID] = true

		docType := domain.DocumentType(spec.DocumentType)
		if spec.DocumentType != "" && !docType.IsValid() {
			return nil, fmt.Errorf("validation rules %s: rule %s names unknown document type %q", path, spec.ID, spec.DocumentType)
		}

		kind := domain.ToleranceKind(spec.ToleranceKind)
		if spec.ToleranceKind == "" {
			kind = domain.ToleranceAbsolute
		}
		switch kind {
		case domain.ToleranceAbsolute, domain.TolerancePercentage:
		default:
			return nil, fmt.Errorf("validation rules %s: rule %s has invalid tolerance kind %q", path, spec.ID, spec.ToleranceKind)
		}

		tolerance := decimal.Zero
		if spec.ToleranceValue != "" {
			tolerance, err = decimal.NewFromString(spec.ToleranceValue)
			if err != nil {
				return nil, fmt.Errorf("validation rules %s: rule %s has invalid tolerance value %q", path, spec.ID, spec.ToleranceValue)
			}
		}

		severity := domain.Severity(spec.Severity)
		if spec.Severity == "" {
			severity = domain.SeverityWarning
		}
		switch severity {
		case domain.SeverityCritical, domain.SeverityWarning, domain.SeverityInfo:
		default:
			return nil, fmt.Errorf("validation rules %s: rule %s has invalid severity %q", path, spec.ID, spec.Severity)
		}

		rules = append(rules, domain.ValidationRule{
			RuleID:         spec.ID,
			Name:           spec.Name,
			DocumentType:   docType,
			Formula:        spec.Formula,
			ToleranceKind:  kind,
			ToleranceValue: tolerance,
			Severity:       severity,
			IsActive:       true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     createdBy,
				LastUpdatedAt: now,
				LastUpdatedBy: createdBy,
			},
		})
	}
	return rules, nil
}
