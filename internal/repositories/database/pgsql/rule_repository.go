package pgsql

import (
	"context"
	"fmt"

	"github.com/finparse/statement-pipeline/internal/apperrors"
	"github.com/finparse/statement-pipeline/internal/core/domain"
	portsrepo "github.com/finparse/statement-pipeline/internal/core/ports/repositories"
	"github.com/finparse/statement-pipeline/internal/models"
	"github.com/finparse/statement-pipeline/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRuleRepository struct {
	BaseRepository
}

// newPgxRuleRepository creates a new repository for validation rules and results.
func newPgxRuleRepository(pool *pgxpool.Pool) portsrepo.RuleRepository {
	return &PgxRuleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRuleRepository implements portsrepo.RuleRepository
var _ portsrepo.RuleRepository = (*PgxRuleRepository)(nil)

// SaveRule upserts a validation rule keyed by rule ID.
func (r *PgxRuleRepository) SaveRule(ctx context.Context, rule domain.ValidationRule) error {
	m := mapping.ToModelValidationRule(rule)

	query := `
		INSERT INTO validation_rules (
			rule_id, name, document_type, formula,
			tolerance_kind, tolerance_value, severity, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (rule_id) DO UPDATE SET
			name = EXCLUDED.name,
			document_type = EXCLUDED.document_type,
			formula = EXCLUDED.formula,
			tolerance_kind = EXCLUDED.tolerance_kind,
			tolerance_value = EXCLUDED.tolerance_value,
			severity = EXCLUDED.severity,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RuleID, m.Name, m.DocumentType, m.Formula,
		m.ToleranceKind, m.ToleranceValue, m.Severity, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save validation rule %s: %w", m.RuleID, err)
	}
	return nil
}

// ListActiveRules returns every active rule ordered by name.
func (r *PgxRuleRepository) ListActiveRules(ctx context.Context) ([]domain.ValidationRule, error) {
	query := `
		SELECT rule_id, name, document_type, formula,
			tolerance_kind, tolerance_value, severity, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM validation_rules WHERE is_active ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list validation rules: %w", err)
	}
	defer rows.Close()

	rules := make([]domain.ValidationRule, 0)
	for rows.Next() {
		var m models.ValidationRule
		err := rows.Scan(
			&m.RuleID, &m.Name, &m.DocumentType, &m.Formula,
			&m.ToleranceKind, &m.ToleranceValue, &m.Severity, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan validation rule row: %w", err)
		}
		rules = append(rules, mapping.ToDomainValidationRule(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating validation rule rows: %w", err)
	}
	return rules, nil
}

// SaveValidationResults appends one run's audit trail in a single transaction.
func (r *PgxRuleRepository) SaveValidationResults(ctx context.Context, results []domain.ValidationResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO validation_results (result_id, rule_id, document_id, expected, actual, difference, passed, severity, evaluated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, result := range results {
		m := mapping.ToModelValidationResult(result)
		batch.Queue(query, m.ResultID, m.RuleID, m.DocumentID, m.Expected, m.Actual, m.Difference, m.Passed, m.Severity, m.EvaluatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = err
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = err
	}
	if batchErr != nil {
		return apperrors.NewAppError(500, "failed to insert validation results", batchErr)
	}

	return r.Commit(ctx, tx)
}

// FindResultsByDocumentID returns a document's validation results, newest rule evaluation first.
func (r *PgxRuleRepository) FindResultsByDocumentID(ctx context.Context, documentID string) ([]domain.ValidationResult, error) {
	query := `
		SELECT result_id, rule_id, document_id, expected, actual, difference, passed, severity, evaluated_at
		FROM validation_results WHERE document_id = $1 ORDER BY evaluated_at DESC, rule_id;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query validation results of document %s: %w", documentID, err)
	}
	defer rows.Close()

	results := make([]domain.ValidationResult, 0)
	for rows.Next() {
		var m models.ValidationResult
		err := rows.Scan(&m.ResultID, &m.RuleID, &m.DocumentID, &m.Expected, &m.Actual, &m.Difference, &m.Passed, &m.Severity, &m.EvaluatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan validation result row: %w", err)
		}
		results = append(results, mapping.ToDomainValidationResult(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating validation result rows: %w", err)
	}
	return results, nil
}
