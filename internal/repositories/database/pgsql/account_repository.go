package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finparse/statement-pipeline/internal/apperrors"
	"github.com/finparse/statement-pipeline/internal/core/domain"
	portsrepo "github.com/finparse/statement-pipeline/internal/core/ports/repositories"
	"github.com/finparse/statement-pipeline/internal/models"
	"github.com/finparse/statement-pipeline/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `
	code, name, normalized_name, category, subcategory, parent_code,
	document_types, expected_sign, is_summary, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveEntry upserts a chart-of-accounts entry keyed by account code.
func (r *PgxAccountRepository) SaveEntry(ctx context.Context, entry domain.ChartOfAccountsEntry) error {
	m := mapping.ToModelChartOfAccountsEntry(entry)

	query := `
		INSERT INTO chart_of_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			normalized_name = EXCLUDED.normalized_name,
			category = EXCLUDED.category,
			subcategory = EXCLUDED.subcategory,
			parent_code = EXCLUDED.parent_code,
			document_types = EXCLUDED.document_types,
			expected_sign = EXCLUDED.expected_sign,
			is_summary = EXCLUDED.is_summary,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		m.Code, m.Name, m.NormalizedName, m.Category, m.Subcategory, m.ParentCode,
		m.DocumentTypes, m.ExpectedSign, m.IsSummary, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save chart of accounts entry %s: %w", m.Code, err)
	}
	return nil
}

func scanAccountRow(row pgx.Row) (*domain.ChartOfAccountsEntry, error) {
	var m models.ChartOfAccountsEntry
	err := row.Scan(
		&m.Code, &m.Name, &m.NormalizedName, &m.Category, &m.Subcategory, &m.ParentCode,
		&m.DocumentTypes, &m.ExpectedSign, &m.IsSummary, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainChartOfAccountsEntry(m)
	return &d, nil
}

// FindEntryByCode fetches a single catalogue entry.
func (r *PgxAccountRepository) FindEntryByCode(ctx context.Context, code string) (*domain.ChartOfAccountsEntry, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE code = $1;`
	entry, err := scanAccountRow(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("chart of accounts entry %s: %w", code, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find chart of accounts entry %s: %w", code, err)
	}
	return entry, nil
}

// ListEntries returns the full catalogue ordered by code.
func (r *PgxAccountRepository) ListEntries(ctx context.Context) ([]domain.ChartOfAccountsEntry, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts ORDER BY code;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list chart of accounts: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.ChartOfAccountsEntry, 0)
	for rows.Next() {
		entry, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chart of accounts row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating chart of accounts rows: %w", err)
	}
	return entries, nil
}
