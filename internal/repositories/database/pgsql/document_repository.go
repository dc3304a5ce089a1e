package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finparse/statement-pipeline/internal/apperrors"
	"github.com/finparse/statement-pipeline/internal/core/domain"
	portsrepo "github.com/finparse/statement-pipeline/internal/core/ports/repositories"
	"github.com/finparse/statement-pipeline/internal/models"
	"github.com/finparse/statement-pipeline/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for document headers.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepository
var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

const documentColumns = `
	document_id, entity_id, entity_name, document_type,
	period_start, period_end, accounting_basis, report_date,
	status, failure_reason, totals_summary,
	created_at, created_by, last_updated_at, last_updated_by
`

// CreateDocument inserts a new header in pending state. Re-submitting an
// existing document ID resets it to pending and clears the prior run's
// failure reason and totals (replace semantics).
func (r *PgxDocumentRepository) CreateDocument(ctx context.Context, header domain.DocumentHeader) error {
	modelDoc, err := mapping.ToModelDocumentHeader(header)
	if err != nil {
		return fmt.Errorf("failed to map document %s: %w", header.DocumentID, err)
	}

	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (document_id) DO UPDATE SET
			entity_id = EXCLUDED.entity_id,
			entity_name = EXCLUDED.entity_name,
			document_type = EXCLUDED.document_type,
			period_start = EXCLUDED.period_start,
			period_end = EXCLUDED.period_end,
			accounting_basis = EXCLUDED.accounting_basis,
			report_date = EXCLUDED.report_date,
			status = EXCLUDED.status,
			failure_reason = '',
			totals_summary = EXCLUDED.totals_summary,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = r.Pool.Exec(ctx, query,
		modelDoc.DocumentID,
		modelDoc.EntityID,
		modelDoc.EntityName,
		modelDoc.DocumentType,
		modelDoc.PeriodStart,
		modelDoc.PeriodEnd,
		modelDoc.AccountingBasis,
		modelDoc.ReportDate,
		modelDoc.Status,
		modelDoc.FailureReason,
		modelDoc.TotalsSummary,
		modelDoc.CreatedAt,
		modelDoc.CreatedBy,
		modelDoc.LastUpdatedAt,
		modelDoc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", modelDoc.DocumentID, err)
	}
	return nil
}

func scanDocumentRow(row pgx.Row) (*domain.DocumentHeader, error) {
	var m models.DocumentHeader
	err := row.Scan(
		&m.DocumentID,
		&m.EntityID,
		&m.EntityName,
		&m.DocumentType,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.AccountingBasis,
		&m.ReportDate,
		&m.Status,
		&m.FailureReason,
		&m.TotalsSummary,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d, err := mapping.ToDomainDocumentHeader(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindDocumentByID fetches a single document header.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.DocumentHeader, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	doc, err := scanDocumentRow(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", documentID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return doc, nil
}

// ListDocuments returns document headers ordered by creation time, newest first.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, limit int, offset int) ([]domain.DocumentHeader, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY created_at DESC, document_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.DocumentHeader, 0)
	for rows.Next() {
		doc, err := scanDocumentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating document rows: %w", err)
	}
	return docs, nil
}

// UpdateDocumentStatus transitions the document state machine. The current
// status is read and checked inside a transaction so concurrent workers
// cannot race a document into an illegal state.
func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, failureReason string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM documents WHERE document_id = $1 FOR UPDATE;`, documentID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("document %s: %w", documentID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to lock document %s: %w", documentID, err)
	}

	if !domain.DocumentStatus(current).CanTransitionTo(status) {
		return fmt.Errorf("%w: document %s cannot move from %s to %s", apperrors.ErrValidation, documentID, current, status)
	}

	_, err = tx.Exec(ctx, `
		UPDATE documents
		SET status = $2, failure_reason = $3, last_updated_at = $4
		WHERE document_id = $1;
	`, documentID, string(status), failureReason, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update status of document %s: %w", documentID, err)
	}

	return r.Commit(ctx, tx)
}
