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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExtractionRepository struct {
	BaseRepository
}

// newPgxExtractionRepository creates the persistence writer for extractions.
func newPgxExtractionRepository(pool *pgxpool.Pool) portsrepo.ExtractionRepository {
	return &PgxExtractionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxExtractionRepository implements portsrepo.ExtractionRepository
var _ portsrepo.ExtractionRepository = (*PgxExtractionRepository)(nil)

// ReplaceDocumentExtraction commits one document's complete extraction inside
// a single transaction: prior line items, adjustments, reconciliation entries
// and validation results are deleted, the header is updated, and the new
// record set is batch-inserted. A uniqueness violation surfaces as
// apperrors.ErrDuplicate and rolls the whole document back.
func (r *PgxExtractionRepository) ReplaceDocumentExtraction(ctx context.Context, extraction *domain.Extraction) error {
	docID := extraction.Header.DocumentID

	modelDoc, err := mapping.ToModelDocumentHeader(extraction.Header)
	if err != nil {
		return fmt.Errorf("failed to map document %s: %w", docID, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// 1. Clear the prior run's records. Parent references among line items
	// make ordering matter only within that table, handled by a single delete.
	for _, table := range []string{"validation_results", "reconciliation_entries", "document_adjustments", "line_items"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE document_id = $1;`, docID); err != nil {
			return apperrors.NewAppError(500, "failed to clear "+table+" for document "+docID, err)
		}
	}

	// 2. Refresh the header with the extracted metadata and totals.
	_, err = tx.Exec(ctx, `
		UPDATE documents
		SET entity_id = $2, entity_name = $3,
			period_start = $4, period_end = $5,
			accounting_basis = $6, report_date = $7,
			totals_summary = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE document_id = $1;
	`,
		modelDoc.DocumentID,
		modelDoc.EntityID,
		modelDoc.EntityName,
		modelDoc.PeriodStart,
		modelDoc.PeriodEnd,
		modelDoc.AccountingBasis,
		modelDoc.ReportDate,
		modelDoc.TotalsSummary,
		modelDoc.LastUpdatedAt,
		modelDoc.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update header of document "+docID, err)
	}

	// 3. Batch-insert the new record set.
	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO line_items (
			line_item_id, document_id, account_code, account_name,
			section, category, subcategory,
			amount, period_amount, period_percentage,
			position, is_total, parent_line_id,
			match_strategy, match_confidence, needs_review,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	for _, item := range extraction.Items {
		m := mapping.ToModelLineItem(item)
		batch.Queue(itemQuery,
			m.LineItemID, m.DocumentID, m.AccountCode, m.AccountName,
			m.Section, m.Category, m.Subcategory,
			m.Amount, m.PeriodAmount, m.PeriodPercentage,
			m.Position, m.IsTotal, m.ParentLineID,
			m.MatchStrategy, m.MatchConfidence, m.NeedsReview,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	adjQuery := `
		INSERT INTO document_adjustments (adjustment_id, document_id, description, amount, section, position)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, adj := range extraction.Adjustments {
		m := mapping.ToModelAdjustment(adj)
		batch.Queue(adjQuery, m.AdjustmentID, m.DocumentID, m.Description, m.Amount, m.Section, m.Position)
	}

	recQuery := `
		INSERT INTO reconciliation_entries (entry_id, document_id, description, amount, position)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, rec := range extraction.Reconciliations {
		m := mapping.ToModelReconciliationEntry(rec)
		batch.Queue(recQuery, m.EntryID, m.DocumentID, m.Description, m.Amount, m.Position)
	}

	results := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil && batchErr == nil {
			batchErr = err
		}
	}
	if err := results.Close(); err != nil && batchErr == nil {
		batchErr = err
	}
	if batchErr != nil {
		var pgErr *pgconn.PgError
		if errors.As(batchErr, &pgErr) && pgErr.Code == "23505" { // unique violation
			return fmt.Errorf("%w: document %s extraction violates line item uniqueness", apperrors.ErrDuplicate, docID)
		}
		return apperrors.NewAppError(500, "failed to insert extraction records for document "+docID, batchErr)
	}

	return r.Commit(ctx, tx)
}

const lineItemColumns = `
	line_item_id, document_id, account_code, account_name,
	section, category, subcategory,
	amount, period_amount, period_percentage,
	position, is_total, parent_line_id,
	match_strategy, match_confidence, needs_review,
	created_at, created_by, last_updated_at, last_updated_by
`

// FindLineItemsByDocumentID returns a document's line items in position order.
func (r *PgxExtractionRepository) FindLineItemsByDocumentID(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM line_items WHERE document_id = $1 ORDER BY position;`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items of document %s: %w", documentID, err)
	}
	defer rows.Close()

	items := make([]domain.LineItem, 0)
	for rows.Next() {
		var m models.LineItem
		err := rows.Scan(
			&m.LineItemID, &m.DocumentID, &m.AccountCode, &m.AccountName,
			&m.Section, &m.Category, &m.Subcategory,
			&m.Amount, &m.PeriodAmount, &m.PeriodPercentage,
			&m.Position, &m.IsTotal, &m.ParentLineID,
			&m.MatchStrategy, &m.MatchConfidence, &m.NeedsReview,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		items = append(items, mapping.ToDomainLineItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating line item rows: %w", err)
	}
	return items, nil
}

// FindAdjustmentsByDocumentID returns a document's adjustments in position order.
func (r *PgxExtractionRepository) FindAdjustmentsByDocumentID(ctx context.Context, documentID string) ([]domain.Adjustment, error) {
	query := `
		SELECT adjustment_id, document_id, description, amount, section, position
		FROM document_adjustments WHERE document_id = $1 ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments of document %s: %w", documentID, err)
	}
	defer rows.Close()

	adjustments := make([]domain.Adjustment, 0)
	for rows.Next() {
		var m models.Adjustment
		if err := rows.Scan(&m.AdjustmentID, &m.DocumentID, &m.Description, &m.Amount, &m.Section, &m.Position); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment row: %w", err)
		}
		adjustments = append(adjustments, mapping.ToDomainAdjustment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating adjustment rows: %w", err)
	}
	return adjustments, nil
}

// FindReconciliationsByDocumentID returns a document's reconciliation entries in position order.
func (r *PgxExtractionRepository) FindReconciliationsByDocumentID(ctx context.Context, documentID string) ([]domain.ReconciliationEntry, error) {
	query := `
		SELECT entry_id, document_id, description, amount, position
		FROM reconciliation_entries WHERE document_id = $1 ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliation entries of document %s: %w", documentID, err)
	}
	defer rows.Close()

	entries := make([]domain.ReconciliationEntry, 0)
	for rows.Next() {
		var m models.ReconciliationEntry
		if err := rows.Scan(&m.EntryID, &m.DocumentID, &m.Description, &m.Amount, &m.Position); err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation row: %w", err)
		}
		entries = append(entries, mapping.ToDomainReconciliationEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating reconciliation rows: %w", err)
	}
	return entries, nil
}
