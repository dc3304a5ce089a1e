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

type PgxRawLineRepository struct {
	BaseRepository
}

// newPgxRawLineRepository creates a new repository for staged raw lines. It
// doubles as the raw line source for the pipeline: the staged table is the
// default extractor boundary.
func newPgxRawLineRepository(pool *pgxpool.Pool) *PgxRawLineRepository {
	return &PgxRawLineRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRawLineRepository implements both the repository and source ports
var _ portsrepo.RawLineRepository = (*PgxRawLineRepository)(nil)
var _ portsrepo.RawLineSource = (*PgxRawLineRepository)(nil)

// ReplaceRawLines swaps out a document's staged lines in one transaction.
func (r *PgxRawLineRepository) ReplaceRawLines(ctx context.Context, documentID string, lines []domain.RawLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM raw_lines WHERE document_id = $1;`, documentID); err != nil {
		return apperrors.NewAppError(500, "failed to clear raw lines for document "+documentID, err)
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO raw_lines (line_id, document_id, text, page_number, x0, y0, x1, y1, column_values, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		m := mapping.ToModelRawLine(line)
		batch.Queue(query, m.LineID, m.DocumentID, m.Text, m.PageNumber, m.X0, m.Y0, m.X1, m.Y1, m.ColumnValues, m.Position)
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
		return apperrors.NewAppError(500, "failed to insert raw lines for document "+documentID, batchErr)
	}

	return r.Commit(ctx, tx)
}

// FindRawLinesByDocumentID returns a document's staged lines in position order.
func (r *PgxRawLineRepository) FindRawLinesByDocumentID(ctx context.Context, documentID string) ([]domain.RawLine, error) {
	query := `
		SELECT line_id, document_id, text, page_number, x0, y0, x1, y1, column_values, position
		FROM raw_lines WHERE document_id = $1 ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw lines of document %s: %w", documentID, err)
	}
	defer rows.Close()

	lines := make([]domain.RawLine, 0)
	for rows.Next() {
		var m models.RawLine
		err := rows.Scan(&m.LineID, &m.DocumentID, &m.Text, &m.PageNumber, &m.X0, &m.Y0, &m.X1, &m.Y1, &m.ColumnValues, &m.Position)
		if err != nil {
			return nil, fmt.Errorf("failed to scan raw line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainRawLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating raw line rows: %w", err)
	}
	return lines, nil
}

// FetchRawLines satisfies the raw line source port by reading the staged table.
func (r *PgxRawLineRepository) FetchRawLines(ctx context.Context, documentID string) ([]domain.RawLine, error) {
	return r.FindRawLinesByDocumentID(ctx, documentID)
}
