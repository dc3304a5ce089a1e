package repositories

import (
	"context"
	"time"

	"github.com/finparse/statement-pipeline/internal/core/domain"
)

// DocumentRepository manages document headers and their processing status.
type DocumentRepository interface {
	// CreateDocument inserts a new header in pending state. Re-submission of
	// an existing document resets it to pending (replace semantics).
	CreateDocument(ctx context.Context, header domain.DocumentHeader) error
	FindDocumentByID(ctx context.Context, documentID string) (*domain.DocumentHeader, error)
	ListDocuments(ctx context.Context, limit int, offset int) ([]domain.DocumentHeader, error)
	// UpdateDocumentStatus transitions the state machine. It rejects
	// transitions the domain disallows with apperrors.ErrValidation.
	UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, failureReason string, updatedAt time.Time) error
}

// ExtractionRepository is the persistence writer: it commits one document's
// complete extraction as a single all-or-nothing transaction.
type ExtractionRepository interface {
	// ReplaceDocumentExtraction deletes the document's prior record set and
	// inserts the new one inside one transaction. Either every record is
	// committed or none are. A uniqueness violation at insert time aborts
	// this document only and surfaces as apperrors.ErrDuplicate.
	ReplaceDocumentExtraction(ctx context.Context, extraction *domain.Extraction) error
	FindLineItemsByDocumentID(ctx context.Context, documentID string) ([]domain.LineItem, error)
	FindAdjustmentsByDocumentID(ctx context.Context, documentID string) ([]domain.Adjustment, error)
	FindReconciliationsByDocumentID(ctx context.Context, documentID string) ([]domain.ReconciliationEntry, error)
}

// RawLineRepository stages the extractor's output for a document.
type RawLineRepository interface {
	ReplaceRawLines(ctx context.Context, documentID string, lines []domain.RawLine) error
	FindRawLinesByDocumentID(ctx context.Context, documentID string) ([]domain.RawLine, error)
}

// RawLineSource is the I/O boundary to the external text/table extractor.
// The staged-table implementation reads what the orchestration layer wrote;
// other implementations may call out over the network, hence the context
// with its deadline.
type RawLineSource interface {
	FetchRawLines(ctx context.Context, documentID string) ([]domain.RawLine, error)
}
