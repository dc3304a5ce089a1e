package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finparse/statement-pipeline/internal/apperrors"
	"github.com/finparse/statement-pipeline/internal/core/domain"
	portsrepo "github.com/finparse/statement-pipeline/internal/core/ports/repositories"
	portssvc "github.com/finparse/statement-pipeline/internal/core/ports/services"
	"github.com/finparse/statement-pipeline/internal/dto"
)

// documentService manages document submission and read access.
type documentService struct {
	documentRepo   portsrepo.DocumentRepository
	rawLineRepo    portsrepo.RawLineRepository
	extractionRepo portsrepo.ExtractionRepository
	ruleRepo       portsrepo.RuleRepository
}

// NewDocumentService creates the document service.
func NewDocumentService(
	documentRepo portsrepo.DocumentRepository,
	rawLineRepo portsrepo.RawLineRepository,
	extractionRepo portsrepo.ExtractionRepository,
	ruleRepo portsrepo.RuleRepository,
) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo:   documentRepo,
		rawLineRepo:    rawLineRepo,
		extractionRepo: extractionRepo,
		ruleRepo:       ruleRepo,
	}
}

// SubmitDocument stages a raw line stream and creates (or resets) the
// document header in pending state. Positions are assigned in submission
// order; the extractor's line ordering must be preserved end to end.
func (s *documentService) SubmitDocument(ctx context.Context, req dto.SubmitDocumentRequest) (*domain.DocumentHeader, error) {
	if !req.DocumentType.IsValid() {
		return nil, fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, req.DocumentType)
	}
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: document has no lines", apperrors.ErrValidation)
	}

	documentID := req.DocumentID
	if documentID == "" {
		documentID = uuid.NewString()
	}

	now := time.Now().UTC()
	header := domain.DocumentHeader{
		DocumentID:      documentID,
		DocumentType:    req.DocumentType,
		AccountingBasis: domain.BasisUnknown,
		Status:          domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.SubmittedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: req.SubmittedBy,
		},
	}

	lines := make([]domain.RawLine, len(req.Lines))
	for i, in := range req.Lines {
		lines[i] = domain.RawLine{
			LineID:       uuid.NewString(),
			DocumentID:   documentID,
			Text:         in.Text,
			PageNumber:   in.PageNumber,
			BoundingBox:  in.BoundingBox,
			ColumnValues: in.ColumnValues,
			Position:     i,
		}
	}

	if err := s.documentRepo.CreateDocument(ctx, header); err != nil {
		return nil, err
	}
	if err := s.rawLineRepo.ReplaceRawLines(ctx, documentID, lines); err != nil {
		return nil, err
	}
	return &header, nil
}

func (s *documentService) GetDocument(ctx context.Context, documentID string) (*domain.DocumentHeader, error) {
	return s.documentRepo.FindDocumentByID(ctx, documentID)
}

func (s *documentService) ListDocuments(ctx context.Context, limit, offset int) ([]domain.DocumentHeader, error) {
	return s.documentRepo.ListDocuments(ctx, limit, offset)
}

func (s *documentService) GetLineItems(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	if _, err := s.documentRepo.FindDocumentByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.extractionRepo.FindLineItemsByDocumentID(ctx, documentID)
}

func (s *documentService) GetValidationResults(ctx context.Context, documentID string) ([]domain.ValidationResult, error) {
	if _, err := s.documentRepo.FindDocumentByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.ruleRepo.FindResultsByDocumentID(ctx, documentID)
}
