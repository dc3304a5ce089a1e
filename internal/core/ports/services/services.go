package services

import (
	"context"

	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/dto"
)

// DocumentSvcFacade exposes document submission and read access.
type DocumentSvcFacade interface {
	SubmitDocument(ctx context.Context, req dto.SubmitDocumentRequest) (*domain.DocumentHeader, error)
	GetDocument(ctx context.Context, documentID string) (*domain.DocumentHeader, error)
	ListDocuments(ctx context.Context, limit, offset int) ([]domain.DocumentHeader, error)
	GetLineItems(ctx context.Context, documentID string) ([]domain.LineItem, error)
	GetValidationResults(ctx context.Context, documentID string) ([]domain.ValidationResult, error)
}

// ExtractionSvcFacade runs the extraction pipeline.
type ExtractionSvcFacade interface {
	// RunDocument processes one document end to end: pipeline stages,
	// transactional persistence, validation, terminal status.
	RunDocument(ctx context.Context, documentID string) (*domain.DocumentHeader, error)
	// RunBatch processes documents concurrently across the worker pool.
	// Documents are isolated: one failure never affects another. The batch
	// honors ctx cancellation at document boundaries.
	RunBatch(ctx context.Context, documentIDs []string) []dto.BatchResult
}

// CatalogSvcFacade exposes the read-only reference catalogues.
type CatalogSvcFacade interface {
	ListAccounts(ctx context.Context) ([]domain.ChartOfAccountsEntry, error)
	CreateAccount(ctx context.Context, req dto.CreateAccountEntryRequest) (*domain.ChartOfAccountsEntry, error)
	ListRules(ctx context.Context) ([]domain.ValidationRule, error)
	// Snapshot loads both catalogues for a run. The returned slices are
	// never mutated afterwards and are safe for lock-free concurrent reads.
	Snapshot(ctx context.Context) (*dto.CatalogSnapshot, error)
}

// ServiceContainer bundles all service facades for handler wiring.
type ServiceContainer struct {
	Document   DocumentSvcFacade
	Extraction ExtractionSvcFacade
	Catalog    CatalogSvcFacade
}
