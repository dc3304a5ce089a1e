package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/dto"
)

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) CreateDocument(ctx context.Context, header domain.DocumentHeader) error {
	args := m.Called(ctx, header)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.DocumentHeader, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentHeader), args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, limit int, offset int) ([]domain.DocumentHeader, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentHeader), args.Error(1)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, failureReason string, updatedAt time.Time) error {
	args := m.Called(ctx, documentID, status, failureReason, updatedAt)
	return args.Error(0)
}

// --- Mock ExtractionRepository ---
type MockExtractionRepository struct {
	mock.Mock
}

func (m *MockExtractionRepository) ReplaceDocumentExtraction(ctx context.Context, extraction *domain.Extraction) error {
	args := m.Called(ctx, extraction)
	return args.Error(0)
}

func (m *MockExtractionRepository) FindLineItemsByDocumentID(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockExtractionRepository) FindAdjustmentsByDocumentID(ctx context.Context, documentID string) ([]domain.Adjustment, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Adjustment), args.Error(1)
}

func (m *MockExtractionRepository) FindReconciliationsByDocumentID(ctx context.Context, documentID string) ([]domain.ReconciliationEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReconciliationEntry), args.Error(1)
}

// --- Mock RawLineRepository ---
type MockRawLineRepository struct {
	mock.Mock
}

func (m *MockRawLineRepository) ReplaceRawLines(ctx context.Context, documentID string, lines []domain.RawLine) error {
	args := m.Called(ctx, documentID, lines)
	return args.Error(0)
}

func (m *MockRawLineRepository) FindRawLinesByDocumentID(ctx context.Context, documentID string) ([]domain.RawLine, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawLine), args.Error(1)
}

// --- Mock RawLineSource ---
type MockRawLineSource struct {
	mock.Mock
}

func (m *MockRawLineSource) FetchRawLines(ctx context.Context, documentID string) ([]domain.RawLine, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawLine), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveEntry(ctx context.Context, entry domain.ChartOfAccountsEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAccountRepository) FindEntryByCode(ctx context.Context, code string) (*domain.ChartOfAccountsEntry, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccountsEntry), args.Error(1)
}

func (m *MockAccountRepository) ListEntries(ctx context.Context) ([]domain.ChartOfAccountsEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartOfAccountsEntry), args.Error(1)
}

// --- Mock RuleRepository ---
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) SaveRule(ctx context.Context, rule domain.ValidationRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) ListActiveRules(ctx context.Context) ([]domain.ValidationRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationRule), args.Error(1)
}

func (m *MockRuleRepository) SaveValidationResults(ctx context.Context, results []domain.ValidationResult) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockRuleRepository) FindResultsByDocumentID(ctx context.Context, documentID string) ([]domain.ValidationResult, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationResult), args.Error(1)
}

// --- Mock CatalogSvcFacade ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListAccounts(ctx context.Context) ([]domain.ChartOfAccountsEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartOfAccountsEntry), args.Error(1)
}

func (m *MockCatalogService) CreateAccount(ctx context.Context, req dto.CreateAccountEntryRequest) (*domain.ChartOfAccountsEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccountsEntry), args.Error(1)
}

func (m *MockCatalogService) ListRules(ctx context.Context) ([]domain.ValidationRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationRule), args.Error(1)
}

func (m *MockCatalogService) Snapshot(ctx context.Context) (*dto.CatalogSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CatalogSnapshot), args.Error(1)
}
