package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finparse/statement-pipeline/internal/apperrors"
	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/core/pipeline"
	portsrepo "github.com/finparse/statement-pipeline/internal/core/ports/repositories"
	portssvc "github.com/finparse/statement-pipeline/internal/core/ports/services"
	"github.com/finparse/statement-pipeline/internal/dto"
)

// catalogService manages the chart-of-accounts and validation rule
// catalogues. During extraction runs these are read-only snapshots.
type catalogService struct {
	accountRepo portsrepo.AccountRepository
	ruleRepo    portsrepo.RuleRepository
}

// NewCatalogService creates the catalogue service.
func NewCatalogService(accountRepo portsrepo.AccountRepository, ruleRepo portsrepo.RuleRepository) portssvc.CatalogSvcFacade {
	return &catalogService{accountRepo: accountRepo, ruleRepo: ruleRepo}
}

func (s *catalogService) ListAccounts(ctx context.Context) ([]domain.ChartOfAccountsEntry, error) {
	return s.accountRepo.ListEntries(ctx)
}

func (s *catalogService) CreateAccount(ctx context.Context, req dto.CreateAccountEntryRequest) (*domain.ChartOfAccountsEntry, error) {
	if !domain.IsKnownCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, req.Category)
	}
	if !domain.IsValidSubcategory(req.Category, req.Subcategory) {
		return nil, fmt.Errorf("%w: invalid subcategory %q for category %q", apperrors.ErrValidation, req.Subcategory, req.Category)
	}
	for _, dt := range req.DocumentTypes {
		if !dt.IsValid() {
			return nil, fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, dt)
		}
	}
	sign := req.ExpectedSign
	if sign == "" {
		sign = domain.SignEither
	}

	now := time.Now().UTC()
	entry := domain.ChartOfAccountsEntry{
		Code:           req.Code,
		Name:           req.Name,
		NormalizedName: pipeline.NormalizeName(req.Name),
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		ParentCode:     req.ParentCode,
		DocumentTypes:  req.DocumentTypes,
		ExpectedSign:   sign,
		IsSummary:      req.IsSummary,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: req.UserID,
		},
	}
	if err := s.accountRepo.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *catalogService) ListRules(ctx context.Context) ([]domain.ValidationRule, error) {
	return s.ruleRepo.ListActiveRules(ctx)
}

// Snapshot loads both catalogues for an extraction run. The caller treats the
// returned slices as immutable; they are shared across workers without locks.
func (s *catalogService) Snapshot(ctx context.Context) (*dto.CatalogSnapshot, error) {
	accounts, err := s.accountRepo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load chart of accounts: %w", err)
	}
	rules, err := s.ruleRepo.ListActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("load validation rules: %w", err)
	}
	return &dto.CatalogSnapshot{Accounts: accounts, Rules: rules}, nil
}
