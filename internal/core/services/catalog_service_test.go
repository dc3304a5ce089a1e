package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finparse/statement-pipeline/internal/apperrors"
	"github.com/finparse/statement-pipeline/internal/core/domain"
	portssvc "github.com/finparse/statement-pipeline/internal/core/ports/services"
	"github.com/finparse/statement-pipeline/internal/core/services"
	"github.com/finparse/statement-pipeline/internal/dto"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	mockAccRep  *MockAccountRepository
	mockRuleRep *MockRuleRepository
	service     portssvc.CatalogSvcFacade
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockAccRep = new(MockAccountRepository)
	suite.mockRuleRep = new(MockRuleRepository)
	suite.service = services.NewCatalogService(suite.mockAccRep, suite.mockRuleRep)
}

func (suite *CatalogServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountEntryRequest{
		Code:        "4010",
		Name:        "Base Rentals - Retail",
		Category:    "base_rental",
		Subcategory: "retail",
		UserID:      "tester",
	}

	suite.mockAccRep.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.ChartOfAccountsEntry) bool {
		return e.Code == "4010" &&
			e.NormalizedName == "base rentals retail" &&
			e.ExpectedSign == domain.SignEither &&
			e.IsActive &&
			e.CreatedBy == "tester"
	})).Return(nil).Once()

	entry, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("4010", entry.Code)
	suite.Equal(domain.SignEither, entry.ExpectedSign)
	suite.mockAccRep.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestCreateAccount_UnknownCategory() {
	ctx := context.Background()
	req := dto.CreateAccountEntryRequest{Code: "9999", Name: "Mystery", Category: "mystery_income"}

	entry, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccRep.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestCreateAccount_InvalidSubcategory() {
	ctx := context.Background()
	req := dto.CreateAccountEntryRequest{Code: "4010", Name: "Rentals", Category: "base_rental", Subcategory: "legal"}

	entry, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestCreateAccount_InvalidDocumentType() {
	ctx := context.Background()
	req := dto.CreateAccountEntryRequest{
		Code:          "4010",
		Name:          "Rentals",
		Category:      "base_rental",
		DocumentTypes: []domain.DocumentType{domain.DocumentType("LEDGER")},
	}

	entry, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountEntryRequest{Code: "4010", Name: "Rentals", Category: "base_rental"}

	suite.mockAccRep.On("SaveEntry", ctx, mock.AnythingOfType("domain.ChartOfAccountsEntry")).Return(apperrors.ErrDuplicate).Once()

	entry, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccRep.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestSnapshot_LoadsBothCatalogues() {
	ctx := context.Background()
	accounts := []domain.ChartOfAccountsEntry{{Code: "4000", Name: "Rental Income", Category: "base_rental"}}
	rules := []domain.ValidationRule{{RuleID: "noi", Formula: "net_operating_income = total_income - total_expense", IsActive: true}}

	suite.mockAccRep.On("ListEntries", ctx).Return(accounts, nil).Once()
	suite.mockRuleRep.On("ListActiveRules", ctx).Return(rules, nil).Once()

	snapshot, err := suite.service.Snapshot(ctx)

	suite.Require().NoError(err)
	suite.Equal(accounts, snapshot.Accounts)
	suite.Equal(rules, snapshot.Rules)
	suite.mockAccRep.AssertExpectations(suite.T())
	suite.mockRuleRep.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestSnapshot_AccountLoadError() {
	ctx := context.Background()
	suite.mockAccRep.On("ListEntries", ctx).Return(nil, assert.AnError).Once()

	snapshot, err := suite.service.Snapshot(ctx)

	suite.Require().Error(err)
	suite.Nil(snapshot)
	suite.mockRuleRep.AssertNotCalled(suite.T(), "ListActiveRules", mock.Anything)
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}
