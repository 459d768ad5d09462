package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/SscSPs/finance_planner/internal/core/services"
	"github.com/SscSPs/finance_planner/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	member   *domain.AuthorizationContext
	now      time.Time
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.now = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	suite.service = services.NewAccountService(suite.mockRepo,
		services.WithAccountClock(func() time.Time { return suite.now }))
	suite.member = authCtxWithRole(domain.RoleMember)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "  Joint Checking ",
		AccountType:    domain.Checking,
		InitialBalance: dec("1000.00"),
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.TenantID == "t-1" && acc.UserID == "u-self" && acc.Name == "Joint Checking"
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.member, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NoError(uuid.Validate(account.AccountID))
	suite.Equal(domain.Checking, account.AccountType)
	suite.True(account.Balance.Equal(decimal.RequireFromString("1000")))
	suite.Equal(suite.now, account.CreatedAt)
	suite.Equal(suite.now, account.UpdatedAt)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsBalanceToZero() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.member, dto.CreateAccountRequest{
		Name: "Cash", AccountType: domain.Other,
	})

	suite.Require().NoError(err)
	suite.True(account.Balance.IsZero())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsInvalidInput() {
	tests := []struct {
		name string
		req  dto.CreateAccountRequest
	}{
		{"blank name", dto.CreateAccountRequest{Name: "   ", AccountType: domain.Savings}},
		{"unknown type", dto.CreateAccountRequest{Name: "x", AccountType: "crypto"}},
		{"negative balance", dto.CreateAccountRequest{Name: "x", AccountType: domain.Loan, InitialBalance: dec("-1.00")}},
		{"three decimals", dto.CreateAccountRequest{Name: "x", AccountType: domain.Loan, InitialBalance: dec("1.001")}},
		{"balance out of range", dto.CreateAccountRequest{Name: "x", AccountType: domain.Loan, InitialBalance: dec("10000000000000.00")}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			account, err := suite.service.CreateAccount(context.Background(), suite.member, tt.req)
			suite.Nil(account)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ViewerForbidden() {
	account, err := suite.service.CreateAccount(context.Background(), authCtxWithRole(domain.RoleViewer),
		dto.CreateAccountRequest{Name: "x", AccountType: domain.Checking})

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(expectedErr).Once()

	account, err := suite.service.CreateAccount(ctx, suite.member, dto.CreateAccountRequest{
		Name: "Test Error", AccountType: domain.Savings,
	})

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, expectedErr)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccount_ScopedToTenant() {
	ctx := context.Background()
	testID := uuid.NewString()
	expected := &domain.Account{AccountID: testID, TenantID: "t-1", Name: "Found"}

	suite.mockRepo.On("FindAccountByID", ctx, testID, "t-1").Return(expected, nil).Once()

	account, err := suite.service.GetAccount(ctx, authCtxWithRole(domain.RoleViewer), testID)

	suite.Require().NoError(err)
	suite.Equal(expected, account)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccount_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, testID, "t-1").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccount(ctx, suite.member, testID)

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_Success() {
	ctx := context.Background()
	expected := []domain.Account{
		{AccountID: uuid.NewString(), Name: "Brokerage"},
		{AccountID: uuid.NewString(), Name: "Checking"},
	}

	suite.mockRepo.On("ListAccounts", ctx, "t-1").Return(expected, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.member)

	suite.Require().NoError(err)
	suite.Equal(expected, accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccounts", ctx, "t-1").Return(nil, assert.AnError).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.member)

	suite.Nil(accounts)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NameAndType() {
	ctx := context.Background()
	testID := uuid.NewString()
	original := &domain.Account{
		AccountID:   testID,
		TenantID:    "t-1",
		Name:        "Old",
		AccountType: domain.Checking,
		Balance:     decimal.RequireFromString("42.00"),
		AuditFields: domain.AuditFields{CreatedAt: suite.now.Add(-time.Hour), UpdatedAt: suite.now.Add(-time.Hour)},
	}
	newName := "Emergency Fund"
	newType := domain.Savings

	suite.mockRepo.On("FindAccountByID", ctx, testID, "t-1").Return(original, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountID == testID && acc.Name == newName && acc.AccountType == newType &&
			acc.Balance.Equal(decimal.RequireFromString("42.00")) && acc.UpdatedAt.Equal(suite.now)
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, suite.member, testID, dto.UpdateAccountRequest{
		Name: &newName, AccountType: &newType,
	})

	suite.Require().NoError(err)
	suite.Equal(newName, account.Name)
	suite.Equal(newType, account.AccountType)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_OtherTenantNotFound() {
	ctx := context.Background()
	name := "x"

	suite.mockRepo.On("FindAccountByID", ctx, "acc-x", "t-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.member, "acc-x", dto.UpdateAccountRequest{Name: &name})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("DeleteAccount", ctx, testID, "t-1").Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteAccount(ctx, suite.member, testID))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_ViewerForbidden() {
	err := suite.service.DeleteAccount(context.Background(), authCtxWithRole(domain.RoleViewer), "acc-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
