package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/finance_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- MockAccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountStore = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string, tenantID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string, tenantID string) error {
	return m.Called(ctx, accountID, tenantID).Error(0)
}

func (m *MockAccountRepository) FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID string, tenantID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, now time.Time) error {
	return m.Called(ctx, tx, accountID, balance, now).Error(0)
}

// --- MockTransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionReader = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string, tenantID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, tenantID string, filter domain.TransactionFilter) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Int(1), args.Error(2)
}

// --- MockUserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.IdentityStore = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ResolveUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- MockTenantRepository ---

type MockTenantRepository struct {
	mock.Mock
}

var _ portsrepo.TenantStore = (*MockTenantRepository)(nil)

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) UpdateTenantName(ctx context.Context, tenantID string, name string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListTenantsForUser(ctx context.Context, userID string) ([]domain.TenantWithRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TenantWithRole), args.Error(1)
}

// --- MockMembershipRepository ---

type MockMembershipRepository struct {
	mock.Mock
}

var _ portsrepo.MembershipStore = (*MockMembershipRepository)(nil)

func (m *MockMembershipRepository) FindMembership(ctx context.Context, tenantID, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListMembers(ctx context.Context, tenantID string) ([]domain.MemberDetail, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberDetail), args.Error(1)
}

func (m *MockMembershipRepository) CreateMembership(ctx context.Context, membership domain.Membership) error {
	return m.Called(ctx, membership).Error(0)
}

func (m *MockMembershipRepository) UpdateMemberRole(ctx context.Context, tenantID, userID string, role domain.Role) (*domain.Membership, error) {
	args := m.Called(ctx, tenantID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) DeleteMembership(ctx context.Context, tenantID, userID string) error {
	return m.Called(ctx, tenantID, userID).Error(0)
}

// --- MockTokenVerifier ---

type MockTokenVerifier struct {
	mock.Mock
}

var _ portssvc.TokenVerifier = (*MockTokenVerifier)(nil)

func (m *MockTokenVerifier) Verify(token string) (*domain.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenClaims), args.Error(1)
}

// authCtxWithRole builds an authorization context for tenant "t-1".
func authCtxWithRole(role domain.Role) *domain.AuthorizationContext {
	return &domain.AuthorizationContext{
		User:   domain.User{UserID: "u-self", ExternalID: "ext-self"},
		Tenant: domain.Tenant{TenantID: "t-1", Name: "Household"},
		Role:   role,
	}
}
