package handlers_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/SscSPs/finance_planner/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, authCtx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, authCtx *domain.AuthorizationContext, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, authCtx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, authCtx *domain.AuthorizationContext) ([]domain.Account, error) {
	args := m.Called(ctx, authCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, authCtx *domain.AuthorizationContext, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, authCtx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, authCtx *domain.AuthorizationContext, accountID string) error {
	return m.Called(ctx, authCtx, accountID).Error(0)
}

// --- Mock LedgerService ---

type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvc = (*MockLedgerService)(nil)

func (m *MockLedgerService) CreateTransaction(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, authCtx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) CreateTransactionBatch(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.BatchCreateTransactionsRequest) (*domain.BatchResult, error) {
	args := m.Called(ctx, authCtx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

func (m *MockLedgerService) UpdateTransaction(ctx context.Context, authCtx *domain.AuthorizationContext, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, authCtx, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) DeleteTransaction(ctx context.Context, authCtx *domain.AuthorizationContext, transactionID string) error {
	return m.Called(ctx, authCtx, transactionID).Error(0)
}

// --- Mock TransactionReader ---

type MockTransactionReader struct {
	mock.Mock
}

var _ portssvc.TransactionReaderSvc = (*MockTransactionReader)(nil)

func (m *MockTransactionReader) GetTransaction(ctx context.Context, authCtx *domain.AuthorizationContext, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, authCtx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) ListTransactions(ctx context.Context, authCtx *domain.AuthorizationContext, params dto.ListTransactionsParams) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, authCtx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Int(1), args.Error(2)
}

// --- Mock TenantService ---

type MockTenantService struct {
	mock.Mock
}

var _ portssvc.TenantSvcFacade = (*MockTenantService)(nil)

func (m *MockTenantService) GetCurrentTenant(ctx context.Context, authCtx *domain.AuthorizationContext) (*domain.Tenant, error) {
	args := m.Called(ctx, authCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantService) ListMembers(ctx context.Context, authCtx *domain.AuthorizationContext) ([]domain.MemberDetail, error) {
	args := m.Called(ctx, authCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberDetail), args.Error(1)
}

func (m *MockTenantService) ListUserTenants(ctx context.Context, user *domain.User) ([]domain.TenantWithRole, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TenantWithRole), args.Error(1)
}

func (m *MockTenantService) UpdateTenant(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.UpdateTenantRequest) (*domain.Tenant, error) {
	args := m.Called(ctx, authCtx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantService) InviteMember(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.InviteMemberRequest) (*domain.MemberDetail, error) {
	args := m.Called(ctx, authCtx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberDetail), args.Error(1)
}

func (m *MockTenantService) UpdateMemberRole(ctx context.Context, authCtx *domain.AuthorizationContext, userID string, req dto.UpdateMemberRoleRequest) (*domain.MemberDetail, error) {
	args := m.Called(ctx, authCtx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberDetail), args.Error(1)
}

func (m *MockTenantService) RemoveMember(ctx context.Context, authCtx *domain.AuthorizationContext, userID string) error {
	return m.Called(ctx, authCtx, userID).Error(0)
}

// --- in-memory directory behind the real authorization gate ---

// directory holds users, tenants and memberships for the gate. Users are
// created on first sight like the Postgres store does.
type directory struct {
	mu          sync.Mutex
	users       map[string]domain.User // by external id
	tenants     map[string]domain.Tenant
	memberships map[string]domain.Role // tenantID + "/" + userID
}

var (
	_ portsrepo.IdentityStore    = (*directory)(nil)
	_ portsrepo.TenantStore      = (*directory)(nil)
	_ portsrepo.MembershipReader = (*directory)(nil)
)

func newDirectory() *directory {
	return &directory{
		users:       map[string]domain.User{},
		tenants:     map[string]domain.Tenant{},
		memberships: map[string]domain.Role{},
	}
}

func (d *directory) addMember(tenantID, externalID string, role domain.Role) {
	if _, ok := d.tenants[tenantID]; !ok {
		d.tenants[tenantID] = domain.Tenant{TenantID: tenantID, Name: "Tenant " + tenantID}
	}
	u, _ := d.ResolveUserByExternalID(context.Background(), externalID)
	d.memberships[tenantID+"/"+u.UserID] = role
}

func (d *directory) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.UserID == userID {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (d *directory) FindUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[externalID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (d *directory) ResolveUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[externalID]
	if !ok {
		u = domain.User{UserID: "user-" + externalID, ExternalID: externalID}
		d.users[externalID] = u
	}
	return &u, nil
}

func (d *directory) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	t, ok := d.tenants[tenantID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (d *directory) UpdateTenantName(ctx context.Context, tenantID string, name string) (*domain.Tenant, error) {
	return nil, apperrors.ErrNotFound
}

func (d *directory) ListTenantsForUser(ctx context.Context, userID string) ([]domain.TenantWithRole, error) {
	return nil, nil
}

func (d *directory) FindMembership(ctx context.Context, tenantID, userID string) (*domain.Membership, error) {
	role, ok := d.memberships[tenantID+"/"+userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &domain.Membership{TenantID: tenantID, UserID: userID, Role: role}, nil
}

func (d *directory) ListMembers(ctx context.Context, tenantID string) ([]domain.MemberDetail, error) {
	return nil, nil
}

// signToken issues an HS256 token the way the external identity service does.
func signToken(secret, subject, tenantID string, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	if tenantID != "" {
		claims["tenantId"] = tenantID
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return signed
}
