package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/SscSPs/finance_planner/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountStore
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the clock used for audit timestamps.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountStore, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := s.RequireWrite(ctx, authCtx, "create accounts"); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
	}
	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	balance := decimal.Zero
	if req.InitialBalance != nil {
		balance = *req.InitialBalance
		if balance.IsNegative() {
			return nil, fmt.Errorf("%w: initial balance must not be negative", apperrors.ErrValidation)
		}
		if !domain.HasValidScale(balance) {
			return nil, fmt.Errorf("%w: initial balance must have at most %d decimal places", apperrors.ErrValidation, domain.AmountScale)
		}
		if !domain.InAmountRange(balance) {
			return nil, fmt.Errorf("%w: initial balance must be less than %s", apperrors.ErrValidation, domain.MaxAbsAmount)
		}
	}

	now := s.now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    authCtx.TenantID(),
		UserID:      authCtx.UserID(),
		Name:        name,
		AccountType: req.AccountType,
		Balance:     balance,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccount(ctx context.Context, authCtx *domain.AuthorizationContext, accountID string) (*domain.Account, error) {
	if err := s.RequireRead(authCtx); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID, authCtx.TenantID())
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, authCtx *domain.AuthorizationContext) ([]domain.Account, error) {
	if err := s.RequireRead(authCtx); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, authCtx.TenantID())
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, authCtx *domain.AuthorizationContext, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	if err := s.RequireWrite(ctx, authCtx, "update accounts"); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID, authCtx.TenantID())
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to find account for update", slog.String("account_id", accountID))
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}
	if req.AccountType != nil {
		if !req.AccountType.Valid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		account.AccountType = *req.AccountType
	}
	account.UpdatedAt = s.now().UTC()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.logUnexpected(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, authCtx *domain.AuthorizationContext, accountID string) error {
	if err := s.RequireWrite(ctx, authCtx, "delete accounts"); err != nil {
		return err
	}
	if err := s.accountRepo.DeleteAccount(ctx, accountID, authCtx.TenantID()); err != nil {
		s.logUnexpected(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
