package services

import (
	"context"

	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/SscSPs/finance_planner/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves one of the tenant's accounts.
	GetAccount(ctx context.Context, authCtx *domain.AuthorizationContext, accountID string) (*domain.Account, error)

	// ListAccounts retrieves every account of the tenant.
	ListAccounts(ctx context.Context, authCtx *domain.AuthorizationContext) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account with its initial balance.
	CreateAccount(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount changes name and/or type.
	UpdateAccount(ctx context.Context, authCtx *domain.AuthorizationContext, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes the account and its transactions.
	DeleteAccount(ctx context.Context, authCtx *domain.AuthorizationContext, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
