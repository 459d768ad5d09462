package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
// Every method is scoped by tenant.
type AccountReader interface {
	// FindAccountByID returns apperrors.ErrNotFound for missing accounts and
	// for accounts of other tenants alike.
	FindAccountByID(ctx context.Context, accountID string, tenantID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts of a tenant ordered by name.
	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account with its initial balance.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates name and type. The balance column is not touched.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes the account and, by cascade, its transactions.
	DeleteAccount(ctx context.Context, accountID string, tenantID string) error
}

// AccountTransactionSupport defines the operations the ledger runs inside a transaction.
type AccountTransactionSupport interface {
	// FindAccountForUpdate selects the tenant's account and locks the row until tx ends.
	FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID string, tenantID string) (*domain.Account, error)

	// UpdateAccountBalanceInTx writes the new cached balance of a locked account.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, now time.Time) error
}

// AccountStore combines all account-related repository interfaces
type AccountStore interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
