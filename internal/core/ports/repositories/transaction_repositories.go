package repositories

import (
	"context"

	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines tenant-scoped reads of transactions.
type TransactionReader interface {
	// FindTransactionByID joins through the account to the tenant; a
	// transaction of another tenant is reported as apperrors.ErrNotFound.
	FindTransactionByID(ctx context.Context, transactionID string, tenantID string) (*domain.Transaction, error)

	// ListTransactions applies the filter and returns one page plus the total match count.
	ListTransactions(ctx context.Context, tenantID string, filter domain.TransactionFilter) ([]domain.Transaction, int, error)
}

// TransactionLedgerSupport defines writes that only the ledger performs, always inside tx.
type TransactionLedgerSupport interface {
	// FindTransactionInTx resolves a transaction through its account's tenant without locking.
	FindTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, tenantID string) (*domain.Transaction, error)

	// LockTransactionInTx re-reads and locks a transaction of an already locked account.
	LockTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, accountID string) (*domain.Transaction, error)

	// InsertTransactionsInTx inserts all rows in a single round trip.
	InsertTransactionsInTx(ctx context.Context, tx pgx.Tx, txns []domain.Transaction) error

	// UpdateTransactionInTx writes every mutable field of the transaction.
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// DeleteTransactionInTx removes the transaction row.
	DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error
}

// TransactionStore combines all transaction-related repository interfaces
type TransactionStore interface {
	TransactionReader
	TransactionLedgerSupport
}
