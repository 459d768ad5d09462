package services

import (
	"context"

	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/SscSPs/finance_planner/internal/dto"
)

// LedgerSvc applies transaction mutations together with their balance effect.
// Each call is one atomic unit; failures are never retried.
type LedgerSvc interface {
	// CreateTransaction persists one transaction and adds its amount to the balance.
	CreateTransaction(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// CreateTransactionBatch persists 1..100 transactions and writes the balance once.
	CreateTransactionBatch(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.BatchCreateTransactionsRequest) (*domain.BatchResult, error)

	// UpdateTransaction applies a partial update; the balance moves by new - old amount.
	UpdateTransaction(ctx context.Context, authCtx *domain.AuthorizationContext, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its amount.
	DeleteTransaction(ctx context.Context, authCtx *domain.AuthorizationContext, transactionID string) error
}

// TransactionReaderSvc defines tenant-scoped transaction reads.
type TransactionReaderSvc interface {
	// GetTransaction retrieves one transaction of the tenant.
	GetTransaction(ctx context.Context, authCtx *domain.AuthorizationContext, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns one filtered page and the total match count.
	ListTransactions(ctx context.Context, authCtx *domain.AuthorizationContext, params dto.ListTransactionsParams) ([]domain.Transaction, int, error)
}
