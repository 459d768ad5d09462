package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/SscSPs/finance_planner/internal/dto"
	"github.com/SscSPs/finance_planner/internal/platform/telemetry"
	"github.com/SscSPs/finance_planner/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
)

// ledgerService keeps account balances equal to initial balance plus the sum
// of the account's transactions. Every mutation locks the account row first,
// then (for update and delete) the transaction row, and writes the balance in
// the same database transaction.
type ledgerService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountTransactionSupport
	txnRepo     portsrepo.TransactionLedgerSupport
	metrics     *telemetry.LedgerMetrics
	now         func() time.Time
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithLedgerMetrics records operation counts, latency and spans.
func WithLedgerMetrics(m *telemetry.LedgerMetrics) LedgerOption {
	return func(s *ledgerService) {
		s.metrics = m
	}
}

// WithLedgerClock overrides the clock used for audit timestamps.
func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates the ledger over the given stores.
func NewLedgerService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountTransactionSupport,
	txnRepo portsrepo.TransactionLedgerSupport,
	options ...LedgerOption,
) portssvc.LedgerSvc {
	svc := &ledgerService{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) CreateTransaction(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := s.RequireWrite(ctx, authCtx, "create transactions"); err != nil {
		s.record(ctx, telemetry.OpCreate, err)
		return nil, err
	}

	txn, err := newTransaction(req.TransactionItem, s.now().UTC())
	if err != nil {
		s.record(ctx, telemetry.OpCreate, err)
		return nil, err
	}

	err = s.inUnit(ctx, telemetry.OpCreate, func(ctx context.Context, tx pgx.Tx) (int, error) {
		account, err := s.accountRepo.FindAccountForUpdate(ctx, tx, req.AccountID, authCtx.TenantID())
		if err != nil {
			return 0, err
		}
		txn.AccountID = account.AccountID

		if err := s.txnRepo.InsertTransactionsInTx(ctx, tx, []domain.Transaction{txn}); err != nil {
			return 0, err
		}
		balance, err := nextBalance(account.Balance, txn.Amount)
		if err != nil {
			return 0, err
		}
		if err := s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, account.AccountID, balance, txn.CreatedAt); err != nil {
			return 0, err
		}
		return 1, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	return &txn, nil
}

func (s *ledgerService) CreateTransactionBatch(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.BatchCreateTransactionsRequest) (*domain.BatchResult, error) {
	if err := s.RequireWrite(ctx, authCtx, "create transactions"); err != nil {
		s.record(ctx, telemetry.OpBatch, err)
		return nil, err
	}
	if n := len(req.Transactions); n < 1 || n > domain.MaxBatchSize {
		err := fmt.Errorf("%w: a batch must contain between 1 and %d transactions, got %d",
			apperrors.ErrValidation, domain.MaxBatchSize, n)
		s.record(ctx, telemetry.OpBatch, err)
		return nil, err
	}

	now := s.now().UTC()
	txns := make([]domain.Transaction, len(req.Transactions))
	for i, item := range req.Transactions {
		txn, err := newTransaction(item, now)
		if err != nil {
			err = fmt.Errorf("transactions[%d]: %w", i, err)
			s.record(ctx, telemetry.OpBatch, err)
			return nil, err
		}
		txns[i] = txn
	}
	total := accounting.TransactionsTotal(txns)

	balance := total
	err := s.inUnit(ctx, telemetry.OpBatch, func(ctx context.Context, tx pgx.Tx) (int, error) {
		account, err := s.accountRepo.FindAccountForUpdate(ctx, tx, req.AccountID, authCtx.TenantID())
		if err != nil {
			return 0, err
		}
		for i := range txns {
			txns[i].AccountID = account.AccountID
		}

		if balance, err = nextBalance(account.Balance, total); err != nil {
			return 0, err
		}
		if err := s.txnRepo.InsertTransactionsInTx(ctx, tx, txns); err != nil {
			return 0, err
		}
		if err := s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, account.AccountID, balance, now); err != nil {
			return 0, err
		}
		return len(txns), nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction batch created",
		slog.String("account_id", req.AccountID), slog.Int("count", len(txns)), slog.String("total", total.String()))
	return &domain.BatchResult{
		Transactions:   txns,
		Count:          len(txns),
		TotalAmount:    total,
		AccountBalance: balance,
	}, nil
}

func (s *ledgerService) UpdateTransaction(ctx context.Context, authCtx *domain.AuthorizationContext, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	if err := s.RequireWrite(ctx, authCtx, "update transactions"); err != nil {
		s.record(ctx, telemetry.OpUpdate, err)
		return nil, err
	}
	patch, err := newPatch(req)
	if err != nil {
		s.record(ctx, telemetry.OpUpdate, err)
		return nil, err
	}

	var updated *domain.Transaction
	err = s.inUnit(ctx, telemetry.OpUpdate, func(ctx context.Context, tx pgx.Tx) (int, error) {
		account, txn, err := s.lockForChange(ctx, tx, transactionID, authCtx.TenantID())
		if err != nil {
			return 0, err
		}

		delta := patch.Apply(txn)
		balance, err := nextBalance(account.Balance, delta)
		if err != nil {
			return 0, err
		}
		txn.UpdatedAt = s.now().UTC()
		if err := s.txnRepo.UpdateTransactionInTx(ctx, tx, *txn); err != nil {
			return 0, err
		}
		if !delta.IsZero() {
			if err := s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, account.AccountID, balance, txn.UpdatedAt); err != nil {
				return 0, err
			}
		}
		updated = txn
		return 1, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, authCtx *domain.AuthorizationContext, transactionID string) error {
	if err := s.RequireWrite(ctx, authCtx, "delete transactions"); err != nil {
		s.record(ctx, telemetry.OpDelete, err)
		return err
	}

	err := s.inUnit(ctx, telemetry.OpDelete, func(ctx context.Context, tx pgx.Tx) (int, error) {
		account, txn, err := s.lockForChange(ctx, tx, transactionID, authCtx.TenantID())
		if err != nil {
			return 0, err
		}

		if err := s.txnRepo.DeleteTransactionInTx(ctx, tx, txn.TransactionID); err != nil {
			return 0, err
		}
		if delta := accounting.Reversal(txn.Amount); !delta.IsZero() {
			balance, err := nextBalance(account.Balance, delta)
			if err != nil {
				return 0, err
			}
			if err := s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, account.AccountID, balance, s.now().UTC()); err != nil {
				return 0, err
			}
		}
		return 1, nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// lockForChange finds the tenant's transaction, locks its account and then
// the transaction itself. The transaction is re-read under the lock so a
// concurrent change to it is never lost.
func (s *ledgerService) lockForChange(ctx context.Context, tx pgx.Tx, transactionID, tenantID string) (*domain.Account, *domain.Transaction, error) {
	found, err := s.txnRepo.FindTransactionInTx(ctx, tx, transactionID, tenantID)
	if err != nil {
		return nil, nil, err
	}
	account, err := s.accountRepo.FindAccountForUpdate(ctx, tx, found.AccountID, tenantID)
	if err != nil {
		return nil, nil, err
	}
	txn, err := s.txnRepo.LockTransactionInTx(ctx, tx, transactionID, account.AccountID)
	if err != nil {
		return nil, nil, err
	}
	return account, txn, nil
}

// inUnit runs fn in one database transaction. fn returns the number of
// transaction rows it wrote. Any error rolls the whole unit back; storage
// errors surface as ErrLedgerFailure.
func (s *ledgerService) inUnit(ctx context.Context, op string, fn func(ctx context.Context, tx pgx.Tx) (int, error)) (err error) {
	ctx, done := s.metrics.Start(ctx, op)
	written := 0
	defer func() { done(outcomeOf(err), written) }()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return s.ledgerFailure(ctx, op, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// The request context may already be cancelled; the rollback must still run.
		if rbErr := s.txManager.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back ledger transaction", slog.String("operation", op))
		}
	}()

	written, err = fn(ctx, tx)
	if err != nil {
		if isClientError(err) {
			return err
		}
		return s.ledgerFailure(ctx, op, err)
	}

	if err = s.txManager.Commit(ctx, tx); err != nil {
		return s.ledgerFailure(ctx, op, err)
	}
	committed = true
	return nil
}

// record reports an operation rejected before any storage access.
func (s *ledgerService) record(ctx context.Context, op string, err error) {
	_, done := s.metrics.Start(ctx, op)
	done(outcomeOf(err), 0)
}

func (s *ledgerService) ledgerFailure(ctx context.Context, op string, err error) error {
	s.LogError(ctx, err, "Ledger operation failed", slog.String("operation", op))
	return fmt.Errorf("%w: %s: %v", apperrors.ErrLedgerFailure, op, err)
}

func isClientError(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrForbidden)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeCommitted
	case errors.Is(err, apperrors.ErrForbidden):
		return telemetry.OutcomeForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return telemetry.OutcomeNotFound
	default:
		return telemetry.OutcomeFailed
	}
}
