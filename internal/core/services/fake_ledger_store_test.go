package services_test

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var errInjected = errors.New("injected storage failure")

// fakeLedgerStore is an in-memory store with transaction semantics: Begin
// snapshots state and Rollback restores it unless Commit ran in between.
type fakeLedgerStore struct {
	accounts map[string]domain.Account
	txns     map[string]domain.Transaction

	snapAccounts map[string]domain.Account
	snapTxns     map[string]domain.Transaction
	open         bool

	begins        int
	commits       int
	rollbacks     int
	balanceWrites int

	beginErr      error
	failInsertAt  int // 1-based row whose insert fails; 0 disables
	failBalance   error
	failCommitErr error

	// cancelDuringInsert is called after the rows are written, and the insert
	// then reports the context's error, as pgx does when a query is cancelled.
	cancelDuringInsert context.CancelFunc
	rollbackCtxErr     error
}

var (
	_ portsrepo.TransactionManager        = (*fakeLedgerStore)(nil)
	_ portsrepo.AccountTransactionSupport = (*fakeLedgerStore)(nil)
	_ portsrepo.TransactionLedgerSupport  = (*fakeLedgerStore)(nil)
)

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{
		accounts: map[string]domain.Account{},
		txns:     map[string]domain.Transaction{},
	}
}

func (f *fakeLedgerStore) addAccount(id, tenantID string, balance string) {
	f.accounts[id] = domain.Account{
		AccountID:   id,
		TenantID:    tenantID,
		Name:        id,
		AccountType: domain.Checking,
		Balance:     decimal.RequireFromString(balance),
	}
}

func (f *fakeLedgerStore) addTransaction(id, accountID, amount, category string) {
	f.txns[id] = domain.Transaction{
		TransactionID: id,
		AccountID:     accountID,
		Amount:        decimal.RequireFromString(amount),
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Category:      category,
		Tags:          []string{},
	}
}

func (f *fakeLedgerStore) balance(accountID string) decimal.Decimal {
	return f.accounts[accountID].Balance
}

func (f *fakeLedgerStore) Begin(ctx context.Context) (pgx.Tx, error) {
	f.begins++
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	f.snapAccounts = maps.Clone(f.accounts)
	f.snapTxns = maps.Clone(f.txns)
	f.open = true
	return nil, nil
}

func (f *fakeLedgerStore) Commit(ctx context.Context, tx pgx.Tx) error {
	if f.failCommitErr != nil {
		return f.failCommitErr
	}
	f.commits++
	f.open = false
	return nil
}

func (f *fakeLedgerStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	if !f.open {
		return nil
	}
	f.rollbacks++
	f.rollbackCtxErr = ctx.Err()
	f.accounts = f.snapAccounts
	f.txns = f.snapTxns
	f.open = false
	return nil
}

func (f *fakeLedgerStore) FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID string, tenantID string) (*domain.Account, error) {
	acc, ok := f.accounts[accountID]
	if !ok || acc.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (f *fakeLedgerStore) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, now time.Time) error {
	if f.failBalance != nil {
		return f.failBalance
	}
	acc, ok := f.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	acc.Balance = balance
	acc.UpdatedAt = now
	f.accounts[accountID] = acc
	f.balanceWrites++
	return nil
}

func (f *fakeLedgerStore) FindTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, tenantID string) (*domain.Transaction, error) {
	txn, ok := f.txns[transactionID]
	if !ok || f.accounts[txn.AccountID].TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (f *fakeLedgerStore) LockTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, accountID string) (*domain.Transaction, error) {
	txn, ok := f.txns[transactionID]
	if !ok || txn.AccountID != accountID {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (f *fakeLedgerStore) InsertTransactionsInTx(ctx context.Context, tx pgx.Tx, txns []domain.Transaction) error {
	for i, t := range txns {
		if f.failInsertAt == i+1 {
			return errInjected
		}
		f.txns[t.TransactionID] = t
	}
	if f.cancelDuringInsert != nil {
		f.cancelDuringInsert()
		return ctx.Err()
	}
	return nil
}

func (f *fakeLedgerStore) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	if _, ok := f.txns[txn.TransactionID]; !ok {
		return apperrors.ErrNotFound
	}
	f.txns[txn.TransactionID] = txn
	return nil
}

func (f *fakeLedgerStore) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	if _, ok := f.txns[transactionID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.txns, transactionID)
	return nil
}
