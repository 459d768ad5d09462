package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	"github.com/SscSPs/finance_planner/internal/models"
	"github.com/SscSPs/finance_planner/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, tenant_id, user_id, name, account_type, balance, created_at, updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountStore
var _ portsrepo.AccountStore = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.TenantID, m.UserID, m.Name, m.AccountType, m.Balance, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", mapPgError(err))
	}
	return nil
}

// FindAccountByID retrieves an account of the tenant.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string, tenantID string) (*domain.Account, error) {
	return r.findAccount(ctx, r.Pool, false, accountID, tenantID)
}

// FindAccountForUpdate retrieves and row-locks an account of the tenant inside tx.
func (r *PgxAccountRepository) FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID string, tenantID string) (*domain.Account, error) {
	return r.findAccount(ctx, tx, true, accountID, tenantID)
}

func (r *PgxAccountRepository) findAccount(ctx context.Context, q querier, lock bool, accountID, tenantID string) (*domain.Account, error) {
	if !isValidID(accountID) || !isValidID(tenantID) {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND tenant_id = $2`
	if lock {
		query += ` FOR UPDATE`
	}

	rows, err := q.Query(ctx, query, accountID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account %s: %w", accountID, mapPgError(err))
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account %s: %w", accountID, mapPgError(err))
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListAccounts retrieves all accounts of a tenant.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	if !isValidID(tenantID) {
		return []domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 ORDER BY name, account_id`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", mapPgError(err))
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", mapPgError(err))
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccount updates the name and type of an account. The balance is left alone.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	if !isValidID(account.AccountID) || !isValidID(account.TenantID) {
		return apperrors.ErrNotFound
	}
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts SET name = $1, account_type = $2, updated_at = $3
		WHERE account_id = $4 AND tenant_id = $5`
	cmdTag, err := r.Pool.Exec(ctx, query, m.Name, m.AccountType, m.UpdatedAt, m.AccountID, m.TenantID)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount deletes an account; its transactions go with it.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string, tenantID string) error {
	if !isValidID(accountID) || !isValidID(tenantID) {
		return apperrors.ErrNotFound
	}
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1 AND tenant_id = $2`, accountID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAccountBalanceInTx writes the cached balance of an account locked in tx.
func (r *PgxAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, now time.Time) error {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = $1, updated_at = $2 WHERE account_id = $3`,
		balance, now, accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance of account %s: %w", accountID, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
