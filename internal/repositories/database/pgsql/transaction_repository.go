package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	"github.com/SscSPs/finance_planner/internal/models"
	"github.com/SscSPs/finance_planner/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `t.transaction_id, t.account_id, t.amount, t.date, t.category, t.description,
	t.merchant, t.location, t.tags, t.der_category, t.der_merchant, t.created_at, t.updated_at`

// PgxTransactionRepository implements portsrepo.TransactionStore using pgxpool.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionStore = (*PgxTransactionRepository)(nil)

// FindTransactionByID retrieves a transaction whose account belongs to the tenant.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string, tenantID string) (*domain.Transaction, error) {
	return r.findByTenant(ctx, r.Pool, transactionID, tenantID)
}

// FindTransactionInTx is FindTransactionByID inside tx.
func (r *PgxTransactionRepository) FindTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, tenantID string) (*domain.Transaction, error) {
	return r.findByTenant(ctx, tx, transactionID, tenantID)
}

func (r *PgxTransactionRepository) findByTenant(ctx context.Context, q querier, transactionID, tenantID string) (*domain.Transaction, error) {
	if !isValidID(transactionID) || !isValidID(tenantID) {
		return nil, apperrors.ErrNotFound
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		WHERE t.transaction_id = $1 AND a.tenant_id = $2`
	return r.findOne(ctx, q, query, transactionID, tenantID)
}

// LockTransactionInTx locks the transaction row. The caller holds the account lock already.
func (r *PgxTransactionRepository) LockTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, accountID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE t.transaction_id = $1 AND t.account_id = $2
		FOR UPDATE`
	return r.findOne(ctx, tx, query, transactionID, accountID)
}

// ListTransactions returns one page of the tenant's transactions matching filter,
// newest first, and the number of matches overall.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, tenantID string, filter domain.TransactionFilter) ([]domain.Transaction, int, error) {
	if !isValidID(tenantID) {
		return []domain.Transaction{}, 0, nil
	}
	if filter.AccountID != nil && !isValidID(*filter.AccountID) {
		return []domain.Transaction{}, 0, nil
	}

	baseQuery := `FROM transactions t JOIN accounts a ON a.account_id = t.account_id WHERE a.tenant_id = $1`
	args := []any{tenantID}
	argNum := 2

	addEq := func(column string, value *string) {
		if value == nil {
			return
		}
		baseQuery += fmt.Sprintf(" AND %s = $%d", column, argNum)
		args = append(args, *value)
		argNum++
	}
	addContains := func(column string, value *string) {
		if value == nil {
			return
		}
		baseQuery += fmt.Sprintf(" AND %s ILIKE ('%%' || $%d || '%%')", column, argNum)
		args = append(args, escapeLike(*value))
		argNum++
	}

	addEq("t.account_id", filter.AccountID)
	if filter.StartDate != nil {
		baseQuery += fmt.Sprintf(" AND t.date >= $%d", argNum)
		args = append(args, *filter.StartDate)
		argNum++
	}
	if filter.EndDate != nil {
		baseQuery += fmt.Sprintf(" AND t.date <= $%d", argNum)
		args = append(args, *filter.EndDate)
		argNum++
	}
	addEq("t.category", filter.Category)
	addContains("t.merchant", filter.Merchant)
	if len(filter.Tags) > 0 {
		baseQuery += fmt.Sprintf(" AND t.tags && $%d", argNum)
		args = append(args, filter.Tags)
		argNum++
	}
	addEq("t.der_category", filter.DerivedCategory)
	addContains("t.der_merchant", filter.DerivedMerchant)

	var total int
	if err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", mapPgError(err))
	}
	if total == 0 {
		return []domain.Transaction{}, 0, nil
	}

	query := "SELECT " + transactionColumns + " " + baseQuery +
		fmt.Sprintf(" ORDER BY t.date DESC, t.transaction_id DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", mapPgError(err))
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan transactions: %w", mapPgError(err))
	}
	return mapping.ToDomainTransactionSlice(ms), total, nil
}

// InsertTransactionsInTx queues one insert per transaction and sends them as a single batch.
func (r *PgxTransactionRepository) InsertTransactionsInTx(ctx context.Context, tx pgx.Tx, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	query := `
		INSERT INTO transactions (transaction_id, account_id, amount, date, category, description,
			merchant, location, tags, der_category, der_merchant, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	batch := &pgx.Batch{}
	for _, txn := range txns {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(query,
			m.TransactionID, m.AccountID, m.Amount, m.Date, m.Category, m.Description,
			m.Merchant, m.Location, m.Tags, m.DerCategory, m.DerMerchant, m.CreatedAt, m.UpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert %d transactions: %w", len(txns), mapPgError(err))
	}
	return nil
}

// UpdateTransactionInTx writes every mutable column of txn.
func (r *PgxTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET amount = $1, date = $2, category = $3, description = $4, merchant = $5,
			location = $6, tags = $7, updated_at = $8
		WHERE transaction_id = $9`
	cmdTag, err := tx.Exec(ctx, query,
		m.Amount, m.Date, m.Category, m.Description, m.Merchant, m.Location, m.Tags, m.UpdatedAt, m.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransactionInTx removes a transaction row.
func (r *PgxTransactionRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) findOne(ctx context.Context, q querier, query string, args ...any) (*domain.Transaction, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", mapPgError(err))
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", mapPgError(err))
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
