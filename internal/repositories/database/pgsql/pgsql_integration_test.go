//go:build integration

package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	"github.com/SscSPs/finance_planner/internal/core/services"
	"github.com/SscSPs/finance_planner/internal/dto"
	"github.com/SscSPs/finance_planner/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T, ctx context.Context) (*pgxpool.Pool, portsrepo.RepositoryProvider) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())
	require.NoError(t, database.RunMigrations(connString, slog.Default()))

	pool, err := database.NewPgxPool(ctx, database.PoolConfig{DatabaseURL: connString, MaxConns: 20, MinConns: 1, MaxConnLifetime: time.Hour})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool, NewRepositoryProvider(pool)
}

// seedTenant provisions a tenant the way the external admin tooling would.
func seedTenant(t *testing.T, ctx context.Context, pool *pgxpool.Pool, name string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pool.Exec(ctx, `INSERT INTO tenants (tenant_id, name) VALUES ($1, $2)`, id, name)
	require.NoError(t, err)
	return id
}

func seedAccount(t *testing.T, ctx context.Context, repos portsrepo.RepositoryProvider, tenantID, userID, balance string) domain.Account {
	t.Helper()
	now := time.Now().UTC()
	acc := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    tenantID,
		UserID:      userID,
		Name:        "Checking " + tenantID[:8],
		AccountType: domain.Checking,
		Balance:     decimal.RequireFromString(balance),
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, repos.AccountRepo.SaveAccount(ctx, acc))
	return acc
}

func TestIntegration_Repositories(t *testing.T) {
	ctx := context.Background()
	pool, repos := setupPostgresContainer(t, ctx)

	tenantA := seedTenant(t, ctx, pool, "Household A")
	tenantB := seedTenant(t, ctx, pool, "Household B")

	t.Run("resolve user is idempotent under concurrency", func(t *testing.T) {
		const workers = 8
		ids := make([]string, workers)
		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				u, err := repos.UserRepo.ResolveUserByExternalID(ctx, "auth0|concurrent")
				if assert.NoError(t, err) {
					ids[i] = u.UserID
				}
			}()
		}
		wg.Wait()
		for _, id := range ids {
			require.Equal(t, ids[0], id)
		}
	})

	owner, err := repos.UserRepo.ResolveUserByExternalID(ctx, "auth0|owner")
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, repos.MembershipRepo.CreateMembership(ctx, domain.Membership{
		MembershipID: uuid.NewString(), TenantID: tenantA, UserID: owner.UserID, Role: domain.RoleOwner,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}))

	t.Run("duplicate membership", func(t *testing.T) {
		err := repos.MembershipRepo.CreateMembership(ctx, domain.Membership{
			MembershipID: uuid.NewString(), TenantID: tenantA, UserID: owner.UserID, Role: domain.RoleViewer,
			AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		})
		require.ErrorIs(t, err, apperrors.ErrDuplicate)
	})

	t.Run("owner row cannot be changed", func(t *testing.T) {
		_, err := repos.MembershipRepo.UpdateMemberRole(ctx, tenantA, owner.UserID, domain.RoleViewer)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
		require.ErrorIs(t, repos.MembershipRepo.DeleteMembership(ctx, tenantA, owner.UserID), apperrors.ErrNotFound)
	})

	t.Run("accounts are opaque across tenants", func(t *testing.T) {
		accB := seedAccount(t, ctx, repos, tenantB, owner.UserID, "10.00")

		_, err := repos.AccountRepo.FindAccountByID(ctx, accB.AccountID, tenantA)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
		require.ErrorIs(t, repos.AccountRepo.DeleteAccount(ctx, accB.AccountID, tenantA), apperrors.ErrNotFound)
		_, err = repos.AccountRepo.FindAccountByID(ctx, "not-a-uuid", tenantA)
		require.ErrorIs(t, err, apperrors.ErrNotFound)

		got, err := repos.AccountRepo.FindAccountByID(ctx, accB.AccountID, tenantB)
		require.NoError(t, err)
		require.True(t, got.Balance.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("ledger keeps balance consistent under concurrent writes", func(t *testing.T) {
		acc := seedAccount(t, ctx, repos, tenantA, owner.UserID, "1000.00")
		ledger := services.NewLedgerService(repos.TxManager, repos.AccountRepo, repos.TransactionRepo)
		authCtx := &domain.AuthorizationContext{User: *owner, Tenant: domain.Tenant{TenantID: tenantA}, Role: domain.RoleOwner}

		amount := decimal.RequireFromString("-1.25")
		merchant := "Blue Bottle Coffee"
		const writers = 20
		var wg sync.WaitGroup
		for range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := ledger.CreateTransaction(ctx, authCtx, dto.CreateTransactionRequest{
					AccountID: acc.AccountID,
					TransactionItem: dto.TransactionItem{
						Amount: &amount, Date: "2024-05-01", Category: "coffee", Merchant: &merchant, Tags: []string{"daily"},
					},
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := repos.AccountRepo.FindAccountByID(ctx, acc.AccountID, tenantA)
		require.NoError(t, err)
		require.True(t, got.Balance.Equal(decimal.RequireFromString("975.00")), got.Balance.String())

		accountID := acc.AccountID
		txns, total, err := repos.TransactionRepo.ListTransactions(ctx, tenantA, domain.TransactionFilter{
			AccountID: &accountID, Tags: []string{"daily", "missing"}, Limit: 5,
		})
		require.NoError(t, err)
		require.Equal(t, writers, total)
		require.Len(t, txns, 5)

		bottle, wildcard := "bottle", "b_ttle"
		_, total, err = repos.TransactionRepo.ListTransactions(ctx, tenantA, domain.TransactionFilter{Merchant: &bottle, Limit: 5})
		require.NoError(t, err)
		require.Equal(t, writers, total)
		_, total, err = repos.TransactionRepo.ListTransactions(ctx, tenantA, domain.TransactionFilter{Merchant: &wildcard, Limit: 5})
		require.NoError(t, err)
		require.Zero(t, total)

		_, total, err = repos.TransactionRepo.ListTransactions(ctx, tenantB, domain.TransactionFilter{AccountID: &accountID, Limit: 5})
		require.NoError(t, err)
		require.Zero(t, total)
	})
}
