package pgsql

import (
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       NewTransactionManager(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		TenantRepo:      newPgxTenantRepository(dbPool),
		MembershipRepo:  newPgxMembershipRepository(dbPool),
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
	}
}
