package services

import (
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/SscSPs/finance_planner/internal/platform/config"
	"github.com/SscSPs/finance_planner/internal/platform/telemetry"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, ledgerMetrics *telemetry.LedgerMetrics) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Gate: NewAuthorizationGate(
			NewJWTTokenVerifier(cfg.SecretKey),
			repos.UserRepo,
			repos.TenantRepo,
			repos.MembershipRepo,
		),
		Account: NewAccountService(repos.AccountRepo),
		Ledger: NewLedgerService(
			repos.TxManager,
			repos.AccountRepo,
			repos.TransactionRepo,
			WithLedgerMetrics(ledgerMetrics),
		),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.AccountRepo, cfg.ListMaxLimit),
		Tenant:      NewTenantService(repos.TenantRepo, repos.MembershipRepo, repos.UserRepo),
	}
}
