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
)

const tenantColumns = `t.tenant_id, t.name, t.created_at, t.updated_at`

// PgxTenantRepository implements portsrepo.TenantStore using pgxpool.
type PgxTenantRepository struct {
	BaseRepository
}

func newPgxTenantRepository(pool *pgxpool.Pool) *PgxTenantRepository {
	return &PgxTenantRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TenantStore = (*PgxTenantRepository)(nil)

// FindTenantByID retrieves a tenant by its ID.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	if !isValidID(tenantID) {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + tenantColumns + ` FROM tenants t WHERE t.tenant_id = $1`
	return r.findOne(ctx, query, tenantID)
}

// UpdateTenantName renames a tenant.
func (r *PgxTenantRepository) UpdateTenantName(ctx context.Context, tenantID string, name string) (*domain.Tenant, error) {
	if !isValidID(tenantID) {
		return nil, apperrors.ErrNotFound
	}
	query := `
		UPDATE tenants t SET name = $1, updated_at = $2
		WHERE t.tenant_id = $3
		RETURNING ` + tenantColumns
	return r.findOne(ctx, query, name, time.Now().UTC(), tenantID)
}

// ListTenantsForUser returns the user's tenants with the user's role in each, ordered by name.
func (r *PgxTenantRepository) ListTenantsForUser(ctx context.Context, userID string) ([]domain.TenantWithRole, error) {
	if !isValidID(userID) {
		return []domain.TenantWithRole{}, nil
	}
	query := `
		SELECT ` + tenantColumns + `, m.role
		FROM tenants t
		JOIN tenant_memberships m ON m.tenant_id = t.tenant_id
		WHERE m.user_id = $1
		ORDER BY t.name, t.tenant_id`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants for user %s: %w", userID, mapPgError(err))
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TenantWithRole])
	if err != nil {
		return nil, fmt.Errorf("failed to scan tenants: %w", mapPgError(err))
	}

	res := make([]domain.TenantWithRole, len(ms))
	for i, m := range ms {
		res[i] = mapping.ToDomainTenantWithRole(m)
	}
	return res, nil
}

func (r *PgxTenantRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Tenant, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenant: %w", mapPgError(err))
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Tenant])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan tenant: %w", mapPgError(err))
	}
	t := mapping.ToDomainTenant(m)
	return &t, nil
}
