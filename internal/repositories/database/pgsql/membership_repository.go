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

const membershipColumns = `m.membership_id, m.tenant_id, m.user_id, m.role, m.created_at, m.updated_at`

// PgxMembershipRepository implements portsrepo.MembershipStore using pgxpool.
type PgxMembershipRepository struct {
	BaseRepository
}

func newPgxMembershipRepository(pool *pgxpool.Pool) *PgxMembershipRepository {
	return &PgxMembershipRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MembershipStore = (*PgxMembershipRepository)(nil)

// FindMembership retrieves the membership of userID in tenantID.
func (r *PgxMembershipRepository) FindMembership(ctx context.Context, tenantID, userID string) (*domain.Membership, error) {
	if !isValidID(tenantID) || !isValidID(userID) {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + membershipColumns + ` FROM tenant_memberships m WHERE m.tenant_id = $1 AND m.user_id = $2`
	return r.findOne(ctx, query, tenantID, userID)
}

// ListMembers lists the tenant's members, owners first, then by join date.
func (r *PgxMembershipRepository) ListMembers(ctx context.Context, tenantID string) ([]domain.MemberDetail, error) {
	if !isValidID(tenantID) {
		return []domain.MemberDetail{}, nil
	}
	query := `
		SELECT ` + membershipColumns + `, u.external_id
		FROM tenant_memberships m
		JOIN users u ON u.user_id = m.user_id
		WHERE m.tenant_id = $1
		ORDER BY CASE m.role WHEN 'owner' THEN 0 WHEN 'admin' THEN 1 WHEN 'member' THEN 2 ELSE 3 END,
		         m.created_at, m.membership_id`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of tenant %s: %w", tenantID, mapPgError(err))
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.MemberDetail])
	if err != nil {
		return nil, fmt.Errorf("failed to scan members: %w", mapPgError(err))
	}

	res := make([]domain.MemberDetail, len(ms))
	for i, m := range ms {
		res[i] = mapping.ToDomainMemberDetail(m)
	}
	return res, nil
}

// CreateMembership inserts a new membership.
func (r *PgxMembershipRepository) CreateMembership(ctx context.Context, membership domain.Membership) error {
	m := mapping.ToModelMembership(membership)
	query := `
		INSERT INTO tenant_memberships (membership_id, tenant_id, user_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.Pool.Exec(ctx, query, m.MembershipID, m.TenantID, m.UserID, m.Role, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", mapPgError(err))
	}
	return nil
}

// UpdateMemberRole changes the role of a non-owner member.
// An owner row is reported as not found.
func (r *PgxMembershipRepository) UpdateMemberRole(ctx context.Context, tenantID, userID string, role domain.Role) (*domain.Membership, error) {
	if !isValidID(tenantID) || !isValidID(userID) {
		return nil, apperrors.ErrNotFound
	}
	query := `
		UPDATE tenant_memberships m SET role = $1, updated_at = $2
		WHERE m.tenant_id = $3 AND m.user_id = $4 AND m.role <> 'owner'
		RETURNING ` + membershipColumns
	return r.findOne(ctx, query, string(role), time.Now().UTC(), tenantID, userID)
}

// DeleteMembership removes a non-owner member.
func (r *PgxMembershipRepository) DeleteMembership(ctx context.Context, tenantID, userID string) error {
	if !isValidID(tenantID) || !isValidID(userID) {
		return apperrors.ErrNotFound
	}
	query := `DELETE FROM tenant_memberships WHERE tenant_id = $1 AND user_id = $2 AND role <> 'owner'`
	cmdTag, err := r.Pool.Exec(ctx, query, tenantID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxMembershipRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Membership, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query membership: %w", mapPgError(err))
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Membership])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan membership: %w", mapPgError(err))
	}
	d := mapping.ToDomainMembership(m)
	return &d, nil
}
