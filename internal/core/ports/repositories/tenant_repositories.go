package repositories

import (
	"context"

	"github.com/SscSPs/finance_planner/internal/core/domain"
)

// TenantStore reads and renames externally provisioned tenants.
type TenantStore interface {
	// FindTenantByID returns apperrors.ErrNotFound when the tenant does not exist.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// UpdateTenantName renames a tenant and returns the updated row.
	UpdateTenantName(ctx context.Context, tenantID string, name string) (*domain.Tenant, error)

	// ListTenantsForUser returns every tenant the user is a member of, with the user's role.
	ListTenantsForUser(ctx context.Context, userID string) ([]domain.TenantWithRole, error)
}

// MembershipReader defines read operations for memberships
type MembershipReader interface {
	// FindMembership returns apperrors.ErrNotFound when the user is not a member.
	FindMembership(ctx context.Context, tenantID, userID string) (*domain.Membership, error)

	// ListMembers returns the tenant's memberships joined with each user's external id.
	ListMembers(ctx context.Context, tenantID string) ([]domain.MemberDetail, error)
}

// MembershipWriter defines write operations for memberships.
// OWNER rows are never changed or removed through this interface.
type MembershipWriter interface {
	// CreateMembership returns apperrors.ErrDuplicate if the pair already exists.
	CreateMembership(ctx context.Context, membership domain.Membership) error

	// UpdateMemberRole changes a non-owner member's role.
	UpdateMemberRole(ctx context.Context, tenantID, userID string, role domain.Role) (*domain.Membership, error)

	// DeleteMembership removes a non-owner member.
	DeleteMembership(ctx context.Context, tenantID, userID string) error
}

// MembershipStore combines membership reads and writes.
type MembershipStore interface {
	MembershipReader
	MembershipWriter
}
