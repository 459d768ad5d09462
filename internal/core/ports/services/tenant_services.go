package services

import (
	"context"

	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/SscSPs/finance_planner/internal/dto"
)

// TenantReaderSvc defines reads of the current tenant and its members.
type TenantReaderSvc interface {
	GetCurrentTenant(ctx context.Context, authCtx *domain.AuthorizationContext) (*domain.Tenant, error)
	ListMembers(ctx context.Context, authCtx *domain.AuthorizationContext) ([]domain.MemberDetail, error)
	ListUserTenants(ctx context.Context, user *domain.User) ([]domain.TenantWithRole, error)
}

// TenantManagerSvc defines role-gated tenant and membership management.
type TenantManagerSvc interface {
	// UpdateTenant renames the tenant. Owner only.
	UpdateTenant(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.UpdateTenantRequest) (*domain.Tenant, error)

	// InviteMember adds a user by external id. Admin or owner; only an owner may invite an owner.
	InviteMember(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.InviteMemberRequest) (*domain.MemberDetail, error)

	// UpdateMemberRole changes a member's role. Owner only; never self, never an owner row.
	UpdateMemberRole(ctx context.Context, authCtx *domain.AuthorizationContext, userID string, req dto.UpdateMemberRoleRequest) (*domain.MemberDetail, error)

	// RemoveMember deletes a membership. Admin or owner; never self, never an owner row.
	RemoveMember(ctx context.Context, authCtx *domain.AuthorizationContext, userID string) error
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantReaderSvc
	TenantManagerSvc
}
