package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/SscSPs/finance_planner/internal/dto"
	"github.com/google/uuid"
)

type tenantService struct {
	BaseService
	tenants     portsrepo.TenantStore
	memberships portsrepo.MembershipStore
	users       portsrepo.IdentityStore
	now         func() time.Time
}

// NewTenantService creates the tenant and membership management service.
func NewTenantService(tenants portsrepo.TenantStore, memberships portsrepo.MembershipStore, users portsrepo.IdentityStore) portssvc.TenantSvcFacade {
	return &tenantService{
		tenants:     tenants,
		memberships: memberships,
		users:       users,
		now:         time.Now,
	}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

func (s *tenantService) GetCurrentTenant(ctx context.Context, authCtx *domain.AuthorizationContext) (*domain.Tenant, error) {
	if err := s.RequireRead(authCtx); err != nil {
		return nil, err
	}
	tenant := authCtx.Tenant
	return &tenant, nil
}

func (s *tenantService) UpdateTenant(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.UpdateTenantRequest) (*domain.Tenant, error) {
	if authCtx == nil || !authCtx.IsOwner() {
		return nil, fmt.Errorf("%w: only the owner can update tenant details", apperrors.ErrForbidden)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
	}

	tenant, err := s.tenants.UpdateTenantName(ctx, authCtx.TenantID(), name)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to update tenant")
		return nil, err
	}
	s.LogInfo(ctx, "Tenant renamed")
	return tenant, nil
}

func (s *tenantService) ListMembers(ctx context.Context, authCtx *domain.AuthorizationContext) ([]domain.MemberDetail, error) {
	if err := s.RequireRead(authCtx); err != nil {
		return nil, err
	}
	members, err := s.memberships.ListMembers(ctx, authCtx.TenantID())
	if err != nil {
		s.LogError(ctx, err, "Failed to list members")
		return nil, err
	}
	return members, nil
}

func (s *tenantService) ListUserTenants(ctx context.Context, user *domain.User) ([]domain.TenantWithRole, error) {
	if user == nil {
		return nil, apperrors.ErrUnauthorized
	}
	tenants, err := s.tenants.ListTenantsForUser(ctx, user.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list user tenants")
		return nil, err
	}
	return tenants, nil
}

func (s *tenantService) InviteMember(ctx context.Context, authCtx *domain.AuthorizationContext, req dto.InviteMemberRequest) (*domain.MemberDetail, error) {
	if authCtx == nil || !authCtx.IsAdminOrHigher() {
		return nil, fmt.Errorf("%w: only admins and owners can invite members", apperrors.ErrForbidden)
	}

	role := domain.RoleMember
	if req.Role != "" {
		r, err := domain.ParseRole(string(req.Role))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		role = r
	}
	if role == domain.RoleOwner && !authCtx.IsOwner() {
		return nil, fmt.Errorf("%w: only the owner can invite other owners", apperrors.ErrForbidden)
	}

	externalID := strings.TrimSpace(req.ExternalID)
	if externalID == "" {
		return nil, fmt.Errorf("%w: external_id is required", apperrors.ErrValidation)
	}

	user, err := s.users.ResolveUserByExternalID(ctx, externalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve invited user", slog.String("external_id", externalID))
		return nil, err
	}

	alreadyMember := fmt.Errorf("%w: user %s is already a member", apperrors.ErrValidation, externalID)
	_, err = s.memberships.FindMembership(ctx, authCtx.TenantID(), user.UserID)
	switch {
	case err == nil:
		return nil, alreadyMember
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check membership", slog.String("user_id", user.UserID))
		return nil, err
	}

	now := s.now().UTC()
	membership := domain.Membership{
		MembershipID: uuid.NewString(),
		TenantID:     authCtx.TenantID(),
		UserID:       user.UserID,
		Role:         role,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.memberships.CreateMembership(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, alreadyMember
		}
		s.LogError(ctx, err, "Failed to create membership", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Member invited", slog.String("member_user_id", user.UserID), slog.String("member_role", role.String()))
	return &domain.MemberDetail{Membership: membership, ExternalID: user.ExternalID}, nil
}

func (s *tenantService) UpdateMemberRole(ctx context.Context, authCtx *domain.AuthorizationContext, userID string, req dto.UpdateMemberRoleRequest) (*domain.MemberDetail, error) {
	if authCtx == nil || !authCtx.IsOwner() {
		return nil, fmt.Errorf("%w: only the owner can change member roles", apperrors.ErrForbidden)
	}
	role, err := domain.ParseRole(string(req.Role))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	target, err := s.memberTarget(ctx, authCtx, userID, "change your own role", "change the owner's role")
	if err != nil {
		return nil, err
	}

	updated, err := s.memberships.UpdateMemberRole(ctx, authCtx.TenantID(), userID, role)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to update member role", slog.String("member_user_id", userID))
		return nil, err
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load member user", slog.String("member_user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Member role changed", slog.String("member_user_id", userID),
		slog.String("from", target.Role.String()), slog.String("to", role.String()))
	return &domain.MemberDetail{Membership: *updated, ExternalID: user.ExternalID}, nil
}

func (s *tenantService) RemoveMember(ctx context.Context, authCtx *domain.AuthorizationContext, userID string) error {
	if authCtx == nil || !authCtx.IsAdminOrHigher() {
		return fmt.Errorf("%w: only admins and owners can remove members", apperrors.ErrForbidden)
	}

	if _, err := s.memberTarget(ctx, authCtx, userID, "remove yourself from the tenant", "remove the owner from the tenant"); err != nil {
		return err
	}

	if err := s.memberships.DeleteMembership(ctx, authCtx.TenantID(), userID); err != nil {
		s.logUnexpected(ctx, err, "Failed to remove member", slog.String("member_user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Member removed", slog.String("member_user_id", userID))
	return nil
}

// memberTarget loads the membership being changed and rejects changes to the
// caller's own row and to owner rows.
func (s *tenantService) memberTarget(ctx context.Context, authCtx *domain.AuthorizationContext, userID, selfAction, ownerAction string) (*domain.Membership, error) {
	target, err := s.memberships.FindMembership(ctx, authCtx.TenantID(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: member not found in this tenant", apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to load membership", slog.String("member_user_id", userID))
		return nil, err
	}
	if userID == authCtx.UserID() {
		return nil, fmt.Errorf("%w: cannot %s", apperrors.ErrForbidden, selfAction)
	}
	if target.Role == domain.RoleOwner {
		return nil, fmt.Errorf("%w: cannot %s", apperrors.ErrForbidden, ownerAction)
	}
	return target, nil
}
