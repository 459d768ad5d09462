package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
)

type authorizationGate struct {
	BaseService
	verifier    portssvc.TokenVerifier
	users       portsrepo.IdentityStore
	tenants     portsrepo.TenantStore
	memberships portsrepo.MembershipReader
}

// NewAuthorizationGate wires the gate that runs in front of every tenant route.
func NewAuthorizationGate(
	verifier portssvc.TokenVerifier,
	users portsrepo.IdentityStore,
	tenants portsrepo.TenantStore,
	memberships portsrepo.MembershipReader,
) portssvc.AuthorizationGate {
	return &authorizationGate{
		verifier:    verifier,
		users:       users,
		tenants:     tenants,
		memberships: memberships,
	}
}

var _ portssvc.AuthorizationGate = (*authorizationGate)(nil)

// Resolve checks, in order: token, user, tenant, membership.
func (g *authorizationGate) Resolve(ctx context.Context, token string) (*domain.AuthorizationContext, error) {
	claims, err := g.verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := g.resolveUser(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	tenant, err := g.tenants.FindTenantByID(ctx, claims.TenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrTenantNotFound
		}
		g.LogError(ctx, err, "Failed to load tenant", slog.String("tenant_id", claims.TenantID))
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}

	membership, err := g.memberships.FindMembership(ctx, tenant.TenantID, user.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotAMember
		}
		g.LogError(ctx, err, "Failed to load membership",
			slog.String("tenant_id", tenant.TenantID), slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}

	return &domain.AuthorizationContext{
		User:      *user,
		Tenant:    *tenant,
		Role:      membership.Role,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// ResolveIdentity verifies the token and resolves its user only.
func (g *authorizationGate) ResolveIdentity(ctx context.Context, token string) (*domain.User, error) {
	claims, err := g.verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	return g.resolveUser(ctx, claims.Subject)
}

func (g *authorizationGate) resolveUser(ctx context.Context, externalID string) (*domain.User, error) {
	user, err := g.users.ResolveUserByExternalID(ctx, externalID)
	if err != nil {
		g.LogError(ctx, err, "Failed to resolve user", slog.String("external_id", externalID))
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}
