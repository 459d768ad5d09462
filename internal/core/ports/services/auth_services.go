package services

import (
	"context"

	"github.com/SscSPs/finance_planner/internal/core/domain"
)

// TokenVerifier validates a bearer credential against the shared secret.
// It performs no I/O.
type TokenVerifier interface {
	// Verify returns apperrors.ErrUnauthorized on a bad signature, an expired or
	// missing exp, or a missing subject/tenant claim.
	Verify(token string) (*domain.TokenClaims, error)
}

// AuthorizationGate turns a bearer credential into an AuthorizationContext.
type AuthorizationGate interface {
	// Resolve verifies the token, resolves (or creates) the user, then the
	// tenant, then the membership, failing with ErrUnauthorized,
	// ErrTenantNotFound or ErrNotAMember in that order.
	Resolve(ctx context.Context, token string) (*domain.AuthorizationContext, error)

	// ResolveIdentity runs only the first two steps of Resolve.
	ResolveIdentity(ctx context.Context, token string) (*domain.User, error)
}
