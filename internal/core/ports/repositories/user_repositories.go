package repositories

import (
	"context"

	"github.com/SscSPs/finance_planner/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByExternalID retrieves a user by the identity issued by the token issuer.
	FindUserByExternalID(ctx context.Context, externalID string) (*domain.User, error)
}

// IdentityStore maps external identities to local users.
type IdentityStore interface {
	UserReader

	// ResolveUserByExternalID returns the user for externalID, creating it on
	// first sight. Concurrent calls for the same new identity return the same user.
	ResolveUserByExternalID(ctx context.Context, externalID string) (*domain.User, error)
}
