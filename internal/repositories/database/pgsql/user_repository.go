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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, external_id, created_at, updated_at`

// PgxUserRepository implements portsrepo.IdentityStore using pgxpool.
type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.IdentityStore = (*PgxUserRepository)(nil)

// FindUserByID retrieves a user by its ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if !isValidID(userID) {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return r.findOne(ctx, query, userID)
}

// FindUserByExternalID retrieves a user by its external identity.
func (r *PgxUserRepository) FindUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE external_id = $1`
	return r.findOne(ctx, query, externalID)
}

// ResolveUserByExternalID returns the existing user or inserts one.
// The insert relies on the unique external_id constraint: when a concurrent
// request won the race the insert yields no row and the winner's row is re-read.
func (r *PgxUserRepository) ResolveUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	user, err := r.FindUserByExternalID(ctx, externalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO users (user_id, external_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (external_id) DO NOTHING
		RETURNING ` + userColumns

	created, err := r.findOne(ctx, query, uuid.NewString(), externalID, now)
	switch {
	case err == nil:
		return created, nil
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrDuplicate):
		return r.FindUserByExternalID(ctx, externalID)
	default:
		return nil, fmt.Errorf("failed to create user for external id %s: %w", externalID, err)
	}
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", mapPgError(err))
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", mapPgError(err))
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}
