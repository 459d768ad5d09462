package pgsql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapPgError maps PostgreSQL-specific errors to application sentinel errors.
// Client-facing sentinels carry fixed messages; server text stays out of them.
// Errors that are not from Postgres are returned unchanged.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: conflicts with an existing record", apperrors.ErrDuplicate)

	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: referenced record does not exist", apperrors.ErrNotFound)

	case pgerrcode.NumericValueOutOfRange:
		return fmt.Errorf("%w: value out of range", apperrors.ErrValidation)

	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation,
		pgerrcode.StringDataRightTruncationDataException:
		return fmt.Errorf("%w: value violates a constraint", apperrors.ErrValidation)

	case pgerrcode.InvalidTextRepresentation:
		return apperrors.ErrNotFound

	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return fmt.Errorf("transaction conflict: %w", err)

	case pgerrcode.QueryCanceled:
		return fmt.Errorf("query canceled: %w", err)

	default:
		return fmt.Errorf("postgres error [%s]: %w", pgErr.Code, err)
	}
}
