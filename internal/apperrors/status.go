package apperrors

import (
	"errors"
	"net/http"
)

// HTTPStatus maps an error chain to the response status and client message.
// Client errors carry the full wrapped message; server errors never leak detail.
func HTTPStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, ErrNotAMember), errors.Is(err, ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, ErrTenantNotFound), errors.Is(err, ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicate):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrLedgerFailure):
		return http.StatusInternalServerError, ErrLedgerFailure.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
