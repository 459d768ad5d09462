package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// It is returned identically when the resource exists under another tenant.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing, malformed or expired bearer credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrTenantNotFound indicates that the tenant named by the credential does not exist.
var ErrTenantNotFound = errors.New("tenant not found")

// ErrNotAMember indicates that the principal has no membership in the tenant.
var ErrNotAMember = errors.New("not a member of this tenant")

// ErrForbidden indicates that the principal's role does not permit the operation.
var ErrForbidden = errors.New("forbidden")

// ErrLedgerFailure indicates a storage failure inside an atomic ledger unit.
// The unit has been rolled back when this is returned.
var ErrLedgerFailure = errors.New("ledger operation failed")
