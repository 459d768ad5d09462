package domain

import "time"

// TokenClaims are the verified claims of a bearer credential.
type TokenClaims struct {
	Subject   string
	TenantID  string
	ExpiresAt time.Time
}

// AuthorizationContext is the result of a successful gate resolution. It is
// passed explicitly to every service call and never stored globally.
type AuthorizationContext struct {
	User   User
	Tenant Tenant
	Role   Role

	// ExpiresAt is when the credential that produced this context expires.
	ExpiresAt time.Time
}

// TenantID is the tenant every query of this request must be filtered by.
func (a *AuthorizationContext) TenantID() string {
	return a.Tenant.TenantID
}

// UserID is the resolved local user id.
func (a *AuthorizationContext) UserID() string {
	return a.User.UserID
}

func (a *AuthorizationContext) CanRead() bool         { return a.Role.CanRead() }
func (a *AuthorizationContext) CanWrite() bool        { return a.Role.CanWrite() }
func (a *AuthorizationContext) IsAdminOrHigher() bool { return a.Role.IsAdminOrHigher() }
func (a *AuthorizationContext) IsOwner() bool         { return a.Role.IsOwner() }
