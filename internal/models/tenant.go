package models

// Tenant is a row of the tenants table.
type Tenant struct {
	TenantID string `db:"tenant_id"`
	Name     string `db:"name"`
	AuditFields
}

// TenantWithRole is a tenant joined with one member's role.
type TenantWithRole struct {
	Tenant
	Role string `db:"role"`
}

// Membership is a row of the tenant_memberships table.
type Membership struct {
	MembershipID string `db:"membership_id"`
	TenantID     string `db:"tenant_id"`
	UserID       string `db:"user_id"`
	Role         string `db:"role"`
	AuditFields
}

// MemberDetail is a membership joined with users.external_id.
type MemberDetail struct {
	Membership
	ExternalID string `db:"external_id"`
}
