package domain

// Tenant is the top-level isolation boundary. Tenants are provisioned
// externally; this service only reads and renames them.
type Tenant struct {
	TenantID string `json:"tenantID"`
	Name     string `json:"name"`
	AuditFields
}

// Membership grants a user access to a tenant with a role.
// (TenantID, UserID) is unique.
type Membership struct {
	MembershipID string `json:"membershipID"`
	TenantID     string `json:"tenantID"`
	UserID       string `json:"userID"`
	Role         Role   `json:"role"`
	AuditFields
}

// MemberDetail is a membership joined with the member's external identity.
type MemberDetail struct {
	Membership
	ExternalID string `json:"externalID"`
}

// TenantWithRole is a tenant as seen by one of its members.
type TenantWithRole struct {
	Tenant
	Role Role `json:"role"`
}
