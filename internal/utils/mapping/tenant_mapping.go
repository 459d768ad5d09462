package mapping

import (
	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/SscSPs/finance_planner/internal/models"
)

// ToDomainTenant converts a model Tenant to a domain Tenant
func ToDomainTenant(m models.Tenant) domain.Tenant {
	return domain.Tenant{
		TenantID:    m.TenantID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTenantWithRole converts a tenant row joined with a role.
func ToDomainTenantWithRole(m models.TenantWithRole) domain.TenantWithRole {
	return domain.TenantWithRole{
		Tenant: ToDomainTenant(m.Tenant),
		Role:   domain.Role(m.Role),
	}
}

// ToModelMembership converts a domain Membership to a model Membership
func ToModelMembership(d domain.Membership) models.Membership {
	return models.Membership{
		MembershipID: d.MembershipID,
		TenantID:     d.TenantID,
		UserID:       d.UserID,
		Role:         string(d.Role),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMembership converts a model Membership to a domain Membership
func ToDomainMembership(m models.Membership) domain.Membership {
	return domain.Membership{
		MembershipID: m.MembershipID,
		TenantID:     m.TenantID,
		UserID:       m.UserID,
		Role:         domain.Role(m.Role),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMemberDetail converts a membership row joined with the user's external id.
func ToDomainMemberDetail(m models.MemberDetail) domain.MemberDetail {
	return domain.MemberDetail{
		Membership: ToDomainMembership(m.Membership),
		ExternalID: m.ExternalID,
	}
}
