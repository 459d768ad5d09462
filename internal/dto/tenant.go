package dto

import (
	"time"

	"github.com/SscSPs/finance_planner/internal/core/domain"
)

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserTenantResponse is a tenant the caller belongs to, with the caller's role.
type UserTenantResponse struct {
	TenantResponse
	Role domain.Role `json:"role"`
}

// UpdateTenantRequest renames the current tenant (owner only).
type UpdateTenantRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// MemberResponse is a membership with the member's external identity.
type MemberResponse struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	ExternalID string      `json:"external_id"`
	Role       domain.Role `json:"role"`
	CreatedAt  time.Time   `json:"created_at"`
}

// InviteMemberRequest adds a user, identified by the token issuer's id, to the tenant.
type InviteMemberRequest struct {
	ExternalID string      `json:"external_id" binding:"required,min=1"`
	Role       domain.Role `json:"role" binding:"omitempty,tenantrole"` // defaults to member
}

// UpdateMemberRoleRequest changes a member's role (owner only).
type UpdateMemberRoleRequest struct {
	Role domain.Role `json:"role" binding:"required,tenantrole"`
}

// RemoveMemberResponse confirms a removal.
type RemoveMemberResponse struct {
	Message       string `json:"message"`
	RemovedUserID string `json:"removed_user_id"`
}

// ToTenantResponse converts a domain.Tenant to its DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.TenantID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToUserTenantResponses converts the caller's tenants.
func ToUserTenantResponses(tenants []domain.TenantWithRole) []UserTenantResponse {
	res := make([]UserTenantResponse, len(tenants))
	for i := range tenants {
		res[i] = UserTenantResponse{
			TenantResponse: ToTenantResponse(&tenants[i].Tenant),
			Role:           tenants[i].Role,
		}
	}
	return res
}

// ToMemberResponse converts a member detail to its DTO.
func ToMemberResponse(m *domain.MemberDetail) MemberResponse {
	return MemberResponse{
		ID:         m.MembershipID,
		UserID:     m.UserID,
		ExternalID: m.ExternalID,
		Role:       m.Role,
		CreatedAt:  m.CreatedAt,
	}
}

// ToMemberResponses converts a slice of member details.
func ToMemberResponses(members []domain.MemberDetail) []MemberResponse {
	res := make([]MemberResponse, len(members))
	for i := range members {
		res[i] = ToMemberResponse(&members[i])
	}
	return res
}
