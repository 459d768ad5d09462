package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/SscSPs/finance_planner/internal/dto"
	"github.com/SscSPs/finance_planner/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tenantHandler serves the current tenant and its memberships.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

func registerTenantRoutes(rg *gin.RouterGroup, tenantService portssvc.TenantSvcFacade) {
	h := &tenantHandler{tenantService: tenantService}

	me := rg.Group("/tenants/me")
	{
		me.GET("", h.getCurrentTenant)
		me.PATCH("", h.updateTenant)
		me.GET("/members", h.listMembers)
		me.POST("/members", h.inviteMember)
		me.PATCH("/members/:userId/role", h.updateMemberRole)
		me.DELETE("/members/:userId", h.removeMember)
	}
}

// registerUserTenantRoutes registers routes that only need a resolved identity.
func registerUserTenantRoutes(rg *gin.RouterGroup, tenantService portssvc.TenantSvcFacade) {
	h := &tenantHandler{tenantService: tenantService}
	rg.GET("/tenants", h.listUserTenants)
}

// getCurrentTenant godoc
// @Summary Get the tenant named by the token
// @Tags tenants
// @Produce  json
// @Success 200 {object} dto.TenantResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Tenant not found"
// @Security BearerAuth
// @Router /tenants/me [get]
func (h *tenantHandler) getCurrentTenant(c *gin.Context) {
	authCtx, ok := authContext(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetCurrentTenant(c.Request.Context(), authCtx)
	if err != nil {
		respondError(c, err, "get tenant")
		return
	}
	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// updateTenant godoc
// @Summary Rename the current tenant
// @Description Owner only.
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   tenant body dto.UpdateTenantRequest true "New name"
// @Success 200 {object} dto.TenantResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Owner only"
// @Security BearerAuth
// @Router /tenants/me [patch]
func (h *tenantHandler) updateTenant(c *gin.Context) {
	authCtx, ok := authContext(c)
	if !ok {
		return
	}
	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), authCtx, req)
	if err != nil {
		respondError(c, err, "update tenant")
		return
	}
	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// listMembers godoc
// @Summary List the members of the current tenant
// @Tags tenants
// @Produce  json
// @Success 200 {array} dto.MemberResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /tenants/me/members [get]
func (h *tenantHandler) listMembers(c *gin.Context) {
	authCtx, ok := authContext(c)
	if !ok {
		return
	}

	members, err := h.tenantService.ListMembers(c.Request.Context(), authCtx)
	if err != nil {
		respondError(c, err, "list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponses(members))
}

// inviteMember godoc
// @Summary Add a user to the current tenant
// @Description Admin or owner. Only an owner may invite another owner.
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   member body dto.InviteMemberRequest true "Invitation"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} map[string]string "Validation error or already a member"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Security BearerAuth
// @Router /tenants/me/members [post]
func (h *tenantHandler) inviteMember(c *gin.Context) {
	authCtx, ok := authContext(c)
	if !ok {
		return
	}
	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	member, err := h.tenantService.InviteMember(c.Request.Context(), authCtx, req)
	if err != nil {
		respondError(c, err, "invite member")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

// updateMemberRole godoc
// @Summary Change a member's role
// @Description Owner only. Neither the caller's own role nor an owner's role can be changed.
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   userId path string true "User ID"
// @Param   role body dto.UpdateMemberRoleRequest true "New role"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Member not found"
// @Security BearerAuth
// @Router /tenants/me/members/{userId}/role [patch]
func (h *tenantHandler) updateMemberRole(c *gin.Context) {
	authCtx, ok := authContext(c)
	if !ok {
		return
	}
	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	member, err := h.tenantService.UpdateMemberRole(c.Request.Context(), authCtx, c.Param("userId"), req)
	if err != nil {
		respondError(c, err, "update member role")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

// removeMember godoc
// @Summary Remove a member from the current tenant
// @Description Admin or owner. The caller and owners cannot be removed.
// @Tags tenants
// @Produce  json
// @Param   userId path string true "User ID"
// @Success 200 {object} dto.RemoveMemberResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Member not found"
// @Security BearerAuth
// @Router /tenants/me/members/{userId} [delete]
func (h *tenantHandler) removeMember(c *gin.Context) {
	authCtx, ok := authContext(c)
	if !ok {
		return
	}
	userID := c.Param("userId")

	if err := h.tenantService.RemoveMember(c.Request.Context(), authCtx, userID); err != nil {
		respondError(c, err, "remove member")
		return
	}
	c.JSON(http.StatusOK, dto.RemoveMemberResponse{Message: "Member removed successfully", RemovedUserID: userID})
}

// listUserTenants godoc
// @Summary List the tenants the caller belongs to
// @Tags tenants
// @Produce  json
// @Success 200 {array} dto.UserTenantResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /tenants [get]
func (h *tenantHandler) listUserTenants(c *gin.Context) {
	user, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tenants, err := h.tenantService.ListUserTenants(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "list tenants")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserTenantResponses(tenants))
}
