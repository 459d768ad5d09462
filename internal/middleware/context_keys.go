package middleware

import (
	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	authContextKey = "authContext"
	identityKey    = "identity"
)

// GetAuthContext retrieves the resolved authorization context from the Gin context.
// It is only present on routes behind TenantAuthMiddleware.
func GetAuthContext(c *gin.Context) (*domain.AuthorizationContext, bool) {
	v, exists := c.Get(authContextKey)
	if !exists {
		return nil, false
	}
	authCtx, ok := v.(*domain.AuthorizationContext)
	return authCtx, ok && authCtx != nil
}

// GetIdentity retrieves the resolved user. It is set by both auth middlewares.
func GetIdentity(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}
