package middleware

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// TenantAuthMiddleware resolves the bearer token into an authorization context
// (user, tenant and role) before any handler runs.
func TenantAuthMiddleware(gate portssvc.AuthorizationGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			abortWithError(c, err)
			return
		}

		authCtx, err := gate.Resolve(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context()).With(
			slog.String("user_id", authCtx.UserID()),
			slog.String("tenant_id", authCtx.TenantID()),
			slog.String("role", authCtx.Role.String()),
			slog.Time("token_expires_at", authCtx.ExpiresAt),
		)
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), logger))
		c.Set(authContextKey, authCtx)
		c.Set(identityKey, &authCtx.User)

		c.Next()
	}
}

// IdentityMiddleware verifies the token and resolves the user without
// requiring the token's tenant to exist or include the user.
func IdentityMiddleware(gate portssvc.AuthorizationGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			abortWithError(c, err)
			return
		}

		user, err := gate.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("user_id", user.UserID))
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), logger))
		c.Set(identityKey, user)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("%w: authorization header required", apperrors.ErrUnauthorized)
	}
	scheme, token, found := strings.Cut(authHeader, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", fmt.Errorf("%w: authorization header format must be Bearer {token}", apperrors.ErrUnauthorized)
	}
	return token, nil
}

// abortWithError writes the mapped error response. 401 responses carry a
// Bearer challenge.
func abortWithError(c *gin.Context, err error) {
	status, msg := apperrors.HTTPStatus(err)
	logger := GetLoggerFromCtx(c.Request.Context())
	if status >= 500 {
		logger.Error("Authorization failed", slog.String("error", err.Error()))
	} else {
		logger.Warn("Authorization rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	if status == 401 {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
