package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/SscSPs/finance_planner/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes {"error": ...} with the status mapped from err. Server
// errors are logged with their full chain and answered with a fixed message.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, msg := apperrors.HTTPStatus(err)

	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
	} else {
		logger.Warn("Rejected request to "+action, slog.Int("status", status), slog.String("error", err.Error()))
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.JSON(status, gin.H{"error": msg})
}

// respondBindError answers a request whose body or query failed to bind.
func respondBindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + ": " + err.Error()})
}

// authContext fetches the resolved authorization context. Its absence means a
// route was registered outside the tenant gate.
func authContext(c *gin.Context) (*domain.AuthorizationContext, bool) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Authorization context not found")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return authCtx, ok
}
