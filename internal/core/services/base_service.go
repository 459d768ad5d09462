package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/SscSPs/finance_planner/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RequireWrite rejects callers whose role cannot mutate tenant data.
// It must run before any storage access.
func (s *BaseService) RequireWrite(ctx context.Context, authCtx *domain.AuthorizationContext, action string) error {
	if authCtx == nil || !authCtx.CanWrite() {
		err := fmt.Errorf("%w: insufficient permissions to %s", apperrors.ErrForbidden, action)
		s.LogDebug(ctx, "Write denied", slog.String("action", action), slog.String("role", roleOf(authCtx)))
		return err
	}
	return nil
}

// RequireRead rejects a missing authorization context. Every role can read.
func (s *BaseService) RequireRead(authCtx *domain.AuthorizationContext) error {
	if authCtx == nil || !authCtx.CanRead() {
		return fmt.Errorf("%w: insufficient permissions to read", apperrors.ErrForbidden)
	}
	return nil
}

// logUnexpected logs err unless it is an expected client-facing outcome.
func (s *BaseService) logUnexpected(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrForbidden) {
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func roleOf(authCtx *domain.AuthorizationContext) string {
	if authCtx == nil {
		return ""
	}
	return authCtx.Role.String()
}
