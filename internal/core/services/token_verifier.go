package services

import (
	"errors"
	"fmt"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/SscSPs/finance_planner/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// JWTTokenVerifier checks HS256 tokens issued by the external identity service.
type JWTTokenVerifier struct {
	secret string
}

var _ portssvc.TokenVerifier = (*JWTTokenVerifier)(nil)

// NewJWTTokenVerifier creates a verifier for tokens signed with secret.
func NewJWTTokenVerifier(secret string) *JWTTokenVerifier {
	return &JWTTokenVerifier{secret: secret}
}

// Verify validates signature and expiry and requires the sub and tenantId claims.
func (v *JWTTokenVerifier) Verify(token string) (*domain.TokenClaims, error) {
	claims, err := utils.ParseTenantToken(token, v.secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token has expired", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token missing subject", apperrors.ErrUnauthorized)
	}
	if claims.TenantID == "" {
		return nil, fmt.Errorf("%w: token missing tenantId", apperrors.ErrUnauthorized)
	}

	out := &domain.TokenClaims{Subject: claims.Subject, TenantID: claims.TenantID}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
