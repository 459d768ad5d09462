package utils

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TenantClaims are the claims carried by tokens from the external issuer.
// The subject is the issuer's user id; tenantId names the tenant being accessed.
type TenantClaims struct {
	TenantID string `json:"tenantId"`
	jwt.RegisteredClaims
}

// ParseTenantToken parses a JWT token string and validates its HS256 signature,
// its expiry (which must be present) and its standard time claims.
func ParseTenantToken(tokenString string, secretKey string) (*TenantClaims, error) {
	claims := &TenantClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
