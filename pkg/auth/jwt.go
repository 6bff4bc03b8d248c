// Package auth implements JWT issuance and the full token lifecycle:
// issue, validate, revoke and refresh, with a pluggable blacklist for
// revoked tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/product-catalog/api/config"
)

// Claims is the JWT payload. The registered ID (jti) uniquely identifies
// each issued token so it can be revoked individually.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("auth: token is invalid")
	ErrTokenExpired = errors.New("auth: token has expired")
	ErrTokenRevoked = errors.New("auth: token has been revoked")
)

// GenerateToken signs a fresh HS256 token for userID with a unique jti and
// the configured TTL.
func GenerateToken(userID uint) (string, error) {
	now := time.Now()
	ttl := time.Duration(config.JWTTTLMinutes()) * time.Minute

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret()))
}

// ParseToken verifies the signature and expiry and returns the claims.
// It does NOT consult the blacklist; use Validate for the full check.
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(config.JWTSecret()), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.ID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
