package auth

import (
	"time"
)

// Issue creates a new access token for userID.
func Issue(userID uint) (string, error) {
	return GenerateToken(userID)
}

// Validate performs the full token check: signature, expiry and blacklist.
func Validate(tokenStr string) (*Claims, error) {
	claims, err := ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}

	revoked, err := blacklist.IsRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Revoke blacklists the token for its remaining lifetime. The token must
// still be valid; revoking an expired or malformed token is an error.
func Revoke(tokenStr string) error {
	claims, err := Validate(tokenStr)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	return blacklist.Revoke(claims.ID, ttl)
}

// Refresh validates the current token, revokes it and issues a fresh one
// for the same user. A token that fails validation is never blacklisted,
// so a rejected refresh leaves the old token's state untouched.
func Refresh(tokenStr string) (string, error) {
	claims, err := Validate(tokenStr)
	if err != nil {
		return "", err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := blacklist.Revoke(claims.ID, ttl); err != nil {
		return "", err
	}

	return GenerateToken(claims.UserID)
}
