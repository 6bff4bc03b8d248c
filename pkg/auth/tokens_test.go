package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/product-catalog/api/config"
)

func useFreshBlacklist(t *testing.T) *MemoryBlacklist {
	t.Helper()
	b := NewMemoryBlacklist()
	UseBlacklist(b)
	t.Cleanup(func() { UseBlacklist(RedisBlacklist{}) })
	return b
}

func TestIssueAndValidate(t *testing.T) {
	useFreshBlacklist(t)

	token, err := Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.ID, "every token carries a unique jti")
}

func TestValidateRejectsGarbage(t *testing.T) {
	useFreshBlacklist(t)

	_, err := Validate("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	useFreshBlacklist(t)

	token, err := Issue(1)
	require.NoError(t, err)

	_, err = Validate(token + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRevokeBlocksToken(t *testing.T) {
	useFreshBlacklist(t)

	token, err := Issue(7)
	require.NoError(t, err)

	require.NoError(t, Revoke(token))

	_, err = Validate(token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshRotatesAndRevokesOld(t *testing.T) {
	useFreshBlacklist(t)

	old, err := Issue(7)
	require.NoError(t, err)

	fresh, err := Refresh(old)
	require.NoError(t, err)
	assert.NotEqual(t, old, fresh)

	_, err = Validate(old)
	assert.ErrorIs(t, err, ErrTokenRevoked, "refreshed-away token must be dead")

	claims, err := Validate(fresh)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestRefreshInvalidTokenFails(t *testing.T) {
	useFreshBlacklist(t)

	_, err := Refresh("garbage")
	assert.Error(t, err)
}

func TestRefreshRevokedTokenFails(t *testing.T) {
	useFreshBlacklist(t)

	token, err := Issue(3)
	require.NoError(t, err)
	require.NoError(t, Revoke(token))

	_, err = Refresh(token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	useFreshBlacklist(t)

	claims := Claims{
		UserID: 5,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   "5",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.JWTSecret()))
	require.NoError(t, err)

	_, err = Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = Refresh(token)
	assert.ErrorIs(t, err, ErrTokenExpired, "an expired token cannot be refreshed")
}

func TestRedisBlacklistFailsClosedWithoutRedis(t *testing.T) {
	// no cache.Connect has run, so the Redis client is absent. Revocation
	// must error out loudly instead of reporting success it cannot deliver.
	b := RedisBlacklist{}

	assert.Error(t, b.Revoke("some-jti", time.Minute))

	_, err := b.IsRevoked("some-jti")
	assert.Error(t, err)

	UseBlacklist(RedisBlacklist{})
	t.Cleanup(func() { UseBlacklist(RedisBlacklist{}) })

	token, err := Issue(7)
	require.NoError(t, err)

	assert.Error(t, Revoke(token), "logout must not pretend to succeed")

	_, err = Validate(token)
	assert.Error(t, err, "validation fails closed when the blacklist cannot answer")
}

func TestMemoryBlacklistExpiry(t *testing.T) {
	b := NewMemoryBlacklist()

	require.NoError(t, b.Revoke("jti-1", 10*time.Millisecond))

	revoked, err := b.IsRevoked("jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	time.Sleep(20 * time.Millisecond)

	revoked, err = b.IsRevoked("jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entries expire with the token")
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
