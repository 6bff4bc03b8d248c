package auth

import (
	"sync"
	"time"

	"github.com/product-catalog/api/pkg/cache"
)

// Blacklist records revoked token IDs (jti) until their natural expiry.
type Blacklist interface {
	// Revoke marks jti as revoked for ttl (the token's remaining lifetime).
	Revoke(jti string, ttl time.Duration) error
	// IsRevoked reports whether jti has been revoked.
	IsRevoked(jti string) (bool, error)
}

const blacklistKeyPrefix = "auth:blacklist:"

// RedisBlacklist stores revoked jtis in Redis. Entries expire together
// with the token, so the set never needs manual cleanup. It fails closed:
// when Redis cannot answer, Revoke and IsRevoked return the error instead
// of pretending the token is active — a logout must never report success
// while leaving the token usable.
type RedisBlacklist struct{}

func (RedisBlacklist) Revoke(jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to record
	}
	if cache.RDB == nil {
		return cache.ErrUnavailable
	}
	return cache.Set(blacklistKeyPrefix+jti, true, ttl)
}

func (RedisBlacklist) IsRevoked(jti string) (bool, error) {
	return cache.Exists(blacklistKeyPrefix + jti)
}

// MemoryBlacklist is an in-process Blacklist for tests and single-node
// deployments without Redis.
type MemoryBlacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{entries: make(map[string]time.Time)}
}

func (b *MemoryBlacklist) Revoke(jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[jti] = time.Now().Add(ttl)
	return nil
}

func (b *MemoryBlacklist) IsRevoked(jti string) (bool, error) {
	b.mu.RLock()
	exp, ok := b.entries[jti]
	b.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		b.mu.Lock()
		delete(b.entries, jti)
		b.mu.Unlock()
		return false, nil
	}
	return true, nil
}

var blacklist Blacklist = RedisBlacklist{}

// UseBlacklist swaps the blacklist implementation. Tests use this to
// install a MemoryBlacklist.
func UseBlacklist(b Blacklist) {
	blacklist = b
}
