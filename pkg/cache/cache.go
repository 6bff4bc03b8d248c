// Package cache provides Redis-backed caching helpers.
//
// All helpers no-op (or report a miss) when Redis is unavailable, so the
// API keeps serving from the database without it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/product-catalog/api/config"
)

var RDB *redis.Client
var Ctx = context.Background()

// ErrUnavailable is returned by helpers that must not silently degrade
// when Redis is down or was never connected.
var ErrUnavailable = errors.New("cache: redis unavailable")

// Connect initialises the Redis client and verifies the connection with a
// ping. Returns an error so the caller can react (log warning, fall back,
// or abort).
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		RDB = nil // mark as unavailable so Get/Set/Del no-op safely
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(val), dest) == nil
}

// Set stores value in Redis under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Exists reports whether key is present. Unlike Get it does not treat an
// unreachable Redis as a miss: callers that make security decisions on
// the answer (the token blacklist) need the error.
func Exists(key string) (bool, error) {
	if RDB == nil {
		return false, ErrUnavailable
	}
	n, err := RDB.Exists(Ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Forget removes one or more keys from Redis.
func Forget(keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}
