// Package cache keeps a Redis-backed mirror of the list endpoints' responses.
// Every method is a no-op on a nil Service, so handlers behave identically
// when Redis is not configured (tests, degraded mode).
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyTransactions = "glowdesk:transactions"
	KeyAppointments = "glowdesk:appointments"
	KeyClients      = "glowdesk:clients"
	KeyProducts     = "glowdesk:products"
)

type Service struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client) *Service {
	return &Service{rdb: rdb, ttl: 5 * time.Minute}
}

// Get loads a cached value into dest and reports whether it was present.
func (s *Service) Get(ctx context.Context, key string, dest any) bool {
	if s == nil || s.rdb == nil {
		return false
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// Set stores a value under key. Failures are ignored; the cache is advisory.
func (s *Service) Set(ctx context.Context, key string, v any) {
	if s == nil || s.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.rdb.Set(ctx, key, data, s.ttl).Err()
}

// Invalidate drops the given keys after a write.
func (s *Service) Invalidate(ctx context.Context, keys ...string) {
	if s == nil || s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, keys...).Err()
}
