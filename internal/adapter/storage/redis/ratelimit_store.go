package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitStore implements fixed-window rate limiting in Redis.
type RateLimitStore struct {
	client *redis.Client
}

// NewRateLimitStore creates a Redis-backed rate limit store.
func NewRateLimitStore(client *redis.Client) *RateLimitStore {
	return &RateLimitStore{client: client}
}

// Increment bumps the counter for key and returns the new count. The
// window TTL is set when the counter is created.
func (s *RateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing rate limit counter: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, "ratelimit:"+key, window).Err(); err != nil {
			return 0, fmt.Errorf("setting rate limit expiry: %w", err)
		}
	}
	return count, nil
}
