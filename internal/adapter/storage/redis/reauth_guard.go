package redis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"seller-payout-vault/config"
	"seller-payout-vault/internal/core/ports"
)

// ReauthGuard tracks failed password confirmations per seller in
// Redis. The counter expires with the lockout window, so a lockout
// clears itself without any cleanup job.
type ReauthGuard struct {
	client *redis.Client
	cfg    config.SecurityConfig
}

// NewReauthGuard creates a Redis-backed reauth guard.
func NewReauthGuard(client *redis.Client, cfg config.SecurityConfig) ports.ReauthGuard {
	return &ReauthGuard{client: client, cfg: cfg}
}

func reauthKey(sellerID uuid.UUID) string {
	return "reauth_failures:" + sellerID.String()
}

func (g *ReauthGuard) Allowed(ctx context.Context, sellerID uuid.UUID) (bool, error) {
	count, err := g.client.Get(ctx, reauthKey(sellerID)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading reauth counter: %w", err)
	}
	return count < g.cfg.ReauthMaxFailures, nil
}

func (g *ReauthGuard) RecordFailure(ctx context.Context, sellerID uuid.UUID) error {
	key := reauthKey(sellerID)

	count, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("incrementing reauth counter: %w", err)
	}
	// Window starts at the first failure.
	if count == 1 {
		if err := g.client.Expire(ctx, key, g.cfg.ReauthLockoutWindow).Err(); err != nil {
			return fmt.Errorf("setting reauth counter expiry: %w", err)
		}
	}
	return nil
}

func (g *ReauthGuard) Reset(ctx context.Context, sellerID uuid.UUID) error {
	if err := g.client.Del(ctx, reauthKey(sellerID)).Err(); err != nil {
		return fmt.Errorf("resetting reauth counter: %w", err)
	}
	return nil
}
