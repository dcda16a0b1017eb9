package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"seller-payout-vault/internal/core/ports"
)

// HealthChecker verifies Redis connectivity.
type HealthChecker struct {
	client *redis.Client
}

// NewHealthChecker creates a new Redis health checker.
func NewHealthChecker(client *redis.Client) ports.HealthChecker {
	return &HealthChecker{client: client}
}

func (h *HealthChecker) Name() string { return "redis" }

func (h *HealthChecker) Check(ctx context.Context) error {
	if err := h.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}
