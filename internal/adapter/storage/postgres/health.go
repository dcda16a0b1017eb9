package postgres

import (
	"context"
	"fmt"

	"seller-payout-vault/internal/core/ports"
)

// HealthChecker verifies database connectivity.
type HealthChecker struct {
	pool Pool
}

// NewHealthChecker creates a new database health checker.
func NewHealthChecker(pool Pool) ports.HealthChecker {
	return &HealthChecker{pool: pool}
}

func (h *HealthChecker) Name() string { return "postgres" }

func (h *HealthChecker) Check(ctx context.Context) error {
	var one int
	if err := h.pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}
