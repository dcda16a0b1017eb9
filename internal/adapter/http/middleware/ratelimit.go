package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"seller-payout-vault/pkg/apperror"
	"seller-payout-vault/pkg/response"
)

// RateLimitStore counts requests per key within a window.
type RateLimitStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitRule bounds requests for one endpoint group.
type RateLimitRule struct {
	Name   string
	Limit  int64
	Window time.Duration
}

// Rate limit rules per endpoint group.
var (
	RuleAuthLogin    = RateLimitRule{Name: "auth_login", Limit: 10, Window: time.Minute}
	RuleAuthRegister = RateLimitRule{Name: "auth_register", Limit: 5, Window: time.Minute}
	RulePayoutRead   = RateLimitRule{Name: "payout_read", Limit: 60, Window: time.Minute}
	RulePayoutWrite  = RateLimitRule{Name: "payout_write", Limit: 20, Window: time.Minute}
)

// RateLimit enforces a fixed-window limit keyed by client IP. Store
// failures fail open: a Redis outage should not take payouts down with
// it.
func RateLimit(store RateLimitStore, rule RateLimitRule, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rule.Name + ":" + c.ClientIP()

		count, err := store.Increment(c.Request.Context(), key, rule.Window)
		if err != nil {
			logger.Error().Err(err).Str("rule", rule.Name).Msg("rate limit store unavailable")
			c.Next()
			return
		}

		if count > rule.Limit {
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}
		c.Next()
	}
}
