package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seller-payout-vault/config"
	"seller-payout-vault/internal/core/ports"
)

func newTestGuard(t *testing.T) (ports.ReauthGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	guard := NewReauthGuard(client, config.SecurityConfig{
		ReauthMaxFailures:   3,
		ReauthLockoutWindow: 15 * time.Minute,
	})
	return guard, mr
}

func TestReauthGuard_AllowedByDefault(t *testing.T) {
	guard, _ := newTestGuard(t)

	allowed, err := guard.Allowed(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestReauthGuard_LocksAfterMaxFailures(t *testing.T) {
	guard, _ := newTestGuard(t)
	ctx := context.Background()
	sellerID := uuid.New()

	for i := 0; i < 2; i++ {
		require.NoError(t, guard.RecordFailure(ctx, sellerID))
		allowed, err := guard.Allowed(ctx, sellerID)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	require.NoError(t, guard.RecordFailure(ctx, sellerID))
	allowed, err := guard.Allowed(ctx, sellerID)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestReauthGuard_ResetClearsLockout(t *testing.T) {
	guard, _ := newTestGuard(t)
	ctx := context.Background()
	sellerID := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, guard.RecordFailure(ctx, sellerID))
	}
	allowed, err := guard.Allowed(ctx, sellerID)
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, guard.Reset(ctx, sellerID))
	allowed, err = guard.Allowed(ctx, sellerID)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestReauthGuard_WindowExpiry(t *testing.T) {
	guard, mr := newTestGuard(t)
	ctx := context.Background()
	sellerID := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, guard.RecordFailure(ctx, sellerID))
	}

	mr.FastForward(16 * time.Minute)

	allowed, err := guard.Allowed(ctx, sellerID)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestReauthGuard_SellersIsolated(t *testing.T) {
	guard, _ := newTestGuard(t)
	ctx := context.Background()
	locked, other := uuid.New(), uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, guard.RecordFailure(ctx, locked))
	}

	allowed, err := guard.Allowed(ctx, other)
	require.NoError(t, err)
	assert.True(t, allowed)
}
