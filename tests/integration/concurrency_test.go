package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seller-payout-vault/internal/core/domain"
	"seller-payout-vault/internal/core/ports"
)

// Concurrent adds race for the last bank method slot. The seller row
// lock serializes them, so exactly one wins and the ceiling holds.
func TestConcurrentAdds_CeilingHolds(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "race@example.com", "integration-pass")

	// Fill four of the five bank slots.
	for i := 0; i < 4; i++ {
		w := env.do(t, http.MethodPost, "/api/v1/payout-methods", token,
			bankBody(fmt.Sprintf("400000000%d", i), "021000021"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	var sellerID uuid.UUID
	env.store.mu.Lock()
	for _, s := range env.store.sellers {
		sellerID = s.ID
	}
	env.store.mu.Unlock()
	require.NotEqual(t, uuid.Nil, sellerID)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = env.payouts.Add(context.Background(), sellerID, ports.AddPayoutMethodRequest{
				Kind:              domain.KindBankTransfer,
				BankName:          "First National",
				AccountNumber:     fmt.Sprintf("500000000%d", n),
				RoutingNumber:     "021000021",
				AccountHolderName: "Jane Seller",
				Password:          "integration-pass",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one racer should take the last slot")

	env.store.mu.Lock()
	bankCount := 0
	for _, m := range env.store.methods {
		if m.Kind == domain.KindBankTransfer {
			bankCount++
		}
	}
	env.store.mu.Unlock()
	assert.Equal(t, 5, bankCount)
}
