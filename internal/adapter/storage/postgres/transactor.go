package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"seller-payout-vault/internal/core/ports"
)

// Transactor hands out pgx transactions to services.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a new transactor backed by the given pool.
func NewTransactor(pool Pool) ports.DBTransactor {
	return &Transactor{pool: pool}
}

func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.Begin(ctx)
}
