package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"seller-payout-vault/internal/core/domain"
	"seller-payout-vault/internal/core/ports"
)

const sellerColumns = `id, email, password_hash, store_name, status, created_at, updated_at`

// SellerRepo implements ports.SellerRepository using PostgreSQL.
type SellerRepo struct {
	pool Pool
}

// NewSellerRepo creates a new seller repository.
func NewSellerRepo(pool Pool) ports.SellerRepository {
	return &SellerRepo{pool: pool}
}

func (r *SellerRepo) Create(ctx context.Context, seller *domain.Seller) error {
	query := `
		INSERT INTO sellers (` + sellerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		seller.ID, seller.Email, seller.PasswordHash, seller.StoreName,
		seller.Status, seller.CreatedAt, seller.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting seller: %w", err)
	}
	return nil
}

func (r *SellerRepo) GetByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE email = $1`

	row := r.pool.QueryRow(ctx, query, email)
	return scanSeller(row)
}

func (r *SellerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanSeller(row)
}

// GetByIDForUpdate locks the seller row for the duration of tx. Every
// payout method mutation takes this lock first, so writes for one
// seller never interleave.
func (r *SellerRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE id = $1 FOR UPDATE`

	row := tx.QueryRow(ctx, query, id)
	return scanSeller(row)
}

func scanSeller(row pgx.Row) (*domain.Seller, error) {
	var s domain.Seller
	err := row.Scan(
		&s.ID, &s.Email, &s.PasswordHash, &s.StoreName,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning seller: %w", err)
	}
	return &s, nil
}
