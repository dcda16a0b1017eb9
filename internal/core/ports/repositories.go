package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"seller-payout-vault/internal/core/domain"
)

// DBTransactor abstracts transaction management for services that need
// to coordinate multiple repository calls atomically.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SellerRepository handles seller persistence.
type SellerRepository interface {
	Create(ctx context.Context, seller *domain.Seller) error
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	// GetByIDForUpdate locks the seller row within tx, serializing
	// payout method mutations for that seller.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Seller, error)
}

// PayoutMethodRepository handles payout method persistence.
// Methods taking a pgx.Tx participate in a caller-managed transaction.
type PayoutMethodRepository interface {
	Create(ctx context.Context, tx pgx.Tx, method *domain.PayoutMethod) error
	GetByID(ctx context.Context, id, sellerID uuid.UUID) (*domain.PayoutMethod, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id, sellerID uuid.UUID) (*domain.PayoutMethod, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.PayoutMethod, error)
	CountByKind(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID, kind domain.PayoutMethodKind) (int, error)
	// ClearDefault unsets is_default on every method of the seller.
	ClearDefault(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID) error
	Update(ctx context.Context, tx pgx.Tx, method *domain.PayoutMethod) error
	Delete(ctx context.Context, tx pgx.Tx, id, sellerID uuid.UUID) error
}

// AuditRepository handles audit log persistence.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]domain.AuditLog, error)
}
