package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"seller-payout-vault/internal/core/domain"
	"seller-payout-vault/internal/core/ports"
)

// AuditRepo implements ports.AuditRepository using PostgreSQL.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a new audit log repository.
func NewAuditRepo(pool Pool) ports.AuditRepository {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, seller_id, action, resource_type, resource_id, details, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		log.ID, log.SellerID, log.Action, log.ResourceType,
		log.ResourceID, log.Details, log.IPAddress, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting audit log: %w", err)
	}
	return nil
}

func (r *AuditRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]domain.AuditLog, error) {
	query := `
		SELECT id, seller_id, action, resource_type, resource_id, details, ip_address, created_at
		FROM audit_logs
		WHERE seller_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, sellerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying audit logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var l domain.AuditLog
		if err := rows.Scan(
			&l.ID, &l.SellerID, &l.Action, &l.ResourceType,
			&l.ResourceID, &l.Details, &l.IPAddress, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit logs: %w", err)
	}
	return logs, nil
}
