package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"seller-payout-vault/internal/core/domain"
	"seller-payout-vault/internal/core/ports"
)

// auditService persists audit entries. Writes are fire-and-forget so a
// slow audit table never blocks the request path.
type auditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

// NewAuditService creates a new audit service.
func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) Log(ctx context.Context, entry *domain.AuditLog) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	go func() {
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := s.repo.Create(writeCtx, entry); err != nil {
			s.logger.Error().Err(err).
				Str("action", string(entry.Action)).
				Str("resource_id", entry.ResourceID).
				Msg("failed to write audit log")
		}
	}()
}

func (s *auditService) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListBySeller(ctx, sellerID, limit, offset)
}
