package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"seller-payout-vault/internal/core/domain"
	"seller-payout-vault/internal/core/ports"
	"seller-payout-vault/pkg/apperror"
)

// authService handles seller registration and login.
type authService struct {
	sellers ports.SellerRepository
	hasher  ports.HashService
	tokens  ports.TokenService
	audit   ports.AuditService
	expiry  time.Duration
	logger  zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	sellers ports.SellerRepository,
	hasher ports.HashService,
	tokens ports.TokenService,
	audit ports.AuditService,
	expiry time.Duration,
	logger zerolog.Logger,
) ports.AuthService {
	return &authService{
		sellers: sellers,
		hasher:  hasher,
		tokens:  tokens,
		audit:   audit,
		expiry:  expiry,
		logger:  logger,
	}
}

func (s *authService) Register(ctx context.Context, req ports.RegisterRequest) (*domain.Seller, error) {
	existing, err := s.sellers.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("checking email: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hashing password: %w", err))
	}

	now := time.Now()
	seller := &domain.Seller{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		StoreName:    req.StoreName,
		Status:       domain.SellerStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.sellers.Create(ctx, seller); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("creating seller: %w", err))
	}

	s.audit.Log(ctx, &domain.AuditLog{
		SellerID:     &seller.ID,
		Action:       domain.AuditActionRegister,
		ResourceType: "seller",
		ResourceID:   seller.ID.String(),
	})

	s.logger.Info().Str("seller_id", seller.ID.String()).Msg("seller registered")
	return seller, nil
}

func (s *authService) Login(ctx context.Context, req ports.LoginRequest) (*ports.LoginResponse, error) {
	seller, err := s.sellers.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetching seller: %w", err))
	}
	if seller == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	ok, err := s.hasher.Verify(req.Password, seller.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verifying password: %w", err))
	}
	if !ok {
		return nil, apperror.ErrInvalidCredentials()
	}

	if !seller.IsActive() {
		return nil, apperror.ErrSellerSuspended()
	}

	token, err := s.tokens.Generate(seller.ID, seller.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generating token: %w", err))
	}

	s.audit.Log(ctx, &domain.AuditLog{
		SellerID:     &seller.ID,
		Action:       domain.AuditActionLogin,
		ResourceType: "seller",
		ResourceID:   seller.ID.String(),
	})

	return &ports.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.expiry),
		Seller:    seller,
	}, nil
}
