package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"seller-payout-vault/internal/core/domain"
	"seller-payout-vault/internal/core/ports"
	"seller-payout-vault/internal/core/ports/mocks"
)

type authFixture struct {
	sellers *mocks.MockSellerRepository
	hasher  *mocks.MockHashService
	tokens  *mocks.MockTokenService
	audit   *mocks.MockAuditService
	svc     ports.AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &authFixture{
		sellers: mocks.NewMockSellerRepository(ctrl),
		hasher:  mocks.NewMockHashService(ctrl),
		tokens:  mocks.NewMockTokenService(ctrl),
		audit:   mocks.NewMockAuditService(ctrl),
	}
	f.svc = NewAuthService(f.sellers, f.hasher, f.tokens, f.audit, 24*time.Hour, zerolog.Nop())
	return f
}

func TestRegister(t *testing.T) {
	f := newAuthFixture(t)

	f.sellers.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(nil, nil)
	f.hasher.EXPECT().Hash("hunter2").Return("$argon2id$hash", nil)

	var created *domain.Seller
	f.sellers.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *domain.Seller) error {
			created = s
			return nil
		})
	f.audit.EXPECT().Log(gomock.Any(), gomock.Any())

	seller, err := f.svc.Register(context.Background(), ports.RegisterRequest{
		Email:     "new@example.com",
		Password:  "hunter2",
		StoreName: "New Store",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", seller.Email)
	assert.Equal(t, domain.SellerStatusActive, seller.Status)
	require.NotNil(t, created)
	assert.Equal(t, "$argon2id$hash", created.PasswordHash)
}

func TestRegister_EmailTaken(t *testing.T) {
	f := newAuthFixture(t)

	f.sellers.EXPECT().GetByEmail(gomock.Any(), "taken@example.com").
		Return(&domain.Seller{ID: uuid.New(), Email: "taken@example.com"}, nil)

	_, err := f.svc.Register(context.Background(), ports.RegisterRequest{
		Email:     "taken@example.com",
		Password:  "hunter2",
		StoreName: "Store",
	})
	assertAppError(t, err, "AUTH_005")
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	sellerID := uuid.New()

	f.sellers.EXPECT().GetByEmail(gomock.Any(), "seller@example.com").
		Return(activeSeller(sellerID), nil)
	f.hasher.EXPECT().Verify("hunter2", "$argon2id$hash").Return(true, nil)
	f.tokens.EXPECT().Generate(sellerID, "seller@example.com").Return("signed.jwt.token", nil)
	f.audit.EXPECT().Log(gomock.Any(), gomock.Any())

	resp, err := f.svc.Login(context.Background(), ports.LoginRequest{
		Email:    "seller@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, sellerID, resp.Seller.ID)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	f.sellers.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

	_, err := f.svc.Login(context.Background(), ports.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2",
	})
	assertAppError(t, err, "AUTH_001")
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	sellerID := uuid.New()

	f.sellers.EXPECT().GetByEmail(gomock.Any(), "seller@example.com").
		Return(activeSeller(sellerID), nil)
	f.hasher.EXPECT().Verify("wrong", "$argon2id$hash").Return(false, nil)

	_, err := f.svc.Login(context.Background(), ports.LoginRequest{
		Email:    "seller@example.com",
		Password: "wrong",
	})
	assertAppError(t, err, "AUTH_001")
}

func TestLogin_SuspendedSeller(t *testing.T) {
	f := newAuthFixture(t)
	sellerID := uuid.New()

	suspended := activeSeller(sellerID)
	suspended.Status = domain.SellerStatusSuspended

	f.sellers.EXPECT().GetByEmail(gomock.Any(), "seller@example.com").Return(suspended, nil)
	f.hasher.EXPECT().Verify("hunter2", "$argon2id$hash").Return(true, nil)

	_, err := f.svc.Login(context.Background(), ports.LoginRequest{
		Email:    "seller@example.com",
		Password: "hunter2",
	})
	assertAppError(t, err, "AUTH_006")
}
