package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "seller-payout-vault")

	sellerID := uuid.New()
	token, err := svc.Generate(sellerID, "seller@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, sellerID, claims.SellerID)
	assert.Equal(t, "seller@example.com", claims.Email)
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "seller-payout-vault")
	other := NewTokenService("other-secret", time.Hour, "seller-payout-vault")

	token, err := svc.Generate(uuid.New(), "seller@example.com")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_Validate_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute, "seller-payout-vault")

	token, err := svc.Generate(uuid.New(), "seller@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_Validate_WrongIssuer(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "some-other-service")
	validator := NewTokenService("test-secret", time.Hour, "seller-payout-vault")

	token, err := svc.Generate(uuid.New(), "seller@example.com")
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_Validate_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "seller-payout-vault")

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}
