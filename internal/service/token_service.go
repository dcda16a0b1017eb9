package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"seller-payout-vault/internal/core/ports"
)

// tokenService issues and validates HS256 session tokens for the
// seller dashboard.
type tokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewTokenService creates a JWT token service.
func NewTokenService(secret string, expiry time.Duration, issuer string) ports.TokenService {
	return &tokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

type sellerClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *tokenService) Generate(sellerID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := sellerClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sellerID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sellerClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*sellerClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sellerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("parsing subject: %w", err)
	}

	return &ports.TokenClaims{SellerID: sellerID, Email: claims.Email}, nil
}
