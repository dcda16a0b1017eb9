package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"seller-payout-vault/internal/core/domain"
)

// EncryptionService encrypts payout secrets at rest and produces the
// masked projections that leave the service boundary.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(stored string) (string, error)
	MaskAccountNumber(plain string) string
	MaskRoutingNumber(plain string) string
}

// HashService handles password hashing and verification.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenClaims are the verified contents of a session token.
type TokenClaims struct {
	SellerID uuid.UUID
	Email    string
}

// TokenService issues and validates seller session tokens.
type TokenService interface {
	Generate(sellerID uuid.UUID, email string) (string, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// ReauthGuard throttles failed password confirmations on sensitive
// operations. After too many failures in a window the seller is locked
// out of step-up auth until the window expires.
type ReauthGuard interface {
	Allowed(ctx context.Context, sellerID uuid.UUID) (bool, error)
	RecordFailure(ctx context.Context, sellerID uuid.UUID) error
	Reset(ctx context.Context, sellerID uuid.UUID) error
}

// RegisterRequest carries seller signup input.
type RegisterRequest struct {
	Email     string
	Password  string
	StoreName string
}

// LoginRequest carries seller login input.
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Seller    *domain.Seller `json:"seller"`
}

// AuthService handles seller registration and authentication.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.Seller, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

// AddPayoutMethodRequest carries input for creating a payout method.
// Optional fields are empty strings when absent; the service validates
// presence per kind.
type AddPayoutMethodRequest struct {
	Kind domain.PayoutMethodKind

	BankName          string
	AccountNumber     string
	RoutingNumber     string
	AccountHolderName string
	AccountType       string
	Country           string
	Currency          string
	SwiftCode         string
	IBAN              string

	PayPalEmail string

	MobileMoneyProvider string
	MobileMoneyNumber   string

	CryptoWallet string

	IsDefault bool

	// Password re-confirms the seller's identity for this mutation.
	Password string
}

// UpdatePayoutMethodRequest carries a partial update. Nil fields are
// left unchanged; secret fields are re-encrypted when present.
type UpdatePayoutMethodRequest struct {
	BankName          *string
	AccountNumber     *string
	RoutingNumber     *string
	AccountHolderName *string
	AccountType       *string
	Country           *string
	Currency          *string
	SwiftCode         *string
	IBAN              *string

	PayPalEmail *string

	MobileMoneyProvider *string
	MobileMoneyNumber   *string

	CryptoWallet *string

	IsDefault *bool

	Password string
}

// DeletePayoutMethodRequest carries input for removing a payout method.
type DeletePayoutMethodRequest struct {
	Password string
}

// VerifyPayoutMethodRequest carries the seller's attestation that the
// verification deposits arrived.
type VerifyPayoutMethodRequest struct {
	ConfirmAccountDetails bool
	Password              string
}

// MaskedPayoutMethod is the only shape in which payout methods leave
// the service layer. Secrets appear masked or not at all.
type MaskedPayoutMethod struct {
	ID   uuid.UUID               `json:"id"`
	Kind domain.PayoutMethodKind `json:"kind"`

	BankName          *string `json:"bank_name,omitempty"`
	AccountNumber     *string `json:"account_number,omitempty"` // masked
	RoutingNumber     *string `json:"routing_number,omitempty"` // masked
	AccountHolderName *string `json:"account_holder_name,omitempty"`
	AccountType       *string `json:"account_type,omitempty"`
	Country           *string `json:"country,omitempty"`
	Currency          *string `json:"currency,omitempty"`
	SwiftCode         *string `json:"swift_code,omitempty"`
	IBAN              *string `json:"iban,omitempty"`

	PayPalEmail *string `json:"paypal_email,omitempty"`

	MobileMoneyProvider *string `json:"mobile_money_provider,omitempty"`
	MobileMoneyNumber   *string `json:"mobile_money_number,omitempty"` // masked

	CryptoWallet *string `json:"crypto_wallet,omitempty"`

	IsDefault          bool                      `json:"is_default"`
	VerificationStatus domain.VerificationStatus `json:"verification_status"`

	AddedAt        time.Time  `json:"added_at"`
	VerifiedAt     *time.Time `json:"verified_at,omitempty"`
	LastModifiedAt *time.Time `json:"last_modified_at,omitempty"`
}

// PayoutMethodService manages seller payout destinations. All mutations
// require password re-confirmation.
type PayoutMethodService interface {
	Add(ctx context.Context, sellerID uuid.UUID, req AddPayoutMethodRequest) (*MaskedPayoutMethod, error)
	Update(ctx context.Context, sellerID, methodID uuid.UUID, req UpdatePayoutMethodRequest) (*MaskedPayoutMethod, error)
	Delete(ctx context.Context, sellerID, methodID uuid.UUID, req DeletePayoutMethodRequest) error
	Verify(ctx context.Context, sellerID, methodID uuid.UUID, req VerifyPayoutMethodRequest) (*MaskedPayoutMethod, error)
	List(ctx context.Context, sellerID uuid.UUID) ([]MaskedPayoutMethod, error)
}

// AuditService records audit events.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]domain.AuditLog, error)
}
