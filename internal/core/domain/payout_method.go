package domain

import (
	"time"

	"github.com/google/uuid"
)

// PayoutMethodKind is the closed set of supported payout destinations.
type PayoutMethodKind string

const (
	KindBankTransfer PayoutMethodKind = "bank_transfer"
	KindMobileMoney  PayoutMethodKind = "mobile_money"
	KindPayPal       PayoutMethodKind = "paypal"
	KindCrypto       PayoutMethodKind = "crypto"
)

// ValidKind reports whether k is one of the supported payout method kinds.
func ValidKind(k PayoutMethodKind) bool {
	switch k {
	case KindBankTransfer, KindMobileMoney, KindPayPal, KindCrypto:
		return true
	}
	return false
}

// VerificationStatus tracks whether a payout method has been confirmed
// usable for disbursement.
//
// State machine: pending -> verified (terminal) or pending -> failed
// (terminal; no exposed operation currently reaches it). unverified is
// the initial and terminal state for kinds that are never verified.
type VerificationStatus string

const (
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationFailed     VerificationStatus = "failed"
	VerificationUnverified VerificationStatus = "unverified"
)

// PayoutMethod is a seller-configured destination for receiving earnings.
// Fields suffixed Enc hold AES-256-GCM ciphertext and must never be
// serialized or logged; which fields are meaningful depends on Kind.
type PayoutMethod struct {
	ID       uuid.UUID        `json:"id"`
	SellerID uuid.UUID        `json:"seller_id"`
	Kind     PayoutMethodKind `json:"kind"`

	// bank_transfer
	BankName          *string `json:"bank_name,omitempty"`
	AccountNumberEnc  *string `json:"-"`
	RoutingNumberEnc  *string `json:"-"`
	AccountHolderName *string `json:"account_holder_name,omitempty"`
	AccountType       *string `json:"account_type,omitempty"` // checking | savings
	Country           *string `json:"country,omitempty"`
	Currency          *string `json:"currency,omitempty"` // ISO-4217
	SwiftCode         *string `json:"swift_code,omitempty"`
	IBAN              *string `json:"iban,omitempty"`

	// paypal
	PayPalEmail *string `json:"paypal_email,omitempty"`

	// mobile_money
	MobileMoneyProvider  *string `json:"mobile_money_provider,omitempty"`
	MobileMoneyNumberEnc *string `json:"-"`

	// crypto
	CryptoWallet *string `json:"crypto_wallet,omitempty"`

	IsDefault          bool               `json:"is_default"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	VerificationCode   *string            `json:"-"` // ephemeral, never returned to callers

	AddedAt        time.Time  `json:"added_at"`
	VerifiedAt     *time.Time `json:"verified_at,omitempty"`
	LastModifiedAt *time.Time `json:"last_modified_at,omitempty"`
}

// RequiresVerification reports whether this kind goes through the
// micro-deposit style verification workflow.
func (m *PayoutMethod) RequiresVerification() bool {
	return m.Kind == KindBankTransfer
}

// IsVerified reports whether the method is usable for disbursement.
func (m *PayoutMethod) IsVerified() bool {
	return m.VerificationStatus == VerificationVerified
}
