package dto

import (
	"seller-payout-vault/internal/core/domain"
	"seller-payout-vault/internal/core/ports"
)

// RegisterRequest is the seller signup payload.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	StoreName string `json:"store_name" binding:"required,min=2,max=100"`
}

func (r RegisterRequest) ToPort() ports.RegisterRequest {
	return ports.RegisterRequest{
		Email:     r.Email,
		Password:  r.Password,
		StoreName: r.StoreName,
	}
}

// LoginRequest is the seller login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) ToPort() ports.LoginRequest {
	return ports.LoginRequest{Email: r.Email, Password: r.Password}
}

// AddPayoutMethodRequest creates a payout method. Which optional
// fields are required depends on kind; the service enforces that.
type AddPayoutMethodRequest struct {
	Kind string `json:"kind" binding:"required,oneof=bank_transfer mobile_money paypal crypto"`

	BankName          string `json:"bank_name" binding:"omitempty,max=100"`
	AccountNumber     string `json:"account_number" binding:"omitempty,min=4,max=34"`
	RoutingNumber     string `json:"routing_number" binding:"omitempty,min=4,max=34"`
	AccountHolderName string `json:"account_holder_name" binding:"omitempty,max=100"`
	AccountType       string `json:"account_type" binding:"omitempty,oneof=checking savings"`
	Country           string `json:"country" binding:"omitempty,iso3166_1_alpha2"`
	Currency          string `json:"currency" binding:"omitempty,currency_code"`
	SwiftCode         string `json:"swift_code" binding:"omitempty,swift_code"`
	IBAN              string `json:"iban" binding:"omitempty,max=34"`

	PayPalEmail string `json:"paypal_email" binding:"omitempty,email"`

	MobileMoneyProvider string `json:"mobile_money_provider" binding:"omitempty,max=50"`
	MobileMoneyNumber   string `json:"mobile_money_number" binding:"omitempty,min=6,max=20"`

	CryptoWallet string `json:"crypto_wallet" binding:"omitempty,max=100"`

	IsDefault bool `json:"is_default"`

	Password string `json:"password" binding:"required"`
}

func (r AddPayoutMethodRequest) ToPort() ports.AddPayoutMethodRequest {
	return ports.AddPayoutMethodRequest{
		Kind:                domain.PayoutMethodKind(r.Kind),
		BankName:            r.BankName,
		AccountNumber:       r.AccountNumber,
		RoutingNumber:       r.RoutingNumber,
		AccountHolderName:   r.AccountHolderName,
		AccountType:         r.AccountType,
		Country:             r.Country,
		Currency:            r.Currency,
		SwiftCode:           r.SwiftCode,
		IBAN:                r.IBAN,
		PayPalEmail:         r.PayPalEmail,
		MobileMoneyProvider: r.MobileMoneyProvider,
		MobileMoneyNumber:   r.MobileMoneyNumber,
		CryptoWallet:        r.CryptoWallet,
		IsDefault:           r.IsDefault,
		Password:            r.Password,
	}
}

// UpdatePayoutMethodRequest is a partial update; absent fields stay
// untouched.
type UpdatePayoutMethodRequest struct {
	BankName          *string `json:"bank_name" binding:"omitempty,max=100"`
	AccountNumber     *string `json:"account_number" binding:"omitempty,min=4,max=34"`
	RoutingNumber     *string `json:"routing_number" binding:"omitempty,min=4,max=34"`
	AccountHolderName *string `json:"account_holder_name" binding:"omitempty,max=100"`
	AccountType       *string `json:"account_type" binding:"omitempty,oneof=checking savings"`
	Country           *string `json:"country" binding:"omitempty,iso3166_1_alpha2"`
	Currency          *string `json:"currency" binding:"omitempty,currency_code"`
	SwiftCode         *string `json:"swift_code" binding:"omitempty,swift_code"`
	IBAN              *string `json:"iban" binding:"omitempty,max=34"`

	PayPalEmail *string `json:"paypal_email" binding:"omitempty,email"`

	MobileMoneyProvider *string `json:"mobile_money_provider" binding:"omitempty,max=50"`
	MobileMoneyNumber   *string `json:"mobile_money_number" binding:"omitempty,min=6,max=20"`

	CryptoWallet *string `json:"crypto_wallet" binding:"omitempty,max=100"`

	IsDefault *bool `json:"is_default"`

	Password string `json:"password" binding:"required"`
}

func (r UpdatePayoutMethodRequest) ToPort() ports.UpdatePayoutMethodRequest {
	return ports.UpdatePayoutMethodRequest{
		BankName:            r.BankName,
		AccountNumber:       r.AccountNumber,
		RoutingNumber:       r.RoutingNumber,
		AccountHolderName:   r.AccountHolderName,
		AccountType:         r.AccountType,
		Country:             r.Country,
		Currency:            r.Currency,
		SwiftCode:           r.SwiftCode,
		IBAN:                r.IBAN,
		PayPalEmail:         r.PayPalEmail,
		MobileMoneyProvider: r.MobileMoneyProvider,
		MobileMoneyNumber:   r.MobileMoneyNumber,
		CryptoWallet:        r.CryptoWallet,
		IsDefault:           r.IsDefault,
		Password:            r.Password,
	}
}

// DeletePayoutMethodRequest removes a payout method.
type DeletePayoutMethodRequest struct {
	Password string `json:"password" binding:"required"`
}

func (r DeletePayoutMethodRequest) ToPort() ports.DeletePayoutMethodRequest {
	return ports.DeletePayoutMethodRequest{Password: r.Password}
}

// VerifyPayoutMethodRequest confirms a pending payout method. The
// confirmation flag is validated by the service so the caller gets a
// domain error code, not a binding error.
type VerifyPayoutMethodRequest struct {
	ConfirmAccountDetails bool   `json:"confirm_account_details"`
	Password              string `json:"password" binding:"required"`
}

func (r VerifyPayoutMethodRequest) ToPort() ports.VerifyPayoutMethodRequest {
	return ports.VerifyPayoutMethodRequest{
		ConfirmAccountDetails: r.ConfirmAccountDetails,
		Password:              r.Password,
	}
}
