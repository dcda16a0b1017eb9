package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"seller-payout-vault/internal/core/domain"
	"seller-payout-vault/internal/core/ports"
	"seller-payout-vault/pkg/apperror"
)

// maxBankMethods caps the number of bank transfer methods per seller.
const maxBankMethods = 5

// payoutMethodService manages seller payout destinations. Every
// mutation re-confirms the seller's password before touching data, and
// runs inside a transaction holding the seller row lock so concurrent
// mutations for one seller are serialized.
type payoutMethodService struct {
	db        ports.DBTransactor
	methods   ports.PayoutMethodRepository
	sellers   ports.SellerRepository
	encryptor ports.EncryptionService
	hasher    ports.HashService
	reauth    ports.ReauthGuard
	audit     ports.AuditService
	logger    zerolog.Logger
}

// NewPayoutMethodService creates a new payout method service.
func NewPayoutMethodService(
	db ports.DBTransactor,
	methods ports.PayoutMethodRepository,
	sellers ports.SellerRepository,
	encryptor ports.EncryptionService,
	hasher ports.HashService,
	reauth ports.ReauthGuard,
	audit ports.AuditService,
	logger zerolog.Logger,
) ports.PayoutMethodService {
	return &payoutMethodService{
		db:        db,
		methods:   methods,
		sellers:   sellers,
		encryptor: encryptor,
		hasher:    hasher,
		reauth:    reauth,
		audit:     audit,
		logger:    logger,
	}
}

// reauthenticate is the security gate on sensitive mutations: it
// verifies the supplied password against the seller's stored hash,
// counting failures toward a lockout.
func (s *payoutMethodService) reauthenticate(ctx context.Context, sellerID uuid.UUID, password string) error {
	allowed, err := s.reauth.Allowed(ctx, sellerID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("checking reauth lockout: %w", err))
	}
	if !allowed {
		return apperror.ErrReauthLocked()
	}

	seller, err := s.sellers.GetByID(ctx, sellerID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("fetching seller: %w", err))
	}
	if seller == nil {
		return apperror.ErrNotFound("seller")
	}
	if !seller.IsActive() {
		return apperror.ErrSellerSuspended()
	}

	ok, err := s.hasher.Verify(password, seller.PasswordHash)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("verifying password: %w", err))
	}
	if !ok {
		if err := s.reauth.RecordFailure(ctx, sellerID); err != nil {
			s.logger.Error().Err(err).Str("seller_id", sellerID.String()).Msg("failed to record reauth failure")
		}
		return apperror.ErrReauthFailed()
	}

	if err := s.reauth.Reset(ctx, sellerID); err != nil {
		s.logger.Error().Err(err).Str("seller_id", sellerID.String()).Msg("failed to reset reauth counter")
	}
	return nil
}

func (s *payoutMethodService) Add(ctx context.Context, sellerID uuid.UUID, req ports.AddPayoutMethodRequest) (*ports.MaskedPayoutMethod, error) {
	if !domain.ValidKind(req.Kind) {
		return nil, apperror.Validation(fmt.Sprintf("unsupported payout method kind: %s", req.Kind))
	}
	if missing := missingAddFields(req); len(missing) > 0 {
		return nil, apperror.ErrMissingFields(string(req.Kind), missing)
	}

	if err := s.reauthenticate(ctx, sellerID, req.Password); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	// Serializes mutations for this seller.
	seller, err := s.sellers.GetByIDForUpdate(ctx, tx, sellerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("locking seller: %w", err))
	}
	if seller == nil {
		return nil, apperror.ErrNotFound("seller")
	}

	if req.Kind == domain.KindBankTransfer {
		count, err := s.methods.CountByKind(ctx, tx, sellerID, domain.KindBankTransfer)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("counting bank methods: %w", err))
		}
		if count >= maxBankMethods {
			return nil, apperror.ErrPayoutMethodLimit(maxBankMethods)
		}
	}

	method := &domain.PayoutMethod{
		ID:                 uuid.New(),
		SellerID:           sellerID,
		Kind:               req.Kind,
		IsDefault:          req.IsDefault,
		VerificationStatus: domain.VerificationUnverified,
		AddedAt:            time.Now(),
	}

	if err := s.applyAddFields(method, req); err != nil {
		return nil, err
	}

	if method.RequiresVerification() {
		code, err := generateVerificationCode()
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("generating verification code: %w", err))
		}
		method.VerificationStatus = domain.VerificationPending
		method.VerificationCode = &code
	}

	if req.IsDefault {
		if err := s.methods.ClearDefault(ctx, tx, sellerID); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("clearing default: %w", err))
		}
	}

	if err := s.methods.Create(ctx, tx, method); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("creating payout method: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("committing transaction: %w", err))
	}

	s.audit.Log(ctx, &domain.AuditLog{
		SellerID:     &sellerID,
		Action:       domain.AuditActionAddPayoutMethod,
		ResourceType: "payout_method",
		ResourceID:   method.ID.String(),
		Details:      fmt.Sprintf(`{"kind":%q}`, method.Kind),
	})

	s.logger.Info().
		Str("seller_id", sellerID.String()).
		Str("method_id", method.ID.String()).
		Str("kind", string(method.Kind)).
		Msg("payout method added")

	return s.maskMethod(method), nil
}

func (s *payoutMethodService) Update(ctx context.Context, sellerID, methodID uuid.UUID, req ports.UpdatePayoutMethodRequest) (*ports.MaskedPayoutMethod, error) {
	if err := s.reauthenticate(ctx, sellerID, req.Password); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	if _, err := s.sellers.GetByIDForUpdate(ctx, tx, sellerID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("locking seller: %w", err))
	}

	method, err := s.methods.GetByIDForUpdate(ctx, tx, methodID, sellerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetching payout method: %w", err))
	}
	if method == nil {
		return nil, apperror.ErrNotFound("payout method")
	}

	secretsChanged, err := s.applyUpdateFields(method, req)
	if err != nil {
		return nil, err
	}

	// Changing bank credentials invalidates any previous verification.
	if secretsChanged && method.Kind == domain.KindBankTransfer {
		code, err := generateVerificationCode()
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("generating verification code: %w", err))
		}
		method.VerificationStatus = domain.VerificationPending
		method.VerificationCode = &code
		method.VerifiedAt = nil
	}

	if req.IsDefault != nil {
		if *req.IsDefault && !method.IsDefault {
			if err := s.methods.ClearDefault(ctx, tx, sellerID); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("clearing default: %w", err))
			}
		}
		method.IsDefault = *req.IsDefault
	}

	now := time.Now()
	method.LastModifiedAt = &now

	if err := s.methods.Update(ctx, tx, method); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("updating payout method: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("committing transaction: %w", err))
	}

	s.audit.Log(ctx, &domain.AuditLog{
		SellerID:     &sellerID,
		Action:       domain.AuditActionUpdatePayoutMethod,
		ResourceType: "payout_method",
		ResourceID:   method.ID.String(),
	})

	return s.maskMethod(method), nil
}

func (s *payoutMethodService) Delete(ctx context.Context, sellerID, methodID uuid.UUID, req ports.DeletePayoutMethodRequest) error {
	if err := s.reauthenticate(ctx, sellerID, req.Password); err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	if _, err := s.sellers.GetByIDForUpdate(ctx, tx, sellerID); err != nil {
		return apperror.InternalError(fmt.Errorf("locking seller: %w", err))
	}

	method, err := s.methods.GetByIDForUpdate(ctx, tx, methodID, sellerID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("fetching payout method: %w", err))
	}
	if method == nil {
		return apperror.ErrNotFound("payout method")
	}

	if err := s.methods.Delete(ctx, tx, methodID, sellerID); err != nil {
		return apperror.InternalError(fmt.Errorf("deleting payout method: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("committing transaction: %w", err))
	}

	s.audit.Log(ctx, &domain.AuditLog{
		SellerID:     &sellerID,
		Action:       domain.AuditActionDeletePayoutMethod,
		ResourceType: "payout_method",
		ResourceID:   methodID.String(),
	})

	return nil
}

func (s *payoutMethodService) Verify(ctx context.Context, sellerID, methodID uuid.UUID, req ports.VerifyPayoutMethodRequest) (*ports.MaskedPayoutMethod, error) {
	if !req.ConfirmAccountDetails {
		return nil, apperror.ErrConfirmationRequired()
	}

	if err := s.reauthenticate(ctx, sellerID, req.Password); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	if _, err := s.sellers.GetByIDForUpdate(ctx, tx, sellerID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("locking seller: %w", err))
	}

	method, err := s.methods.GetByIDForUpdate(ctx, tx, methodID, sellerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetching payout method: %w", err))
	}
	if method == nil {
		return nil, apperror.ErrNotFound("payout method")
	}

	if method.VerificationStatus != domain.VerificationPending {
		return nil, apperror.ErrNotAwaitingVerification()
	}

	now := time.Now()
	method.VerificationStatus = domain.VerificationVerified
	method.VerifiedAt = &now
	method.VerificationCode = nil
	method.LastModifiedAt = &now

	if err := s.methods.Update(ctx, tx, method); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("updating payout method: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("committing transaction: %w", err))
	}

	s.audit.Log(ctx, &domain.AuditLog{
		SellerID:     &sellerID,
		Action:       domain.AuditActionVerifyPayoutMethod,
		ResourceType: "payout_method",
		ResourceID:   method.ID.String(),
	})

	return s.maskMethod(method), nil
}

func (s *payoutMethodService) List(ctx context.Context, sellerID uuid.UUID) ([]ports.MaskedPayoutMethod, error) {
	methods, err := s.methods.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("listing payout methods: %w", err))
	}

	masked := make([]ports.MaskedPayoutMethod, 0, len(methods))
	for i := range methods {
		masked = append(masked, *s.maskMethod(&methods[i]))
	}
	return masked, nil
}

// maskMethod projects a stored method into its presentation shape.
// Secrets that cannot be decrypted render as "unavailable" rather than
// failing the whole response.
func (s *payoutMethodService) maskMethod(m *domain.PayoutMethod) *ports.MaskedPayoutMethod {
	out := &ports.MaskedPayoutMethod{
		ID:                  m.ID,
		Kind:                m.Kind,
		BankName:            m.BankName,
		AccountHolderName:   m.AccountHolderName,
		AccountType:         m.AccountType,
		Country:             m.Country,
		Currency:            m.Currency,
		SwiftCode:           m.SwiftCode,
		IBAN:                m.IBAN,
		PayPalEmail:         m.PayPalEmail,
		MobileMoneyProvider: m.MobileMoneyProvider,
		CryptoWallet:        m.CryptoWallet,
		IsDefault:           m.IsDefault,
		VerificationStatus:  m.VerificationStatus,
		AddedAt:             m.AddedAt,
		VerifiedAt:          m.VerifiedAt,
		LastModifiedAt:      m.LastModifiedAt,
	}

	if m.AccountNumberEnc != nil {
		out.AccountNumber = strPtr(s.maskStored(m, *m.AccountNumberEnc, s.encryptor.MaskAccountNumber))
	}
	if m.RoutingNumberEnc != nil {
		out.RoutingNumber = strPtr(s.maskStored(m, *m.RoutingNumberEnc, s.encryptor.MaskRoutingNumber))
	}
	if m.MobileMoneyNumberEnc != nil {
		out.MobileMoneyNumber = strPtr(s.maskStored(m, *m.MobileMoneyNumberEnc, s.encryptor.MaskAccountNumber))
	}
	return out
}

func (s *payoutMethodService) maskStored(m *domain.PayoutMethod, stored string, maskFn func(string) string) string {
	plain, err := s.encryptor.Decrypt(stored)
	if err != nil {
		s.logger.Error().Err(err).
			Str("method_id", m.ID.String()).
			Msg("failed to decrypt payout secret")
		return "unavailable"
	}
	return maskFn(plain)
}

// applyAddFields encrypts secrets and copies kind-specific fields onto
// a new method.
func (s *payoutMethodService) applyAddFields(m *domain.PayoutMethod, req ports.AddPayoutMethodRequest) error {
	switch req.Kind {
	case domain.KindBankTransfer:
		m.BankName = strPtr(req.BankName)
		if req.AccountHolderName != "" {
			m.AccountHolderName = strPtr(req.AccountHolderName)
		}
		if req.AccountType != "" {
			m.AccountType = strPtr(req.AccountType)
		}
		if req.Country != "" {
			m.Country = strPtr(req.Country)
		}
		if req.Currency != "" {
			m.Currency = strPtr(req.Currency)
		}
		if req.SwiftCode != "" {
			m.SwiftCode = strPtr(req.SwiftCode)
		}
		if req.IBAN != "" {
			m.IBAN = strPtr(req.IBAN)
		}

		accEnc, err := s.encryptor.Encrypt(req.AccountNumber)
		if err != nil {
			return apperror.ErrEncryptionFailure(err)
		}
		m.AccountNumberEnc = &accEnc

		rtEnc, err := s.encryptor.Encrypt(req.RoutingNumber)
		if err != nil {
			return apperror.ErrEncryptionFailure(err)
		}
		m.RoutingNumberEnc = &rtEnc

	case domain.KindPayPal:
		m.PayPalEmail = strPtr(req.PayPalEmail)

	case domain.KindMobileMoney:
		m.MobileMoneyProvider = strPtr(req.MobileMoneyProvider)
		numEnc, err := s.encryptor.Encrypt(req.MobileMoneyNumber)
		if err != nil {
			return apperror.ErrEncryptionFailure(err)
		}
		m.MobileMoneyNumberEnc = &numEnc

	case domain.KindCrypto:
		m.CryptoWallet = strPtr(req.CryptoWallet)
	}
	return nil
}

// applyUpdateFields applies the non-nil fields of a partial update,
// re-encrypting any secrets. Reports whether a bank secret changed.
func (s *payoutMethodService) applyUpdateFields(m *domain.PayoutMethod, req ports.UpdatePayoutMethodRequest) (bool, error) {
	if req.BankName != nil {
		m.BankName = req.BankName
	}
	if req.AccountHolderName != nil {
		m.AccountHolderName = req.AccountHolderName
	}
	if req.AccountType != nil {
		m.AccountType = req.AccountType
	}
	if req.Country != nil {
		m.Country = req.Country
	}
	if req.Currency != nil {
		m.Currency = req.Currency
	}
	if req.SwiftCode != nil {
		m.SwiftCode = req.SwiftCode
	}
	if req.IBAN != nil {
		m.IBAN = req.IBAN
	}
	if req.PayPalEmail != nil {
		m.PayPalEmail = req.PayPalEmail
	}
	if req.MobileMoneyProvider != nil {
		m.MobileMoneyProvider = req.MobileMoneyProvider
	}
	if req.CryptoWallet != nil {
		m.CryptoWallet = req.CryptoWallet
	}

	secretsChanged := false

	if req.AccountNumber != nil {
		enc, err := s.encryptor.Encrypt(*req.AccountNumber)
		if err != nil {
			return false, apperror.ErrEncryptionFailure(err)
		}
		m.AccountNumberEnc = &enc
		secretsChanged = true
	}
	if req.RoutingNumber != nil {
		enc, err := s.encryptor.Encrypt(*req.RoutingNumber)
		if err != nil {
			return false, apperror.ErrEncryptionFailure(err)
		}
		m.RoutingNumberEnc = &enc
		secretsChanged = true
	}
	if req.MobileMoneyNumber != nil {
		enc, err := s.encryptor.Encrypt(*req.MobileMoneyNumber)
		if err != nil {
			return false, apperror.ErrEncryptionFailure(err)
		}
		m.MobileMoneyNumberEnc = &enc
	}

	return secretsChanged, nil
}

// missingAddFields returns the required fields absent from an add
// request, keyed by kind.
func missingAddFields(req ports.AddPayoutMethodRequest) []string {
	var missing []string
	requireField := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	switch req.Kind {
	case domain.KindBankTransfer:
		requireField("bank_name", req.BankName)
		requireField("account_number", req.AccountNumber)
		requireField("routing_number", req.RoutingNumber)
	case domain.KindPayPal:
		requireField("paypal_email", req.PayPalEmail)
	case domain.KindMobileMoney:
		requireField("mobile_money_provider", req.MobileMoneyProvider)
		requireField("mobile_money_number", req.MobileMoneyNumber)
	case domain.KindCrypto:
		requireField("crypto_wallet", req.CryptoWallet)
	}
	return missing
}

// generateVerificationCode produces two random micro-deposit amounts
// between 0.01 and 0.99, formatted "0.xx-0.yy".
func generateVerificationCode() (string, error) {
	amounts := make([]string, 2)
	for i := range amounts {
		n, err := rand.Int(rand.Reader, big.NewInt(99))
		if err != nil {
			return "", fmt.Errorf("generating amount: %w", err)
		}
		amounts[i] = decimal.New(n.Int64()+1, -2).StringFixed(2)
	}
	return amounts[0] + "-" + amounts[1], nil
}

func strPtr(s string) *string { return &s }
