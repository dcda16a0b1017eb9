package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"seller-payout-vault/internal/core/domain"
	"seller-payout-vault/internal/core/ports"
	"seller-payout-vault/internal/core/ports/mocks"
	"seller-payout-vault/pkg/apperror"
)

// mockTx satisfies pgx.Tx for service tests; only Commit and Rollback
// are ever invoked.
type mockTx struct {
	pgx.Tx
}

func (mockTx) Commit(ctx context.Context) error   { return nil }
func (mockTx) Rollback(ctx context.Context) error { return nil }

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

type payoutFixture struct {
	db      *mocks.MockDBTransactor
	methods *mocks.MockPayoutMethodRepository
	sellers *mocks.MockSellerRepository
	enc     *mocks.MockEncryptionService
	hasher  *mocks.MockHashService
	reauth  *mocks.MockReauthGuard
	audit   *mocks.MockAuditService
	svc     ports.PayoutMethodService
}

func newPayoutFixture(t *testing.T) *payoutFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &payoutFixture{
		db:      mocks.NewMockDBTransactor(ctrl),
		methods: mocks.NewMockPayoutMethodRepository(ctrl),
		sellers: mocks.NewMockSellerRepository(ctrl),
		enc:     mocks.NewMockEncryptionService(ctrl),
		hasher:  mocks.NewMockHashService(ctrl),
		reauth:  mocks.NewMockReauthGuard(ctrl),
		audit:   mocks.NewMockAuditService(ctrl),
	}
	f.svc = NewPayoutMethodService(
		f.db, f.methods, f.sellers, f.enc, f.hasher, f.reauth, f.audit, zerolog.Nop(),
	)
	return f
}

func activeSeller(id uuid.UUID) *domain.Seller {
	return &domain.Seller{
		ID:           id,
		Email:        "seller@example.com",
		PasswordHash: "$argon2id$hash",
		StoreName:    "Test Store",
		Status:       domain.SellerStatusActive,
	}
}

// expectReauthOK wires the happy-path security gate.
func (f *payoutFixture) expectReauthOK(sellerID uuid.UUID, password string) {
	f.reauth.EXPECT().Allowed(gomock.Any(), sellerID).Return(true, nil)
	f.sellers.EXPECT().GetByID(gomock.Any(), sellerID).Return(activeSeller(sellerID), nil)
	f.hasher.EXPECT().Verify(password, "$argon2id$hash").Return(true, nil)
	f.reauth.EXPECT().Reset(gomock.Any(), sellerID).Return(nil)
}

func bankAddRequest() ports.AddPayoutMethodRequest {
	return ports.AddPayoutMethodRequest{
		Kind:              domain.KindBankTransfer,
		BankName:          "First National",
		AccountNumber:     "1234567890",
		RoutingNumber:     "021000021",
		AccountHolderName: "Jane Seller",
		Password:          "hunter2",
	}
}

func TestAdd_BankTransfer(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID := uuid.New()

	f.expectReauthOK(sellerID, "hunter2")
	f.db.EXPECT().Begin(gomock.Any()).Return(mockTx{}, nil)
	f.sellers.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), sellerID).Return(activeSeller(sellerID), nil)
	f.methods.EXPECT().CountByKind(gomock.Any(), gomock.Any(), sellerID, domain.KindBankTransfer).Return(0, nil)
	f.enc.EXPECT().Encrypt("1234567890").Return("ivhex:acctcipher", nil)
	f.enc.EXPECT().Encrypt("021000021").Return("ivhex:rtcipher", nil)

	var created *domain.PayoutMethod
	f.methods.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, m *domain.PayoutMethod) error {
			created = m
			return nil
		})
	f.audit.EXPECT().Log(gomock.Any(), gomock.Any())

	f.enc.EXPECT().Decrypt("ivhex:acctcipher").Return("1234567890", nil)
	f.enc.EXPECT().MaskAccountNumber("1234567890").Return("****7890")
	f.enc.EXPECT().Decrypt("ivhex:rtcipher").Return("021000021", nil)
	f.enc.EXPECT().MaskRoutingNumber("021000021").Return("****0021")

	masked, err := f.svc.Add(context.Background(), sellerID, bankAddRequest())
	require.NoError(t, err)

	assert.Equal(t, "****7890", *masked.AccountNumber)
	assert.Equal(t, "****0021", *masked.RoutingNumber)
	assert.Equal(t, domain.VerificationPending, masked.VerificationStatus)

	require.NotNil(t, created)
	assert.Equal(t, "ivhex:acctcipher", *created.AccountNumberEnc)
	require.NotNil(t, created.VerificationCode)
	assert.Regexp(t, regexp.MustCompile(`^0\.\d{2}-0\.\d{2}$`), *created.VerificationCode)
}

func TestAdd_PayPal_NoVerificationNeeded(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID := uuid.New()

	f.expectReauthOK(sellerID, "hunter2")
	f.db.EXPECT().Begin(gomock.Any()).Return(mockTx{}, nil)
	f.sellers.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), sellerID).Return(activeSeller(sellerID), nil)
	f.methods.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.audit.EXPECT().Log(gomock.Any(), gomock.Any())

	masked, err := f.svc.Add(context.Background(), sellerID, ports.AddPayoutMethodRequest{
		Kind:        domain.KindPayPal,
		PayPalEmail: "pay@example.com",
		Password:    "hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.VerificationUnverified, masked.VerificationStatus)
	assert.Equal(t, "pay@example.com", *masked.PayPalEmail)
	assert.Nil(t, masked.AccountNumber)
}

func TestAdd_SetDefault_ClearsExisting(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID := uuid.New()

	f.expectReauthOK(sellerID, "hunter2")
	f.db.EXPECT().Begin(gomock.Any()).Return(mockTx{}, nil)
	f.sellers.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), sellerID).Return(activeSeller(sellerID), nil)
	f.methods.EXPECT().ClearDefault(gomock.Any(), gomock.Any(), sellerID).Return(nil)
	f.methods.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.audit.EXPECT().Log(gomock.Any(), gomock.Any())

	masked, err := f.svc.Add(context.Background(), sellerID, ports.AddPayoutMethodRequest{
		Kind:         domain.KindCrypto,
		CryptoWallet: "0xabc123",
		IsDefault:    true,
		Password:     "hunter2",
	})
	require.NoError(t, err)
	assert.True(t, masked.IsDefault)
}

func TestAdd_UnsupportedKind(t *testing.T) {
	f := newPayoutFixture(t)

	_, err := f.svc.Add(context.Background(), uuid.New(), ports.AddPayoutMethodRequest{
		Kind:     "carrier_pigeon",
		Password: "hunter2",
	})
	assertAppError(t, err, "VAL_001")
}

func TestAdd_MissingFields(t *testing.T) {
	f := newPayoutFixture(t)

	_, err := f.svc.Add(context.Background(), uuid.New(), ports.AddPayoutMethodRequest{
		Kind:     domain.KindBankTransfer,
		BankName: "First National",
		Password: "hunter2",
	})
	assertAppError(t, err, "VAL_002")
}

func TestAdd_WrongPassword(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID := uuid.New()

	f.reauth.EXPECT().Allowed(gomock.Any(), sellerID).Return(true, nil)
	f.sellers.EXPECT().GetByID(gomock.Any(), sellerID).Return(activeSeller(sellerID), nil)
	f.hasher.EXPECT().Verify("wrong", "$argon2id$hash").Return(false, nil)
	f.reauth.EXPECT().RecordFailure(gomock.Any(), sellerID).Return(nil)

	req := bankAddRequest()
	req.Password = "wrong"
	_, err := f.svc.Add(context.Background(), sellerID, req)
	assertAppError(t, err, "AUTH_003")
}

func TestAdd_ReauthLockedOut(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID := uuid.New()

	f.reauth.EXPECT().Allowed(gomock.Any(), sellerID).Return(false, nil)

	_, err := f.svc.Add(context.Background(), sellerID, bankAddRequest())
	assertAppError(t, err, "AUTH_004")
}

func TestAdd_SuspendedSeller(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID := uuid.New()

	suspended := activeSeller(sellerID)
	suspended.Status = domain.SellerStatusSuspended

	f.reauth.EXPECT().Allowed(gomock.Any(), sellerID).Return(true, nil)
	f.sellers.EXPECT().GetByID(gomock.Any(), sellerID).Return(suspended, nil)

	_, err := f.svc.Add(context.Background(), sellerID, bankAddRequest())
	assertAppError(t, err, "AUTH_006")
}

func TestAdd_BankMethodCeiling(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID := uuid.New()

	f.expectReauthOK(sellerID, "hunter2")
	f.db.EXPECT().Begin(gomock.Any()).Return(mockTx{}, nil)
	f.sellers.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), sellerID).Return(activeSeller(sellerID), nil)
	f.methods.EXPECT().CountByKind(gomock.Any(), gomock.Any(), sellerID, domain.KindBankTransfer).Return(5, nil)

	_, err := f.svc.Add(context.Background(), sellerID, bankAddRequest())
	assertAppError(t, err, "PM_001")
}

func TestUpdate_NotFound(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID, methodID := uuid.New(), uuid.New()

	f.expectReauthOK(sellerID, "hunter2")
	f.db.EXPECT().Begin(gomock.Any()).Return(mockTx{}, nil)
	f.sellers.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), sellerID).Return(activeSeller(sellerID), nil)
	f.methods.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), methodID, sellerID).Return(nil, nil)

	_, err := f.svc.Update(context.Background(), sellerID, methodID, ports.UpdatePayoutMethodRequest{
		Password: "hunter2",
	})
	assertAppError(t, err, "PM_002")
}

func TestUpdate_AccountNumberResetsVerification(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID, methodID := uuid.New(), uuid.New()

	verifiedAt := time.Now()
	oldEnc := "ivhex:oldcipher"
	existing := &domain.PayoutMethod{
		ID:                 methodID,
		SellerID:           sellerID,
		Kind:               domain.KindBankTransfer,
		AccountNumberEnc:   &oldEnc,
		RoutingNumberEnc:   &oldEnc,
		VerificationStatus: domain.VerificationVerified,
		VerifiedAt:         &verifiedAt,
	}

	f.expectReauthOK(sellerID, "hunter2")
	f.db.EXPECT().Begin(gomock.Any()).Return(mockTx{}, nil)
	f.sellers.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), sellerID).Return(activeSeller(sellerID), nil)
	f.methods.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), methodID, sellerID).Return(existing, nil)
	f.enc.EXPECT().Encrypt("9876543210").Return("ivhex:newcipher", nil)

	var updated *domain.PayoutMethod
	f.methods.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, m *domain.PayoutMethod) error {
			updated = m
			return nil
		})
	f.audit.EXPECT().Log(gomock.Any(), gomock.Any())

	f.enc.EXPECT().Decrypt("ivhex:newcipher").Return("9876543210", nil)
	f.enc.EXPECT().MaskAccountNumber("9876543210").Return("****3210")
	f.enc.EXPECT().Decrypt(oldEnc).Return("021000021", nil)
	f.enc.EXPECT().MaskRoutingNumber("021000021").Return("****0021")

	newAcct := "9876543210"
	masked, err := f.svc.Update(context.Background(), sellerID, methodID, ports.UpdatePayoutMethodRequest{
		AccountNumber: &newAcct,
		Password:      "hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.VerificationPending, masked.VerificationStatus)
	assert.Nil(t, masked.VerifiedAt)
	require.NotNil(t, updated)
	assert.Equal(t, "ivhex:newcipher", *updated.AccountNumberEnc)
	require.NotNil(t, updated.VerificationCode)
}

func TestDelete(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID, methodID := uuid.New(), uuid.New()

	f.expectReauthOK(sellerID, "hunter2")
	f.db.EXPECT().Begin(gomock.Any()).Return(mockTx{}, nil)
	f.sellers.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), sellerID).Return(activeSeller(sellerID), nil)
	f.methods.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), methodID, sellerID).
		Return(&domain.PayoutMethod{ID: methodID, SellerID: sellerID, Kind: domain.KindPayPal}, nil)
	f.methods.EXPECT().Delete(gomock.Any(), gomock.Any(), methodID, sellerID).Return(nil)
	f.audit.EXPECT().Log(gomock.Any(), gomock.Any())

	err := f.svc.Delete(context.Background(), sellerID, methodID, ports.DeletePayoutMethodRequest{
		Password: "hunter2",
	})
	require.NoError(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID, methodID := uuid.New(), uuid.New()

	f.expectReauthOK(sellerID, "hunter2")
	f.db.EXPECT().Begin(gomock.Any()).Return(mockTx{}, nil)
	f.sellers.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), sellerID).Return(activeSeller(sellerID), nil)
	f.methods.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), methodID, sellerID).Return(nil, nil)

	err := f.svc.Delete(context.Background(), sellerID, methodID, ports.DeletePayoutMethodRequest{
		Password: "hunter2",
	})
	assertAppError(t, err, "PM_002")
}

func TestVerify_ConfirmationRequired(t *testing.T) {
	f := newPayoutFixture(t)

	_, err := f.svc.Verify(context.Background(), uuid.New(), uuid.New(), ports.VerifyPayoutMethodRequest{
		ConfirmAccountDetails: false,
		Password:              "hunter2",
	})
	assertAppError(t, err, "VAL_003")
}

func TestVerify_NotPending(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID, methodID := uuid.New(), uuid.New()

	f.expectReauthOK(sellerID, "hunter2")
	f.db.EXPECT().Begin(gomock.Any()).Return(mockTx{}, nil)
	f.sellers.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), sellerID).Return(activeSeller(sellerID), nil)
	f.methods.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), methodID, sellerID).
		Return(&domain.PayoutMethod{
			ID:                 methodID,
			SellerID:           sellerID,
			Kind:               domain.KindBankTransfer,
			VerificationStatus: domain.VerificationVerified,
		}, nil)

	_, err := f.svc.Verify(context.Background(), sellerID, methodID, ports.VerifyPayoutMethodRequest{
		ConfirmAccountDetails: true,
		Password:              "hunter2",
	})
	assertAppError(t, err, "PM_003")
}

func TestVerify_PendingBecomesVerified(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID, methodID := uuid.New(), uuid.New()

	code := "0.23-0.47"
	enc := "ivhex:cipher"
	pending := &domain.PayoutMethod{
		ID:                 methodID,
		SellerID:           sellerID,
		Kind:               domain.KindBankTransfer,
		AccountNumberEnc:   &enc,
		RoutingNumberEnc:   &enc,
		VerificationStatus: domain.VerificationPending,
		VerificationCode:   &code,
	}

	f.expectReauthOK(sellerID, "hunter2")
	f.db.EXPECT().Begin(gomock.Any()).Return(mockTx{}, nil)
	f.sellers.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), sellerID).Return(activeSeller(sellerID), nil)
	f.methods.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), methodID, sellerID).Return(pending, nil)

	var updated *domain.PayoutMethod
	f.methods.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, m *domain.PayoutMethod) error {
			updated = m
			return nil
		})
	f.audit.EXPECT().Log(gomock.Any(), gomock.Any())

	f.enc.EXPECT().Decrypt(enc).Return("1234567890", nil).Times(2)
	f.enc.EXPECT().MaskAccountNumber("1234567890").Return("****7890")
	f.enc.EXPECT().MaskRoutingNumber("1234567890").Return("****7890")

	masked, err := f.svc.Verify(context.Background(), sellerID, methodID, ports.VerifyPayoutMethodRequest{
		ConfirmAccountDetails: true,
		Password:              "hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.VerificationVerified, masked.VerificationStatus)
	assert.NotNil(t, masked.VerifiedAt)
	require.NotNil(t, updated)
	assert.Nil(t, updated.VerificationCode)
}

func TestList_DecryptFailureRendersUnavailable(t *testing.T) {
	f := newPayoutFixture(t)
	sellerID := uuid.New()

	badEnc := "ivhex:corrupted"
	goodEnc := "ivhex:fine"
	f.methods.EXPECT().ListBySeller(gomock.Any(), sellerID).Return([]domain.PayoutMethod{
		{
			ID:                 uuid.New(),
			SellerID:           sellerID,
			Kind:               domain.KindBankTransfer,
			AccountNumberEnc:   &badEnc,
			RoutingNumberEnc:   &goodEnc,
			VerificationStatus: domain.VerificationPending,
		},
	}, nil)
	f.enc.EXPECT().Decrypt(badEnc).Return("", assert.AnError)
	f.enc.EXPECT().Decrypt(goodEnc).Return("021000021", nil)
	f.enc.EXPECT().MaskRoutingNumber("021000021").Return("****0021")

	masked, err := f.svc.List(context.Background(), sellerID)
	require.NoError(t, err)
	require.Len(t, masked, 1)

	assert.Equal(t, "unavailable", *masked[0].AccountNumber)
	assert.Equal(t, "****0021", *masked[0].RoutingNumber)
}

func TestGenerateVerificationCode_Format(t *testing.T) {
	re := regexp.MustCompile(`^0\.\d{2}-0\.\d{2}$`)
	for i := 0; i < 50; i++ {
		code, err := generateVerificationCode()
		require.NoError(t, err)
		assert.Regexp(t, re, code)
	}
}
