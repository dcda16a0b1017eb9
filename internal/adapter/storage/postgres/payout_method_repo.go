package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"seller-payout-vault/internal/core/domain"
	"seller-payout-vault/internal/core/ports"
)

const payoutMethodColumns = `
	id, seller_id, kind,
	bank_name, account_number_enc, routing_number_enc, account_holder_name,
	account_type, country, currency, swift_code, iban,
	paypal_email, mobile_money_provider, mobile_money_number_enc, crypto_wallet,
	is_default, verification_status, verification_code,
	added_at, verified_at, last_modified_at`

// PayoutMethodRepo implements ports.PayoutMethodRepository using
// PostgreSQL. A partial unique index on (seller_id) WHERE is_default
// backs the single-default invariant at the storage layer.
type PayoutMethodRepo struct {
	pool Pool
}

// NewPayoutMethodRepo creates a new payout method repository.
func NewPayoutMethodRepo(pool Pool) ports.PayoutMethodRepository {
	return &PayoutMethodRepo{pool: pool}
}

func (r *PayoutMethodRepo) Create(ctx context.Context, tx pgx.Tx, m *domain.PayoutMethod) error {
	query := `
		INSERT INTO payout_methods (` + payoutMethodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	_, err := tx.Exec(ctx, query,
		m.ID, m.SellerID, m.Kind,
		m.BankName, m.AccountNumberEnc, m.RoutingNumberEnc, m.AccountHolderName,
		m.AccountType, m.Country, m.Currency, m.SwiftCode, m.IBAN,
		m.PayPalEmail, m.MobileMoneyProvider, m.MobileMoneyNumberEnc, m.CryptoWallet,
		m.IsDefault, m.VerificationStatus, m.VerificationCode,
		m.AddedAt, m.VerifiedAt, m.LastModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting payout method: %w", err)
	}
	return nil
}

func (r *PayoutMethodRepo) GetByID(ctx context.Context, id, sellerID uuid.UUID) (*domain.PayoutMethod, error) {
	query := `SELECT ` + payoutMethodColumns + ` FROM payout_methods WHERE id = $1 AND seller_id = $2`

	row := r.pool.QueryRow(ctx, query, id, sellerID)
	return scanPayoutMethod(row)
}

func (r *PayoutMethodRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id, sellerID uuid.UUID) (*domain.PayoutMethod, error) {
	query := `SELECT ` + payoutMethodColumns + ` FROM payout_methods WHERE id = $1 AND seller_id = $2 FOR UPDATE`

	row := tx.QueryRow(ctx, query, id, sellerID)
	return scanPayoutMethod(row)
}

func (r *PayoutMethodRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.PayoutMethod, error) {
	query := `SELECT ` + payoutMethodColumns + ` FROM payout_methods WHERE seller_id = $1 ORDER BY added_at`

	rows, err := r.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("querying payout methods: %w", err)
	}
	defer rows.Close()

	var methods []domain.PayoutMethod
	for rows.Next() {
		m, err := scanPayoutMethodFromRows(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payout methods: %w", err)
	}
	return methods, nil
}

func (r *PayoutMethodRepo) CountByKind(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID, kind domain.PayoutMethodKind) (int, error) {
	query := `SELECT COUNT(*) FROM payout_methods WHERE seller_id = $1 AND kind = $2`

	var count int
	if err := tx.QueryRow(ctx, query, sellerID, kind).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting payout methods: %w", err)
	}
	return count, nil
}

func (r *PayoutMethodRepo) ClearDefault(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID) error {
	query := `UPDATE payout_methods SET is_default = FALSE WHERE seller_id = $1 AND is_default`

	if _, err := tx.Exec(ctx, query, sellerID); err != nil {
		return fmt.Errorf("clearing default payout method: %w", err)
	}
	return nil
}

func (r *PayoutMethodRepo) Update(ctx context.Context, tx pgx.Tx, m *domain.PayoutMethod) error {
	query := `
		UPDATE payout_methods SET
			bank_name = $3, account_number_enc = $4, routing_number_enc = $5, account_holder_name = $6,
			account_type = $7, country = $8, currency = $9, swift_code = $10, iban = $11,
			paypal_email = $12, mobile_money_provider = $13, mobile_money_number_enc = $14, crypto_wallet = $15,
			is_default = $16, verification_status = $17, verification_code = $18,
			verified_at = $19, last_modified_at = $20
		WHERE id = $1 AND seller_id = $2`

	tag, err := tx.Exec(ctx, query,
		m.ID, m.SellerID,
		m.BankName, m.AccountNumberEnc, m.RoutingNumberEnc, m.AccountHolderName,
		m.AccountType, m.Country, m.Currency, m.SwiftCode, m.IBAN,
		m.PayPalEmail, m.MobileMoneyProvider, m.MobileMoneyNumberEnc, m.CryptoWallet,
		m.IsDefault, m.VerificationStatus, m.VerificationCode,
		m.VerifiedAt, m.LastModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("updating payout method: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payout method %s not found", m.ID)
	}
	return nil
}

func (r *PayoutMethodRepo) Delete(ctx context.Context, tx pgx.Tx, id, sellerID uuid.UUID) error {
	query := `DELETE FROM payout_methods WHERE id = $1 AND seller_id = $2`

	tag, err := tx.Exec(ctx, query, id, sellerID)
	if err != nil {
		return fmt.Errorf("deleting payout method: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payout method %s not found", id)
	}
	return nil
}

func scanPayoutMethod(row pgx.Row) (*domain.PayoutMethod, error) {
	m, err := scanInto(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning payout method: %w", err)
	}
	return m, nil
}

func scanPayoutMethodFromRows(rows pgx.Rows) (*domain.PayoutMethod, error) {
	m, err := scanInto(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning payout method: %w", err)
	}
	return m, nil
}

func scanInto(scan func(dest ...any) error) (*domain.PayoutMethod, error) {
	var m domain.PayoutMethod
	err := scan(
		&m.ID, &m.SellerID, &m.Kind,
		&m.BankName, &m.AccountNumberEnc, &m.RoutingNumberEnc, &m.AccountHolderName,
		&m.AccountType, &m.Country, &m.Currency, &m.SwiftCode, &m.IBAN,
		&m.PayPalEmail, &m.MobileMoneyProvider, &m.MobileMoneyNumberEnc, &m.CryptoWallet,
		&m.IsDefault, &m.VerificationStatus, &m.VerificationCode,
		&m.AddedAt, &m.VerifiedAt, &m.LastModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
