package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"tablebook/internal/models"
)

// PaymentRepository — capability, которую получает платёжный оркестратор.
type PaymentRepository interface {
	Create(p *models.Payment) error
	GetByID(id string) (*models.Payment, error)
	Update(p *models.Payment) error
	ListByUser(userID int64) ([]*models.Payment, error)
	ListAll() ([]*models.Payment, error)
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

const paymentCols = `id, user_id, reservation_id, amount_cents, currency, status,
	card_brand, card_last4, provider_reference, meta, verified_at, processed_at, created_at`

func (r *paymentRepository) Create(p *models.Payment) error {
	meta, err := marshalMeta(p.Meta)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO payments (id, user_id, reservation_id, amount_cents, currency, status,
			card_brand, card_last4, provider_reference, meta, verified_at, processed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING created_at
	`
	if err := r.DB.QueryRow(q,
		p.ID, p.UserID, p.ReservationID, p.AmountCents, p.Currency, string(p.Status),
		p.CardBrand, p.CardLast4, p.ProviderReference, meta, p.VerifiedAt, p.ProcessedAt,
	).Scan(&p.CreatedAt); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByID(id string) (*models.Payment, error) {
	row := r.DB.QueryRow(`SELECT `+paymentCols+` FROM payments WHERE id = $1`, id)
	return scanPayment(row)
}

func (r *paymentRepository) Update(p *models.Payment) error {
	meta, err := marshalMeta(p.Meta)
	if err != nil {
		return err
	}
	const q = `
		UPDATE payments
		SET status = $1, provider_reference = $2, meta = $3, verified_at = $4, processed_at = $5
		WHERE id = $6
	`
	if _, err := r.DB.Exec(q,
		string(p.Status), p.ProviderReference, meta, p.VerifiedAt, p.ProcessedAt, p.ID,
	); err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) ListByUser(userID int64) ([]*models.Payment, error) {
	rows, err := r.DB.Query(
		`SELECT `+paymentCols+` FROM payments WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list payments by user: %w", err)
	}
	return scanPayments(rows)
}

func (r *paymentRepository) ListAll() ([]*models.Payment, error) {
	rows, err := r.DB.Query(`SELECT ` + paymentCols + ` FROM payments ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return scanPayments(rows)
}

func marshalMeta(meta map[string]interface{}) ([]byte, error) {
	if meta == nil {
		return nil, nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal payment meta: %w", err)
	}
	return b, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var (
		p      models.Payment
		userID sql.NullInt64
		resID  sql.NullInt64
		status string
		meta   []byte
	)
	// user_id/reservation_id NULL после удаления владельца или брони (ON DELETE SET NULL).
	if err := row.Scan(
		&p.ID, &userID, &resID, &p.AmountCents, &p.Currency, &status,
		&p.CardBrand, &p.CardLast4, &p.ProviderReference, &meta, &p.VerifiedAt, &p.ProcessedAt, &p.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	p.UserID = userID.Int64
	p.ReservationID = resID.Int64
	p.Status = models.PaymentStatus(status)
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &p.Meta); err != nil {
			return nil, fmt.Errorf("unmarshal payment meta: %w", err)
		}
	}
	return &p, nil
}

func scanPayments(rows *sql.Rows) ([]*models.Payment, error) {
	defer rows.Close()
	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
