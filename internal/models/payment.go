package models

import "time"

// PaymentStatus — закрытый набор статусов платежа.
// pending_verification -> verified -> approved | declined
type PaymentStatus string

const (
	PaymentPendingVerification PaymentStatus = "pending_verification"
	PaymentVerified            PaymentStatus = "verified"
	PaymentApproved            PaymentStatus = "approved"
	PaymentDeclined            PaymentStatus = "declined"
)

// Payment — запись о платеже. Полный номер карты и CVC сюда
// не попадают никогда: после валидации остаются только бренд и last4.
type Payment struct {
	ID                string                 `json:"id"` // uuid
	UserID            int64                  `json:"user_id"`
	ReservationID     int64                  `json:"reservation_id"`
	AmountCents       int64                  `json:"amount_cents"` // минорные единицы, default RUB
	Currency          string                 `json:"currency"`
	Status            PaymentStatus          `json:"status"`
	CardBrand         string                 `json:"card_brand"`
	CardLast4         string                 `json:"card_last4"`
	ProviderReference *string                `json:"provider_reference"`
	Meta              map[string]interface{} `json:"meta,omitempty"`
	VerifiedAt        *time.Time             `json:"verified_at,omitempty"`
	ProcessedAt       *time.Time             `json:"processed_at,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
}
