package services

import (
	"time"

	"tablebook/internal/cards"
	"tablebook/internal/utils"
)

// BankSimulator — детерминированная заглушка платёжного шлюза.
// Контракт: результат зависит только от последней цифры last4.
type BankSimulator interface {
	Authorize(amountCents int64, currency, last4 string, brand cards.Brand) BankResponse
}

type BankResponse struct {
	Status     string `json:"status"` // approved | declined
	Reference  string `json:"reference"`
	Reason     string `json:"reason,omitempty"`
	ApprovedAt string `json:"approved_at,omitempty"`
}

// Map — сырое тело ответа для merge в meta платежа.
func (r BankResponse) Map() map[string]interface{} {
	m := map[string]interface{}{
		"status":    r.Status,
		"reference": r.Reference,
	}
	if r.Reason != "" {
		m["reason"] = r.Reason
	}
	if r.ApprovedAt != "" {
		m["approved_at"] = r.ApprovedAt
	}
	return m
}

type bankSimulator struct{}

func NewBankSimulator() BankSimulator {
	return &bankSimulator{}
}

// Authorize: last4 оканчивается на '0' => declined, иначе approved.
func (b *bankSimulator) Authorize(amountCents int64, currency, last4 string, brand cards.Brand) BankResponse {
	if len(last4) > 0 && last4[len(last4)-1] == '0' {
		return BankResponse{
			Status:    "declined",
			Reference: utils.NewBankReference(),
			Reason:    "Insufficient funds (simulated)",
		}
	}
	return BankResponse{
		Status:     "approved",
		Reference:  utils.NewBankReference(),
		ApprovedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
