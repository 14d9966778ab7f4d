package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"tablebook/internal/cache"
	"tablebook/internal/cards"
	"tablebook/internal/models"
	"tablebook/internal/repositories"
	"tablebook/internal/utils"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidCardNumber   = errors.New("invalid card number")
	ErrInvalidExpiryDate   = errors.New("invalid expiry date")
	ErrCardExpired         = errors.New("card expired")
	ErrTokenExpired        = errors.New("invalid or expired verification token")
	ErrResultTokenExpired  = errors.New("invalid or expired result token")
	ErrTooManyAttempts     = errors.New("too many attempts")
	ErrPaymentNotFound     = errors.New("payment not found")
)

// SMSCodeError — неверный код; клиент может повторить, пока есть попытки.
type SMSCodeError struct {
	RemainingAttempts int
}

func (e *SMSCodeError) Error() string { return "invalid sms code" }

const (
	verificationTTL = 10 * time.Minute
	maxSMSAttempts  = 3
	tokenBytes      = 16 // 32 hex-символа
)

// VerificationEntry — эфемерное состояние платежа между initiate и verify.
// Живёт только в TTL-хранилище, ключ — verification token.
type VerificationEntry struct {
	PaymentID string
	Code      string
	Attempts  int
}

// ResultEntry — снимок результата, выдаётся после верификации.
type ResultEntry struct {
	PaymentID string
	Status    models.PaymentStatus
}

// ReservationLookup — оркестратору от брони нужен только факт существования.
type ReservationLookup interface {
	Exists(id int64) (bool, error)
}

type InitiateInput struct {
	UserID        int64
	ReservationID int64
	Amount        float64 // сумма в рублях, в минорные единицы переводим сами
	Currency      string
	CardNumber    string
	CardExpMonth  int
	CardExpYear   int
	CardCVC       string
	SaveCard      bool
}

type InitiateResult struct {
	VerificationToken string
	PaymentID         string
	SMSCode           string
}

type VerifyResult struct {
	ResultToken string
	PaymentID   string
	Status      models.PaymentStatus
}

type PaymentService interface {
	Initiate(in InitiateInput) (*InitiateResult, error)
	VerifySMS(verificationToken, code string) (*VerifyResult, error)
	GetResult(resultToken string) (*models.Payment, error)
	GetByID(id string) (*models.Payment, error)
	ListForUser(userID int64, staff bool) ([]*models.Payment, error)
}

type paymentService struct {
	payments     repositories.PaymentRepository
	reservations ReservationLookup
	store        cache.TTLStore
	bank         BankSimulator

	DefaultCurrency string
	CodeTTL         time.Duration // если 0 — verificationTTL
}

func NewPaymentService(
	payments repositories.PaymentRepository,
	reservations ReservationLookup,
	store cache.TTLStore,
	bank BankSimulator,
	defaultCurrency string,
) *paymentService {
	return &paymentService{
		payments:        payments,
		reservations:    reservations,
		store:           store,
		bank:            bank,
		DefaultCurrency: defaultCurrency,
		CodeTTL:         verificationTTL,
	}
}

func (s *paymentService) ttl() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return verificationTTL
}

func verifyKey(token string) string { return "payment:verify:" + token }
func resultKey(token string) string { return "payment:result:" + token }

// Initiate — проверка карты, запись платежа в pending_verification,
// выдача кода и verification-токена. Полный номер карты и CVC дальше
// этой функции не живут: ни в БД, ни в логах.
func (s *paymentService) Initiate(in InitiateInput) (*InitiateResult, error) {
	ok, err := s.reservations.Exists(in.ReservationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReservationNotFound
	}

	if !cards.ValidNumber(in.CardNumber) {
		return nil, ErrInvalidCardNumber
	}
	if in.CardExpMonth < 1 || in.CardExpMonth > 12 {
		return nil, ErrInvalidExpiryDate
	}
	if !cards.ValidExpiry(in.CardExpMonth, in.CardExpYear, time.Now()) {
		return nil, ErrCardExpired
	}

	brand := cards.DetectBrand(in.CardNumber)
	last4, err := cards.LastFour(in.CardNumber)
	if err != nil {
		return nil, ErrInvalidCardNumber
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = s.DefaultCurrency
	}
	amountCents := int64(math.Round(in.Amount * 100))

	payment := &models.Payment{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		ReservationID: in.ReservationID,
		AmountCents:   amountCents,
		Currency:      currency,
		Status:        models.PaymentPendingVerification,
		CardBrand:     string(brand),
		CardLast4:     last4,
		Meta: map[string]interface{}{
			"save_card": in.SaveCard,
		},
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, err
	}

	code, err := utils.NewSMSCode()
	if err != nil {
		return nil, fmt.Errorf("generate sms code: %w", err)
	}
	token, err := utils.NewToken(tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	s.store.Put(verifyKey(token), &VerificationEntry{
		PaymentID: payment.ID,
		Code:      code,
		Attempts:  0,
	}, s.ttl())

	// в логах только id и last4, кода и номера карты здесь нет
	log.Printf("[payments][initiate] id=%s user=%d reservation=%d amount=%d %s brand=%s last4=%s",
		payment.ID, in.UserID, in.ReservationID, amountCents, currency, brand, last4)

	return &InitiateResult{
		VerificationToken: token,
		PaymentID:         payment.ID,
		SMSCode:           code,
	}, nil
}

// VerifySMS — проверка кода с лимитом попыток, затем авторизация в
// банке-симуляторе и выдача result-токена. VerificationEntry
// потребляется ровно один раз: при совпадении кода или после
// исчерпания попыток; иначе её добивает TTL.
func (s *paymentService) VerifySMS(verificationToken, code string) (*VerifyResult, error) {
	v, ok := s.store.Get(verifyKey(verificationToken))
	if !ok {
		return nil, ErrTokenExpired
	}
	entry, ok := v.(*VerificationEntry)
	if !ok {
		return nil, ErrTokenExpired
	}

	if entry.Attempts >= maxSMSAttempts {
		s.store.Delete(verifyKey(verificationToken))
		return nil, ErrTooManyAttempts
	}

	if code != entry.Code {
		entry.Attempts++
		// перезаписываем со свежим TTL; гонка по одному токену принята:
		// токен — одноразовый секрет одного клиента
		s.store.Put(verifyKey(verificationToken), entry, s.ttl())
		return nil, &SMSCodeError{RemainingAttempts: maxSMSAttempts - entry.Attempts}
	}

	payment, err := s.payments.GetByID(entry.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	now := time.Now()
	payment.Status = models.PaymentVerified
	payment.VerifiedAt = &now
	if err := s.payments.Update(payment); err != nil {
		return nil, err
	}

	resp := s.bank.Authorize(payment.AmountCents, payment.Currency, payment.CardLast4, cards.Brand(payment.CardBrand))

	processed := time.Now()
	payment.Status = models.PaymentStatus(resp.Status)
	payment.ProviderReference = &resp.Reference
	payment.ProcessedAt = &processed
	if payment.Meta == nil {
		payment.Meta = map[string]interface{}{}
	}
	payment.Meta["bank_response"] = resp.Map()
	if err := s.payments.Update(payment); err != nil {
		return nil, err
	}

	s.store.Delete(verifyKey(verificationToken))

	resultToken, err := utils.NewToken(tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate result token: %w", err)
	}
	s.store.Put(resultKey(resultToken), &ResultEntry{
		PaymentID: payment.ID,
		Status:    payment.Status,
	}, s.ttl())

	log.Printf("[payments][verify] id=%s status=%s reference=%s", payment.ID, payment.Status, resp.Reference)

	return &VerifyResult{
		ResultToken: resultToken,
		PaymentID:   payment.ID,
		Status:      payment.Status,
	}, nil
}

// GetResult — чтение (не потребление) result-токена.
func (s *paymentService) GetResult(resultToken string) (*models.Payment, error) {
	v, ok := s.store.Get(resultKey(resultToken))
	if !ok {
		return nil, ErrResultTokenExpired
	}
	entry, ok := v.(*ResultEntry)
	if !ok {
		return nil, ErrResultTokenExpired
	}
	payment, err := s.payments.GetByID(entry.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *paymentService) GetByID(id string) (*models.Payment, error) {
	return s.payments.GetByID(id)
}

func (s *paymentService) ListForUser(userID int64, staff bool) ([]*models.Payment, error) {
	if staff {
		return s.payments.ListAll()
	}
	return s.payments.ListByUser(userID)
}
