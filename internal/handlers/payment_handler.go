package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tablebook/internal/authz"
	"tablebook/internal/models"
	"tablebook/internal/pdf"
	"tablebook/internal/services"
)

type PaymentHandler struct {
	payments      services.PaymentService
	receipts      pdf.Generator
	exposeSMSCode bool
}

func NewPaymentHandler(payments services.PaymentService, receipts pdf.Generator, exposeSMSCode bool) *PaymentHandler {
	return &PaymentHandler{payments: payments, receipts: receipts, exposeSMSCode: exposeSMSCode}
}

type initiatePaymentRequest struct {
	ReservationID int64   `json:"reservation_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Currency      string  `json:"currency" binding:"omitempty,len=3"`
	CardNumber    string  `json:"card_number" binding:"required"`
	CardExpMonth  int     `json:"card_exp_month" binding:"required,min=1,max=12"`
	CardExpYear   int     `json:"card_exp_year" binding:"required,min=2000"`
	CardCVC       string  `json:"card_cvc" binding:"required"`
	SaveCard      bool    `json:"save_card"`
}

// @Summary      Начать оплату брони
// @Description  Проверяет карту, создаёт платёж и выдаёт verification-токен для SMS-шага
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        payment  body      initiatePaymentRequest  true  "Данные платежа"
// @Success      201      {object}  map[string]interface{}
// @Failure      422      {object}  map[string]interface{}
// @Router       /payments [post]
func (h *PaymentHandler) Initiate(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req initiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}

	result, err := h.payments.Initiate(services.InitiateInput{
		UserID:        userID,
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		CardNumber:    req.CardNumber,
		CardExpMonth:  req.CardExpMonth,
		CardExpYear:   req.CardExpYear,
		CardCVC:       req.CardCVC,
		SaveCard:      req.SaveCard,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservationNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{"reservation_id": "Reservation does not exist."}})
		case errors.Is(err, services.ErrInvalidCardNumber):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid card number"})
		case errors.Is(err, services.ErrInvalidExpiryDate):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid expiry date"})
		case errors.Is(err, services.ErrCardExpired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Card expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate payment"})
		}
		return
	}

	resp := gin.H{
		"verification_token": result.VerificationToken,
		"payment_id":         result.PaymentID,
		"message":            "SMS code sent",
	}
	// только для симуляции: реального SMS-канала нет
	if h.exposeSMSCode {
		resp["sms_code"] = result.SMSCode
	}
	c.JSON(http.StatusCreated, resp)
}

type verifySMSRequest struct {
	VerificationToken string `json:"verification_token" binding:"required"`
	SMSCode           string `json:"sms_code" binding:"required,len=3"`
}

// @Summary      Подтвердить оплату SMS-кодом
// @Description  Сверяет код (до 3 попыток), проводит платёж через банк-симулятор
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        verify  body      verifySMSRequest  true  "Токен и код"
// @Success      200     {object}  map[string]interface{}
// @Failure      402     {object}  map[string]interface{}
// @Failure      422     {object}  map[string]interface{}
// @Router       /payments/verify-sms [post]
func (h *PaymentHandler) VerifySMS(c *gin.Context) {
	var req verifySMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}

	result, err := h.payments.VerifySMS(req.VerificationToken, req.SMSCode)
	if err != nil {
		var codeErr *services.SMSCodeError
		switch {
		case errors.As(err, &codeErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message":            "Invalid SMS code",
				"remaining_attempts": codeErr.RemainingAttempts,
			})
		case errors.Is(err, services.ErrTooManyAttempts):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Too many attempts, start over"})
		case errors.Is(err, services.ErrTokenExpired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid or expired verification token"})
		case errors.Is(err, services.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		}
		return
	}

	// отказ банка — валидный бизнес-исход, не ошибка сервера
	status := http.StatusOK
	if result.Status == models.PaymentDeclined {
		status = http.StatusPaymentRequired
	}
	c.JSON(status, gin.H{
		"success":      true,
		"result_token": result.ResultToken,
		"status":       result.Status,
		"payment_id":   result.PaymentID,
	})
}

// @Summary      Результат платежа
// @Tags         Payments
// @Produce      json
// @Param        token  path      string  true  "Result-токен"
// @Success      200    {object}  map[string]interface{}
// @Failure      404    {object}  map[string]interface{}
// @Router       /payments/result/{token} [get]
func (h *PaymentHandler) GetResult(c *gin.Context) {
	payment, err := h.payments.GetResult(c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrResultTokenExpired):
			c.JSON(http.StatusNotFound, gin.H{"message": "Invalid or expired result token"})
		case errors.Is(err, services.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load payment"})
		}
		return
	}
	c.JSON(http.StatusOK, paymentSnapshot(payment))
}

// paymentSnapshot — санитизированная проекция: без meta и без каких-либо
// карточных данных кроме бренда и last4.
func paymentSnapshot(p *models.Payment) gin.H {
	return gin.H{
		"payment_id":         p.ID,
		"status":             p.Status,
		"amount_cents":       p.AmountCents,
		"currency":           p.Currency,
		"card_brand":         p.CardBrand,
		"card_last4":         p.CardLast4,
		"provider_reference": p.ProviderReference,
		"created_at":         p.CreatedAt,
	}
}

// @Summary      Список платежей
// @Description  Пользователь видит свои, персонал — все
// @Tags         Payments
// @Produce      json
// @Success      200  {array}  models.Payment
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	payments, err := h.payments.ListForUser(userID, authz.IsStaff(getRole(c)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payments"})
		return
	}
	out := make([]gin.H, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentSnapshot(p))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      PDF-чек по платежу
// @Tags         Payments
// @Produce      application/pdf
// @Param        id  path  string  true  "ID платежа"
// @Success      200
// @Failure      404  {object}  map[string]interface{}
// @Router       /payments/{id}/receipt [get]
func (h *PaymentHandler) Receipt(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	payment, err := h.payments.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load payment"})
		return
	}
	if payment == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		return
	}
	if payment.UserID != userID && !authz.IsStaff(getRole(c)) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}
	if payment.Status != models.PaymentApproved {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Receipt is available for approved payments only"})
		return
	}

	ref := ""
	if payment.ProviderReference != nil {
		ref = *payment.ProviderReference
	}
	processedAt := payment.CreatedAt
	if payment.ProcessedAt != nil {
		processedAt = *payment.ProcessedAt
	}
	path, err := h.receipts.GenerateReceipt(pdf.ReceiptData{
		PaymentID:         payment.ID,
		ReservationID:     payment.ReservationID,
		AmountCents:       payment.AmountCents,
		Currency:          payment.Currency,
		CardBrand:         payment.CardBrand,
		CardLast4:         payment.CardLast4,
		ProviderReference: ref,
		ProcessedAt:       processedAt,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate receipt"})
		return
	}
	c.FileAttachment(path, fmt.Sprintf("receipt_%s.pdf", payment.ID))
}
