package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tablebook/internal/models"
	"tablebook/internal/pdf"
	"tablebook/internal/services"
)

type stubPaymentService struct {
	initiateResult *services.InitiateResult
	initiateErr    error
	verifyResult   *services.VerifyResult
	verifyErr      error
	resultPayment  *models.Payment
	resultErr      error
}

func (s *stubPaymentService) Initiate(in services.InitiateInput) (*services.InitiateResult, error) {
	return s.initiateResult, s.initiateErr
}

func (s *stubPaymentService) VerifySMS(token, code string) (*services.VerifyResult, error) {
	return s.verifyResult, s.verifyErr
}

func (s *stubPaymentService) GetResult(token string) (*models.Payment, error) {
	return s.resultPayment, s.resultErr
}

func (s *stubPaymentService) GetByID(id string) (*models.Payment, error) {
	return s.resultPayment, s.resultErr
}

func (s *stubPaymentService) ListForUser(userID int64, staff bool) ([]*models.Payment, error) {
	return nil, nil
}

type stubReceipts struct{}

func (stubReceipts) GenerateReceipt(data pdf.ReceiptData) (string, error) { return "", nil }

func newPaymentRouter(svc services.PaymentService, exposeSMSCode bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// подменяем auth: кладём user_id/role как это делает middleware
	r.Use(func(c *gin.Context) {
		c.Set("user_id", int64(7))
		c.Set("role", "user")
	})
	h := NewPaymentHandler(svc, stubReceipts{}, exposeSMSCode)
	r.POST("/payments", h.Initiate)
	r.POST("/payments/verify-sms", h.VerifySMS)
	r.GET("/payments/result/:token", h.GetResult)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	return m
}

const validInitiateBody = `{
	"reservation_id": 1,
	"amount": 1500.50,
	"card_number": "4242424242424242",
	"card_exp_month": 12,
	"card_exp_year": 2030,
	"card_cvc": "123"
}`

func TestInitiateReturnsTokenAndCode(t *testing.T) {
	svc := &stubPaymentService{
		initiateResult: &services.InitiateResult{
			VerificationToken: "tok",
			PaymentID:         "pay-1",
			SMSCode:           "123",
		},
	}
	r := newPaymentRouter(svc, true)

	w := post(r, "/payments", validInitiateBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("code = %d, want 201, body %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["verification_token"] != "tok" {
		t.Errorf("verification_token = %v", body["verification_token"])
	}
	if body["sms_code"] != "123" {
		t.Errorf("sms_code = %v, want exposed in simulation mode", body["sms_code"])
	}
}

func TestInitiateHidesCodeWhenNotExposed(t *testing.T) {
	svc := &stubPaymentService{
		initiateResult: &services.InitiateResult{VerificationToken: "tok", PaymentID: "pay-1", SMSCode: "123"},
	}
	r := newPaymentRouter(svc, false)

	w := post(r, "/payments", validInitiateBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("code = %d, want 201", w.Code)
	}
	if _, ok := decode(t, w)["sms_code"]; ok {
		t.Error("sms_code must not leak when expose_sms_code is off")
	}
}

func TestInitiateValidatesBody(t *testing.T) {
	r := newPaymentRouter(&stubPaymentService{}, true)

	w := post(r, "/payments", `{"amount": -5}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d, want 422", w.Code)
	}
	body := decode(t, w)
	errs, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("want errors map, got %v", body)
	}
	for _, field := range []string{"reservation_id", "amount", "card_number"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error for %q, got %v", field, errs)
		}
	}
}

func TestInitiateMapsSentinels(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"invalid card", services.ErrInvalidCardNumber, "Invalid card number"},
		{"expired card", services.ErrCardExpired, "Card expired"},
		{"bad expiry", services.ErrInvalidExpiryDate, "Invalid expiry date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newPaymentRouter(&stubPaymentService{initiateErr: tc.err}, true)
			w := post(r, "/payments", validInitiateBody)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("code = %d, want 422", w.Code)
			}
			if got := decode(t, w)["message"]; got != tc.want {
				t.Errorf("message = %v, want %q", got, tc.want)
			}
		})
	}
}

func TestVerifySMSStatusCodes(t *testing.T) {
	t.Run("approved is 200", func(t *testing.T) {
		svc := &stubPaymentService{
			verifyResult: &services.VerifyResult{ResultToken: "rt", PaymentID: "pay-1", Status: models.PaymentApproved},
		}
		r := newPaymentRouter(svc, true)
		w := post(r, "/payments/verify-sms", `{"verification_token":"tok","sms_code":"123"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("code = %d, want 200", w.Code)
		}
		if decode(t, w)["result_token"] != "rt" {
			t.Error("expected result_token in response")
		}
	})

	t.Run("declined is 402", func(t *testing.T) {
		svc := &stubPaymentService{
			verifyResult: &services.VerifyResult{ResultToken: "rt", PaymentID: "pay-1", Status: models.PaymentDeclined},
		}
		r := newPaymentRouter(svc, true)
		w := post(r, "/payments/verify-sms", `{"verification_token":"tok","sms_code":"123"}`)
		if w.Code != http.StatusPaymentRequired {
			t.Fatalf("code = %d, want 402", w.Code)
		}
		body := decode(t, w)
		if body["success"] != true {
			t.Error("declined is still a successful verification")
		}
	})

	t.Run("wrong code carries remaining attempts", func(t *testing.T) {
		svc := &stubPaymentService{verifyErr: &services.SMSCodeError{RemainingAttempts: 2}}
		r := newPaymentRouter(svc, true)
		w := post(r, "/payments/verify-sms", `{"verification_token":"tok","sms_code":"999"}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("code = %d, want 422", w.Code)
		}
		if got := decode(t, w)["remaining_attempts"]; got != float64(2) {
			t.Errorf("remaining_attempts = %v, want 2", got)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		svc := &stubPaymentService{verifyErr: services.ErrTokenExpired}
		r := newPaymentRouter(svc, true)
		w := post(r, "/payments/verify-sms", `{"verification_token":"tok","sms_code":"123"}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("code = %d, want 422", w.Code)
		}
	})
}

func TestGetResult(t *testing.T) {
	ref := "REF123456789"
	svc := &stubPaymentService{
		resultPayment: &models.Payment{
			ID:                "pay-1",
			UserID:            7,
			Status:            models.PaymentApproved,
			AmountCents:       150050,
			Currency:          "RUB",
			CardBrand:         "visa",
			CardLast4:         "4242",
			ProviderReference: &ref,
			Meta:              map[string]interface{}{"save_card": true},
		},
	}
	r := newPaymentRouter(svc, true)

	req := httptest.NewRequest(http.MethodGet, "/payments/result/sometoken", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", w.Code)
	}
	body := decode(t, w)
	if body["status"] != "approved" {
		t.Errorf("status = %v", body["status"])
	}
	// meta наружу не отдаём
	if _, ok := body["meta"]; ok {
		t.Error("result must not expose payment meta")
	}
}

func TestGetResultExpired(t *testing.T) {
	svc := &stubPaymentService{resultErr: services.ErrResultTokenExpired}
	r := newPaymentRouter(svc, true)

	req := httptest.NewRequest(http.MethodGet, "/payments/result/old", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", w.Code)
	}
}
