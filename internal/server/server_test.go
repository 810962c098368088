package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"restaurant-ordering-api/internal/model"
	"restaurant-ordering-api/internal/service"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPaymentService struct {
	order      *model.OrderData
	successURL string
	cancelURL  string
	lookupID   string
	err        error
}

func (s *stubPaymentService) CreateCheckoutSession(_ context.Context, order *model.OrderData, successURL, cancelURL string) (*model.CheckoutSession, error) {
	s.order, s.successURL, s.cancelURL = order, successURL, cancelURL
	if s.err != nil {
		return nil, s.err
	}
	return &model.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.test/cs_test_1"}, nil
}

func (s *stubPaymentService) CreatePaymentIntent(_ context.Context, order *model.OrderData) (*model.PaymentIntent, error) {
	s.order = order
	if s.err != nil {
		return nil, s.err
	}
	return &model.PaymentIntent{ID: "pi_test_1", ClientSecret: "pi_test_1_secret", Status: "requires_payment_method"}, nil
}

func (s *stubPaymentService) VerifyCheckoutSession(_ context.Context, sessionID string) (*model.SessionVerification, error) {
	s.lookupID = sessionID
	if s.err != nil {
		return nil, s.err
	}
	return &model.SessionVerification{
		PaymentStatus: "paid",
		IsComplete:    true,
		Customer:      &model.CustomerDetails{Email: "jane@example.com"},
		OrderID:       "ord1",
	}, nil
}

func (s *stubPaymentService) CheckPaymentIntentStatus(_ context.Context, paymentIntentID string) (*model.PaymentIntentStatus, error) {
	s.lookupID = paymentIntentID
	if s.err != nil {
		return nil, s.err
	}
	return &model.PaymentIntentStatus{
		Status:    "succeeded",
		IsSuccess: true,
		Amount:    19.99,
		Customer:  model.IntentMetadata{OrderID: "ord1"},
	}, nil
}

type stubWebhookService struct {
	payload   []byte
	signature string
	err       error
}

func (s *stubWebhookService) HandleWebhook(_ context.Context, payload []byte, signature string) error {
	s.payload, s.signature = payload, signature
	return s.err
}

const orderJSON = `{
	"orderId": "ord1",
	"items": [{"id": 1, "name": "Burger", "price": 8.50, "quantity": 2}],
	"customer": {"name": "Jane", "email": "jane@example.com", "phone": "0700"},
	"summary": {"orderType": "DELIVERY", "total": 20.50, "deliveryFee": 3.50, "tip": 0,
		"location": {"id": "r1", "name": "Diner"}}
}`

func newTestServer(payments *stubPaymentService, webhooks *stubWebhookService) *Server {
	return NewServer(payments, webhooks, "https://shop.test/", zap.NewNop())
}

func do(t *testing.T, s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(&stubPaymentService{}, &stubWebhookService{})

	rec := do(t, s, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestCreateCheckoutSessionRoute(t *testing.T) {
	payments := &stubPaymentService{}
	s := newTestServer(payments, &stubWebhookService{})

	rec := do(t, s, http.MethodPost, "/api/orders/checkout-session", orderJSON, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "cs_test_1", body["sessionId"])
	assert.Equal(t, "https://checkout.test/cs_test_1", body["url"])

	require.NotNil(t, payments.order)
	assert.Equal(t, "ord1", payments.order.OrderID)
	assert.Equal(t, model.ItemID("1"), payments.order.Items[0].ID)
	assert.Equal(t, 8.50, payments.order.Items[0].Price)
	assert.Equal(t, "r1", payments.order.Summary.Location.ID)
	assert.Equal(t, "https://shop.test/order/success", payments.successURL)
	assert.Equal(t, "https://shop.test/order/cancel", payments.cancelURL)
}

func TestCreateCheckoutSessionRoute_CustomRedirects(t *testing.T) {
	payments := &stubPaymentService{}
	s := newTestServer(payments, &stubWebhookService{})

	body := strings.Replace(orderJSON, `"orderId": "ord1",`,
		`"orderId": "ord1", "successUrl": "https://app.test/ok", "cancelUrl": "https://app.test/no",`, 1)
	rec := do(t, s, http.MethodPost, "/api/orders/checkout-session", body, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "https://app.test/ok", payments.successURL)
	assert.Equal(t, "https://app.test/no", payments.cancelURL)
}

func TestCreateCheckoutSessionRoute_Validation(t *testing.T) {
	cases := map[string]string{
		"malformed":      `{"orderId":`,
		"no items":       `{"orderId": "ord1", "items": [], "customer": {"email": "a@b.c"}}`,
		"zero quantity":  `{"orderId": "ord1", "items": [{"id": "1", "name": "x", "price": 1, "quantity": 0}], "customer": {"email": "a@b.c"}}`,
		"negative price": `{"orderId": "ord1", "items": [{"id": "1", "name": "x", "price": -1, "quantity": 1}], "customer": {"email": "a@b.c"}}`,
		"no order id":    `{"items": [{"id": "1", "name": "x", "price": 1, "quantity": 1}], "customer": {"email": "a@b.c"}}`,
		"no email":       `{"orderId": "ord1", "items": [{"id": "1", "name": "x", "price": 1, "quantity": 1}]}`,
		"negative tip":   `{"orderId": "ord1", "items": [{"id": "1", "name": "x", "price": 1, "quantity": 1}], "customer": {"email": "a@b.c"}, "summary": {"tip": -2}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			payments := &stubPaymentService{}
			s := newTestServer(payments, &stubWebhookService{})

			rec := do(t, s, http.MethodPost, "/api/orders/checkout-session", body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, payments.order)
		})
	}
}

func TestCreateCheckoutSessionRoute_GatewayFailure(t *testing.T) {
	payments := &stubPaymentService{err: service.ErrPaymentSessionCreationFailed}
	s := newTestServer(payments, &stubWebhookService{})

	rec := do(t, s, http.MethodPost, "/api/orders/checkout-session", orderJSON, nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "payment session creation failed", decode(t, rec)["message"])
}

func TestVerifyCheckoutSessionRoute(t *testing.T) {
	payments := &stubPaymentService{}
	s := newTestServer(payments, &stubWebhookService{})

	rec := do(t, s, http.MethodGet, "/api/orders/checkout-session/cs_test_1", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cs_test_1", payments.lookupID)
	body := decode(t, rec)
	assert.Equal(t, "paid", body["paymentStatus"])
	assert.Equal(t, true, body["isComplete"])
	assert.Equal(t, "ord1", body["orderId"])
}

func TestVerifyCheckoutSessionRoute_GatewayFailure(t *testing.T) {
	payments := &stubPaymentService{err: service.ErrSessionVerificationFailed}
	s := newTestServer(payments, &stubWebhookService{})

	rec := do(t, s, http.MethodGet, "/api/orders/checkout-session/cs_missing", "", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "session verification failed", decode(t, rec)["message"])
}

func TestCreatePaymentIntentRoute(t *testing.T) {
	payments := &stubPaymentService{}
	s := newTestServer(payments, &stubWebhookService{})

	rec := do(t, s, http.MethodPost, "/api/orders/payment-intent", orderJSON, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "pi_test_1", body["paymentIntentId"])
	assert.Equal(t, "pi_test_1_secret", body["clientSecret"])
	assert.Equal(t, 20.50, payments.order.Summary.Total)
}

func TestCreatePaymentIntentRoute_ZeroTotal(t *testing.T) {
	payments := &stubPaymentService{}
	s := newTestServer(payments, &stubWebhookService{})

	body := strings.Replace(orderJSON, `"total": 20.50`, `"total": 0`, 1)
	rec := do(t, s, http.MethodPost, "/api/orders/payment-intent", body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, payments.order)
}

func TestCreatePaymentIntentRoute_GatewayFailure(t *testing.T) {
	payments := &stubPaymentService{err: service.ErrPaymentIntentCreationFailed}
	s := newTestServer(payments, &stubWebhookService{})

	rec := do(t, s, http.MethodPost, "/api/orders/payment-intent", orderJSON, nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCheckPaymentIntentStatusRoute(t *testing.T) {
	payments := &stubPaymentService{}
	s := newTestServer(payments, &stubWebhookService{})

	rec := do(t, s, http.MethodGet, "/api/orders/payment-intent/pi_test_1", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pi_test_1", payments.lookupID)
	body := decode(t, rec)
	assert.Equal(t, "succeeded", body["status"])
	assert.Equal(t, true, body["isSuccess"])
	assert.Equal(t, 19.99, body["amount"])
}

func TestCheckPaymentIntentStatusRoute_GatewayFailure(t *testing.T) {
	payments := &stubPaymentService{err: service.ErrPaymentIntentCheckFailed}
	s := newTestServer(payments, &stubWebhookService{})

	rec := do(t, s, http.MethodGet, "/api/orders/payment-intent/pi_missing", "", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "payment check failed", decode(t, rec)["message"])
}

func TestStripeWebhookRoute(t *testing.T) {
	webhooks := &stubWebhookService{}
	s := newTestServer(&stubPaymentService{}, webhooks)

	rec := do(t, s, http.MethodPost, "/api/payments/webhook", `{"id":"evt_1"}`,
		map[string]string{"Stripe-Signature": "t=1,v1=abc"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"id":"evt_1"}`, string(webhooks.payload))
	assert.Equal(t, "t=1,v1=abc", webhooks.signature)
}

func TestStripeWebhookRoute_InvalidSignature(t *testing.T) {
	webhooks := &stubWebhookService{err: service.ErrInvalidWebhook}
	s := newTestServer(&stubPaymentService{}, webhooks)

	rec := do(t, s, http.MethodPost, "/api/payments/webhook", `{}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStripeWebhookRoute_InternalFailure(t *testing.T) {
	webhooks := &stubWebhookService{err: errors.New("publish payment event: broker unavailable")}
	s := newTestServer(&stubPaymentService{}, webhooks)

	rec := do(t, s, http.MethodPost, "/api/payments/webhook", `{}`, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
