package service

import (
	"context"
	"restaurant-ordering-api/internal/client"
	"restaurant-ordering-api/internal/config"
	"restaurant-ordering-api/internal/model"
	"restaurant-ordering-api/internal/money"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionIDPlaceholder = "session_id={CHECKOUT_SESSION_ID}"

// idempotencyNamespace scopes the UUIDv5 keys derived from order ids.
var idempotencyNamespace = uuid.MustParse("6f1c1f5e-8d2a-4c55-9a57-3c1f0f0d8b21")

type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, order *model.OrderData, successURL, cancelURL string) (*model.CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, order *model.OrderData) (*model.PaymentIntent, error)
	VerifyCheckoutSession(ctx context.Context, sessionID string) (*model.SessionVerification, error)
	CheckPaymentIntentStatus(ctx context.Context, paymentIntentID string) (*model.PaymentIntentStatus, error)
}

type paymentServiceImpl struct {
	stripeClient client.StripeClient
	stripeCfg    config.Stripe
	logger       *zap.Logger
}

func NewPaymentService(stripeClient client.StripeClient, stripeCfg config.Stripe, logger *zap.Logger) PaymentService {
	stripeCfg.Normalize()
	return &paymentServiceImpl{
		stripeClient: stripeClient,
		stripeCfg:    stripeCfg,
		logger:       logger,
	}
}

func (s *paymentServiceImpl) CreateCheckoutSession(ctx context.Context, order *model.OrderData, successURL, cancelURL string) (*model.CheckoutSession, error) {
	req := &model.CheckoutSessionRequest{
		LineItems:     BuildLineItems(order, s.stripeCfg.Currency),
		SuccessURL:    withSessionPlaceholder(successURL),
		CancelURL:     withSessionPlaceholder(cancelURL),
		CustomerEmail: order.Customer.Email,
		Metadata: model.SessionMetadata{
			OrderID:        order.OrderID,
			RestaurantID:   order.Summary.Location.ID,
			RestaurantName: order.Summary.Location.Name,
			OrderType:      order.Summary.OrderType,
			CustomerName:   order.Customer.Name,
			CustomerPhone:  order.Customer.Phone,
		},
		IdempotencyKey: s.idempotencyKey("checkout-session", order.OrderID),
	}

	sess, err := s.stripeClient.CreateCheckoutSession(ctx, req)
	if err != nil {
		s.logger.Error("Error creating payment session",
			zap.String("order_id", order.OrderID),
			zap.Error(err),
		)
		return nil, ErrPaymentSessionCreationFailed
	}

	s.logger.Info("Payment session created",
		zap.String("order_id", order.OrderID),
		zap.String("email", order.Customer.Email),
		zap.String("session_id", sess.ID),
	)
	return sess, nil
}

func (s *paymentServiceImpl) CreatePaymentIntent(ctx context.Context, order *model.OrderData) (*model.PaymentIntent, error) {
	req := &model.PaymentIntentRequest{
		Amount:   money.ToMinorUnits(order.Summary.Total),
		Currency: s.stripeCfg.Currency,
		Metadata: model.IntentMetadata{
			OrderID:       order.OrderID,
			CustomerEmail: order.Customer.Email,
			CustomerName:  order.Customer.Name,
		},
		IdempotencyKey: s.idempotencyKey("payment-intent", order.OrderID),
	}

	pi, err := s.stripeClient.CreatePaymentIntent(ctx, req)
	if err != nil {
		s.logger.Error("Error creating payment intent",
			zap.String("order_id", order.OrderID),
			zap.Error(err),
		)
		return nil, ErrPaymentIntentCreationFailed
	}

	s.logger.Info("Payment intent created",
		zap.String("order_id", order.OrderID),
		zap.String("payment_intent_id", pi.ID),
	)
	return pi, nil
}

func (s *paymentServiceImpl) VerifyCheckoutSession(ctx context.Context, sessionID string) (*model.SessionVerification, error) {
	sess, err := s.stripeClient.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		s.logger.Error("Error verifying session",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil, ErrSessionVerificationFailed
	}

	return &model.SessionVerification{
		PaymentStatus: sess.PaymentStatus,
		IsComplete:    sess.PaymentStatus == model.PaymentStatusPaid,
		Customer:      sess.CustomerDetails,
		OrderID:       sess.Metadata.OrderID,
	}, nil
}

func (s *paymentServiceImpl) CheckPaymentIntentStatus(ctx context.Context, paymentIntentID string) (*model.PaymentIntentStatus, error) {
	pi, err := s.stripeClient.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		s.logger.Error("Error checking payment intent",
			zap.String("payment_intent_id", paymentIntentID),
			zap.Error(err),
		)
		return nil, ErrPaymentIntentCheckFailed
	}

	return &model.PaymentIntentStatus{
		Status:    pi.Status,
		IsSuccess: pi.Status == model.IntentStatusSucceeded,
		Amount:    money.FromMinorUnits(pi.Amount),
		Customer:  pi.Metadata,
	}, nil
}

// idempotencyKey is stable per operation and order, so retried or concurrent attempts for
// the same order resolve to the same gateway object.
func (s *paymentServiceImpl) idempotencyKey(operation, orderID string) string {
	if !s.stripeCfg.IdempotentRequests || orderID == "" {
		return ""
	}
	return uuid.NewSHA1(idempotencyNamespace, []byte(operation+":"+orderID)).String()
}

func withSessionPlaceholder(url string) string {
	if strings.Contains(url, "?") {
		return url + "&" + sessionIDPlaceholder
	}
	return url + "?" + sessionIDPlaceholder
}
