package client

import (
	"context"
	"encoding/json"
	"fmt"
	"restaurant-ordering-api/internal/config"
	"restaurant-ordering-api/internal/model"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v80"
	stripeclient "github.com/stripe/stripe-go/v80/client"
	"github.com/stripe/stripe-go/v80/webhook"
)

const paymentMethodCard = "card"

type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, req *model.CheckoutSessionRequest) (*model.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, req *model.PaymentIntentRequest) (*model.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*model.PaymentIntent, error)

	// ParseWebhook verifies the Stripe-Signature header and decodes the event.
	ParseWebhook(payload []byte, signature string) (*model.GatewayEvent, error)
}

type stripeClientImpl struct {
	api           *stripeclient.API
	webhookSecret string
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	var backends *stripe.Backends
	if stripeCfg.APIURL != "" {
		backends = &stripe.Backends{
			API: stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
				URL:               stripe.String(stripeCfg.APIURL),
				MaxNetworkRetries: stripe.Int64(0),
				LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
			}),
		}
	}

	return &stripeClientImpl{
		api:           stripeclient.New(stripeCfg.SecretKey, backends),
		webhookSecret: stripeCfg.WebhookSecret,
	}
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, req *model.CheckoutSessionRequest) (*model.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, len(req.LineItems))
	for i, item := range req.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Description != "" {
			productData.Description = stripe.String(item.Description)
		}
		if item.ProductID != "" {
			productData.Metadata = map[string]string{"id": item.ProductID}
		}

		lineItems[i] = &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(item.Currency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		}
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{paymentMethodCard}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		CustomerEmail:      stripe.String(req.CustomerEmail),
	}
	params.Context = ctx
	params.AddMetadata("orderId", req.Metadata.OrderID)
	params.AddMetadata("restaurantId", req.Metadata.RestaurantID)
	params.AddMetadata("restaurantName", req.Metadata.RestaurantName)
	params.AddMetadata("orderType", req.Metadata.OrderType)
	params.AddMetadata("customerName", req.Metadata.CustomerName)
	params.AddMetadata("customerPhone", req.Metadata.CustomerPhone)
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}

	return toCheckoutSession(sess), nil
}

func (c *stripeClientImpl) GetCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get checkout session: %w", err)
	}

	return toCheckoutSession(sess), nil
}

func (c *stripeClientImpl) CreatePaymentIntent(ctx context.Context, req *model.PaymentIntentRequest) (*model.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{paymentMethodCard}),
	}
	params.Context = ctx
	params.AddMetadata("orderId", req.Metadata.OrderID)
	params.AddMetadata("customerEmail", req.Metadata.CustomerEmail)
	params.AddMetadata("customerName", req.Metadata.CustomerName)
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}

	return toPaymentIntent(pi), nil
}

func (c *stripeClientImpl) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*model.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := c.api.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get payment intent: %w", err)
	}

	return toPaymentIntent(pi), nil
}

func (c *stripeClientImpl) ParseWebhook(payload []byte, signature string) (*model.GatewayEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("construct stripe event: %w", err)
	}

	out := &model.GatewayEvent{
		ID:        event.ID,
		Type:      string(event.Type),
		CreatedAt: time.Unix(event.Created, 0).UTC(),
	}
	if event.Data == nil {
		return out, nil
	}

	switch {
	case strings.HasPrefix(string(event.Type), "checkout.session."):
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		out.ObjectID = sess.ID
		out.OrderID = sess.Metadata["orderId"]
		out.Status = string(sess.PaymentStatus)
		out.Amount = sess.AmountTotal
		out.Currency = string(sess.Currency)
	case strings.HasPrefix(string(event.Type), "payment_intent."):
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("decode payment intent: %w", err)
		}
		out.ObjectID = pi.ID
		out.OrderID = pi.Metadata["orderId"]
		out.Status = string(pi.Status)
		out.Amount = pi.Amount
		out.Currency = string(pi.Currency)
	}

	return out, nil
}

func toCheckoutSession(sess *stripe.CheckoutSession) *model.CheckoutSession {
	out := &model.CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
		Metadata: model.SessionMetadata{
			OrderID:        sess.Metadata["orderId"],
			RestaurantID:   sess.Metadata["restaurantId"],
			RestaurantName: sess.Metadata["restaurantName"],
			OrderType:      sess.Metadata["orderType"],
			CustomerName:   sess.Metadata["customerName"],
			CustomerPhone:  sess.Metadata["customerPhone"],
		},
	}
	if sess.CustomerDetails != nil {
		out.CustomerDetails = &model.CustomerDetails{
			Name:  sess.CustomerDetails.Name,
			Email: sess.CustomerDetails.Email,
			Phone: sess.CustomerDetails.Phone,
		}
	}
	return out
}

func toPaymentIntent(pi *stripe.PaymentIntent) *model.PaymentIntent {
	return &model.PaymentIntent{
		ID:           pi.ID,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		ClientSecret: pi.ClientSecret,
		Metadata: model.IntentMetadata{
			OrderID:       pi.Metadata["orderId"],
			CustomerEmail: pi.Metadata["customerEmail"],
			CustomerName:  pi.Metadata["customerName"],
		},
	}
}
