package service

import (
	"context"
	"fmt"
	"restaurant-ordering-api/internal/client"
	"restaurant-ordering-api/internal/events"
	"restaurant-ordering-api/internal/model"
	"restaurant-ordering-api/internal/repository"
	"time"

	"go.uber.org/zap"
)

// Stripe event types relayed downstream, mapped to the published event type.
var relayedEventTypes = map[string]string{
	"checkout.session.completed":               "checkout_completed",
	"checkout.session.async_payment_succeeded": "payment_succeeded",
	"checkout.session.async_payment_failed":    "payment_failed",
	"checkout.session.expired":                 "checkout_expired",
	"payment_intent.succeeded":                 "payment_succeeded",
	"payment_intent.payment_failed":            "payment_failed",
	"payment_intent.canceled":                  "payment_canceled",
}

type WebhookService interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type webhookServiceImpl struct {
	stripeClient     client.StripeClient
	webhookEventRepo repository.WebhookEventRepository
	producer         events.Producer
	logger           *zap.Logger
	now              func() time.Time
}

func NewWebhookService(
	stripeClient client.StripeClient,
	webhookEventRepo repository.WebhookEventRepository,
	producer events.Producer,
	logger *zap.Logger,
) WebhookService {
	return &webhookServiceImpl{
		stripeClient:     stripeClient,
		webhookEventRepo: webhookEventRepo,
		producer:         producer,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *webhookServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.stripeClient.ParseWebhook(payload, signature)
	if err != nil {
		s.logger.Warn("Stripe webhook verification failed", zap.Error(err))
		return ErrInvalidWebhook
	}

	processed, err := s.webhookEventRepo.Exists(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("check webhook event: %w", err)
	}
	if processed {
		s.logger.Info("Skipping duplicate webhook",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
		)
		return nil
	}

	eventType, relayed := relayedEventTypes[event.Type]
	if relayed {
		paymentEvent := model.PaymentEvent{
			Type:      eventType,
			OrderID:   event.OrderID,
			GatewayID: event.ObjectID,
			Status:    event.Status,
			Amount:    event.Amount,
			Currency:  event.Currency,
			Timestamp: s.now().UTC(),
		}
		// not marked processed on failure so the gateway redelivers
		if err := s.producer.Publish(ctx, paymentEvent); err != nil {
			return fmt.Errorf("publish payment event: %w", err)
		}
	} else {
		s.logger.Info("Unhandled webhook event type", zap.String("event_type", event.Type))
	}

	if err := s.webhookEventRepo.MarkProcessed(ctx, event.ID, event.Type); err != nil {
		return fmt.Errorf("mark webhook event processed: %w", err)
	}

	s.logger.Info("Webhook processed",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type),
		zap.String("order_id", event.OrderID),
	)
	return nil
}
