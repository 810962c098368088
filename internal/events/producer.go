package events

import (
	"context"
	"encoding/json"
	"fmt"
	"restaurant-ordering-api/internal/model"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Producer interface {
	Publish(ctx context.Context, event model.PaymentEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaProducer struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

func NewKafkaProducer(brokers []string, topic string, logger *zap.Logger) Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
	}
	logger.Info("Kafka payment event producer initialized",
		zap.String("topic", topic),
		zap.Strings("brokers", brokers),
	)
	return &kafkaProducer{writer: w, topic: topic, logger: logger}
}

// Publish keys messages by order id so events for one order stay on one partition.
func (p *kafkaProducer) Publish(ctx context.Context, event model.PaymentEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal payment event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write payment event: %w", err)
	}

	p.logger.Debug("Payment event published",
		zap.String("topic", p.topic),
		zap.String("type", event.Type),
		zap.String("order_id", event.OrderID),
	)
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

type logProducer struct {
	logger *zap.Logger
}

// NewLogProducer is used when no brokers are configured. Events are only logged.
func NewLogProducer(logger *zap.Logger) Producer {
	return &logProducer{logger: logger}
}

func (p *logProducer) Publish(_ context.Context, event model.PaymentEvent) error {
	p.logger.Info("Payment event",
		zap.String("type", event.Type),
		zap.String("order_id", event.OrderID),
		zap.String("gateway_id", event.GatewayID),
		zap.String("status", event.Status),
		zap.Int64("amount", event.Amount),
		zap.String("currency", event.Currency),
	)
	return nil
}

func (p *logProducer) Close() error { return nil }
