package events

import (
	"context"
	"encoding/json"
	"errors"
	"restaurant-ordering-api/internal/model"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaProducer_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := &kafkaProducer{writer: w, topic: "payment-events", logger: zap.NewNop()}

	event := model.PaymentEvent{
		Type:      "payment_succeeded",
		OrderID:   "ord1",
		GatewayID: "cs_test_1",
		Status:    "paid",
		Amount:    2050,
		Currency:  "gbp",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, w.msgs, 1)

	assert.Equal(t, []byte("ord1"), w.msgs[0].Key)

	var decoded model.PaymentEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, event, decoded)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaProducer_PublishError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker unavailable")}
	p := &kafkaProducer{writer: w, topic: "payment-events", logger: zap.NewNop()}

	err := p.Publish(context.Background(), model.PaymentEvent{OrderID: "ord1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
}

func TestLogProducer_Publish(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewLogProducer(zap.New(core))

	require.NoError(t, p.Publish(context.Background(), model.PaymentEvent{Type: "payment_failed", OrderID: "ord9"}))

	entries := logs.FilterMessage("Payment event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ord9", entries[0].ContextMap()["order_id"])
	assert.NoError(t, p.Close())
}
