package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/service"

	"github.com/segmentio/kafka-go"
)

// Event type discriminators carried in every message payload.
const (
	TypeOrderPlaced    = "order.placed"
	TypeItemReady      = "order.item_ready"
	TypeItemCancelled  = "order.item_cancelled"
	TypeOrderCancelled = "order.cancelled"
)

// Envelope wraps every event with its type so one topic carries all
// notification-driving events.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// KafkaEventBus implements service.EventBus over a single kafka topic. It is
// the decoupling point between the order transaction and notification
// delivery: the HTTP request never waits on a dispatcher.
type KafkaEventBus struct {
	writer *kafka.Writer
}

func NewKafkaEventBus(brokers []string, topic string) *KafkaEventBus {
	return &KafkaEventBus{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (b *KafkaEventBus) publish(ctx context.Context, key, eventType string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	value, err := json.Marshal(Envelope{Type: eventType, Payload: raw})
	if err != nil {
		return err
	}
	return b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (b *KafkaEventBus) PublishOrderPlaced(ctx context.Context, e service.OrderPlacedEvent) error {
	return b.publish(ctx, e.OrderID.String(), TypeOrderPlaced, e)
}

func (b *KafkaEventBus) PublishItemReady(ctx context.Context, e service.ItemReadyEvent) error {
	return b.publish(ctx, e.OrderID.String(), TypeItemReady, e)
}

func (b *KafkaEventBus) PublishItemCancelled(ctx context.Context, e service.ItemCancelledEvent) error {
	return b.publish(ctx, e.OrderID.String(), TypeItemCancelled, e)
}

func (b *KafkaEventBus) PublishOrderCancelled(ctx context.Context, e service.OrderCancelledEvent) error {
	return b.publish(ctx, e.OrderID.String(), TypeOrderCancelled, e)
}

func (b *KafkaEventBus) Close() error {
	return b.writer.Close()
}
