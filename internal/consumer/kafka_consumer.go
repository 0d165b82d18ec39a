package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/notifier"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/producer"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/service"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaNotificationConsumer drives the fan-out notifier from the event
// stream. Processing is at-least-once; the notifier's all-ready check is a
// re-evaluated condition, so duplicate deliveries are harmless.
type KafkaNotificationConsumer struct {
	reader   *kafka.Reader
	notifier *notifier.Service
	log      *zap.Logger
}

func NewKafkaNotificationConsumer(brokers []string, groupID, topic string, n *notifier.Service, log *zap.Logger) *KafkaNotificationConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          10e3,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &KafkaNotificationConsumer{reader: r, notifier: n, log: log}
}

func (c *KafkaNotificationConsumer) Run(ctx context.Context) error {
	c.log.Info("notification consumer started")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.log.Error("read message", zap.Error(err))
			continue
		}

		var env producer.Envelope
		if err := json.Unmarshal(m.Value, &env); err != nil {
			c.log.Error("unmarshal event envelope", zap.ByteString("value", m.Value), zap.Error(err))
			continue
		}

		if err := c.handle(ctx, env); err != nil {
			c.log.Error("handle event failed",
				zap.String("type", env.Type),
				zap.Error(err),
			)
		}
	}
}

func (c *KafkaNotificationConsumer) handle(ctx context.Context, env producer.Envelope) error {
	switch env.Type {
	case producer.TypeOrderPlaced:
		var e service.OrderPlacedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return err
		}
		if err := c.notifier.NotifyVendorsOfNewOrder(ctx, e.OrderID); err != nil {
			return err
		}
		return c.notifier.NotifyClientOrderPlaced(ctx, e.OrderID)

	case producer.TypeItemReady:
		var e service.ItemReadyEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return err
		}
		return c.notifier.NotifyClientWhenAllReady(ctx, e.OrderID)

	case producer.TypeItemCancelled:
		var e service.ItemCancelledEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return err
		}
		return c.notifier.NotifyClientItemCancelled(ctx, e.OrderID, e.ItemID, e.ProductName, e.Reason)

	case producer.TypeOrderCancelled:
		var e service.OrderCancelledEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return err
		}
		return c.notifier.NotifyClientOrderCancelled(ctx, e.OrderID, e.Reason, e.RefundedCfa)

	default:
		c.log.Warn("unknown event type", zap.String("type", env.Type))
		return nil
	}
}

func (c *KafkaNotificationConsumer) Close() error { return c.reader.Close() }
