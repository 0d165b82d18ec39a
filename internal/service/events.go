package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Events published after a successful commit. Delivery is best-effort: a
// publish failure is logged and never surfaces to the operation that
// produced it.

type OrderPlacedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	Number    string    `json:"number"`
	ClientID  uuid.UUID `json:"client_id"`
	AmountCfa int64     `json:"amount_cfa"`
	PlacedAt  time.Time `json:"placed_at"`
}

type ItemReadyEvent struct {
	OrderID uuid.UUID `json:"order_id"`
	ItemID  uuid.UUID `json:"item_id"`
	ReadyAt time.Time `json:"ready_at"`
}

type ItemCancelledEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	ItemID      uuid.UUID `json:"item_id"`
	ProductName string    `json:"product_name"`
	Reason      string    `json:"reason,omitempty"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type OrderCancelledEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	ClientID    uuid.UUID `json:"client_id"`
	Reason      string    `json:"reason,omitempty"`
	RefundedCfa int64     `json:"refunded_cfa"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type EventBus interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent) error
	PublishItemReady(ctx context.Context, e ItemReadyEvent) error
	PublishItemCancelled(ctx context.Context, e ItemCancelledEvent) error
	PublishOrderCancelled(ctx context.Context, e OrderCancelledEvent) error
}
