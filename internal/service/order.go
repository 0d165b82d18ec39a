package service

import (
	"context"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/repository"

	"github.com/google/uuid"
)

type LineItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type PlaceOrderInput struct {
	Items           []LineItemInput
	DeliveryAddress string
	ContactPhone    string

	// Payment is optional: nil means the client pays later through a channel
	// outside this flow.
	PaymentMethod    *models.PaymentMethod
	PaymentReference string
}

type OrderListFilter struct {
	ClientID *uuid.UUID
	Status   *models.OrderStatus
	Limit    int
	Offset   int
}

type OrderService interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)
}

// CancelOrderResult reports what an order-level cancellation undid: when a
// VALID payment was refunded, RefundedCfa is the amount that drops out of
// vendor revenue recognition from this point on.
type CancelOrderResult struct {
	Order       *models.Order
	Refunded    bool
	RefundedCfa int64
}

type VendorStats struct {
	TotalOrders    int64                   `json:"total_orders"`
	RecognizedCfa  int64                   `json:"recognized_revenue_cfa"`
	BestSellers    []repository.BestSeller `json:"best_sellers"`
	ReadyItems     int64                   `json:"ready_items"`
	PreparingItems int64                   `json:"preparing_items"`
	PendingItems   int64                   `json:"pending_items"`
}

type LifecycleService interface {
	// Vendor-scoped line-item transitions. A vendor can only move items that
	// belong to its own products; anything else reads as not found.
	MarkItemPreparing(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error)
	MarkItemReady(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error)
	CancelItem(ctx context.Context, itemID uuid.UUID, reason *string) (*models.OrderItem, error)

	// Order-level transitions (administrative confirm/deliver/cancel).
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, next models.OrderStatus, reason *string) (*CancelOrderResult, error)

	VendorStats(ctx context.Context) (*VendorStats, error)
}
