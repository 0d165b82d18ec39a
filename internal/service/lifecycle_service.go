package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatsCache is the optional read-through cache for vendor aggregates.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type lifecycleService struct {
	repo     *repository.Repository
	events   EventBus
	cache    StatsCache
	cacheTTL time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewLifecycleService(repo *repository.Repository, events EventBus, cache StatsCache, cacheTTL time.Duration, log *zap.Logger) LifecycleService {
	return &lifecycleService{
		repo:     repo,
		events:   events,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
		now:      time.Now,
	}
}

func (s *lifecycleService) requireVendor(ctx context.Context) (uuid.UUID, error) {
	actorID, role, err := requireAuth(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if role != RoleVendor {
		return uuid.Nil, ErrForbidden
	}
	return actorID, nil
}

// transitionItem applies a vendor-scoped status change. The update query is
// filtered on vendor_id, so a mismatched vendor sees zero rows affected and
// gets not-found — the item's existence is never confirmed to outsiders.
func (s *lifecycleService) transitionItem(ctx context.Context, itemID uuid.UUID, from []models.ItemStatus, to models.ItemStatus, reason *string) (*models.OrderItem, error) {
	vendorID, err := s.requireVendor(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.OrderItems.UpdateStatusForVendor(ctx, itemID, vendorID, from, to, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrItemNotFound
	}

	item, err := s.repo.OrderItems.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *lifecycleService) MarkItemPreparing(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error) {
	return s.transitionItem(ctx, itemID,
		[]models.ItemStatus{models.ItemStatusPending},
		models.ItemStatusPreparing, nil)
}

func (s *lifecycleService) MarkItemReady(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error) {
	item, err := s.transitionItem(ctx, itemID,
		[]models.ItemStatus{models.ItemStatusPending, models.ItemStatusPreparing},
		models.ItemStatusReady, nil)
	if err != nil {
		return nil, err
	}

	// The all-ready client notification is driven by this event: the notifier
	// reloads the order's items and re-evaluates the full condition, so a
	// redundant event is harmless.
	if s.events != nil {
		if err := s.events.PublishItemReady(ctx, ItemReadyEvent{
			OrderID: item.OrderID,
			ItemID:  item.ID,
			ReadyAt: s.now(),
		}); err != nil {
			s.log.Warn("publish item ready event failed",
				zap.String("item_id", item.ID.String()),
				zap.Error(err),
			)
		}
	}
	return item, nil
}

func (s *lifecycleService) CancelItem(ctx context.Context, itemID uuid.UUID, reason *string) (*models.OrderItem, error) {
	item, err := s.transitionItem(ctx, itemID,
		[]models.ItemStatus{models.ItemStatusPending, models.ItemStatusPreparing},
		models.ItemStatusCancelled, reason)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		r := ""
		if reason != nil {
			r = *reason
		}
		if err := s.events.PublishItemCancelled(ctx, ItemCancelledEvent{
			OrderID:     item.OrderID,
			ItemID:      item.ID,
			ProductName: item.ProductName,
			Reason:      r,
			CancelledAt: s.now(),
		}); err != nil {
			s.log.Warn("publish item cancelled event failed",
				zap.String("item_id", item.ID.String()),
				zap.Error(err),
			)
		}
	}
	return item, nil
}

// orderTransitions is the order-level status machine:
// PENDING -> CONFIRMED -> DELIVERED, with CANCELLED reachable from
// PENDING and CONFIRMED.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusDelivered, models.OrderStatusCancelled},
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *lifecycleService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, next models.OrderStatus, reason *string) (*CancelOrderResult, error) {
	actorID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	switch role {
	case RoleAdmin:
		// any legal transition
	case RoleVendor:
		// Vendors may only confirm, and only orders that touch them.
		if next != models.OrderStatusConfirmed {
			return nil, ErrForbidden
		}
		touches := false
		for _, it := range ord.Items {
			if it.VendorID == actorID {
				touches = true
				break
			}
		}
		if !touches {
			return nil, ErrOrderNotFound
		}
	default:
		return nil, ErrForbidden
	}

	switch ord.Status {
	case models.OrderStatusCancelled:
		return nil, ErrAlreadyCancelled
	case models.OrderStatusDelivered:
		return nil, ErrAlreadyDelivered
	}
	if !transitionAllowed(ord.Status, next) {
		return nil, ErrInvalidTransition
	}

	result := &CancelOrderResult{}
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Orders.UpdateStatus(ctx, orderID, next, reason); err != nil {
			return err
		}
		if next == models.OrderStatusCancelled {
			// Cancelling a VALID-paid order refunds the payment, which
			// retroactively removes the order's amount from any vendor
			// revenue aggregate computed afterwards.
			refunded, err := tx.Payments.RefundValidByOrder(ctx, orderID)
			if err != nil {
				return err
			}
			if refunded {
				result.Refunded = true
				result.RefundedCfa = ord.AmountCfa
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ord, err = s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	result.Order = ord

	if next == models.OrderStatusCancelled && s.events != nil {
		r := ""
		if reason != nil {
			r = *reason
		}
		if err := s.events.PublishOrderCancelled(ctx, OrderCancelledEvent{
			OrderID:     orderID,
			ClientID:    ord.ClientID,
			Reason:      r,
			RefundedCfa: result.RefundedCfa,
			CancelledAt: s.now(),
		}); err != nil {
			s.log.Warn("publish order cancelled event failed",
				zap.String("order_id", orderID.String()),
				zap.Error(err),
			)
		}
	}

	return result, nil
}

func statsCacheKey(vendorID uuid.UUID) string { return "stats:gie:" + vendorID.String() }

func (s *lifecycleService) VendorStats(ctx context.Context) (*VendorStats, error) {
	vendorID, err := s.requireVendor(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, statsCacheKey(vendorID)); ok {
			var cached VendorStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	totalOrders, err := s.repo.Orders.CountTouchingVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.Orders.RecognizedRevenueForVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	best, err := s.repo.Orders.BestSellersForVendor(ctx, vendorID, 10)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.OrderItems.CountByStatusForVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	stats := &VendorStats{
		TotalOrders:    totalOrders,
		RecognizedCfa:  revenue,
		BestSellers:    best,
		ReadyItems:     byStatus[models.ItemStatusReady],
		PreparingItems: byStatus[models.ItemStatusPreparing],
		PendingItems:   byStatus[models.ItemStatusPending],
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			s.cache.Set(ctx, statsCacheKey(vendorID), raw, s.cacheTTL)
		}
	}
	return stats, nil
}
