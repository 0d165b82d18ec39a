package service

import (
	"context"
	"strings"
	"time"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// placementTimeout caps the whole placement call, transaction included. The
// transaction additionally carries its own lock_timeout (repository.WithTx).
const placementTimeout = 5 * time.Second

type orderService struct {
	repo   *repository.Repository
	events EventBus
	log    *zap.Logger
	now    func() time.Time
	number func(time.Time) string
}

func NewOrderService(repo *repository.Repository, events EventBus, log *zap.Logger) OrderService {
	return &orderService{
		repo:   repo,
		events: events,
		log:    log,
		now:    time.Now,
		number: newOrderNumber,
	}
}

// newOrderNumber builds the human-readable order number, e.g.
// CMD-20250411-9F3A2C1B.
func newOrderNumber(t time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return "CMD-" + t.Format("20060102") + "-" + suffix
}

func (s *orderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	clientID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if role != RoleClient && role != RoleAdmin {
		return nil, ErrForbidden
	}

	if len(in.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return nil, ErrAddressRequired
	}
	if strings.TrimSpace(in.ContactPhone) == "" {
		return nil, ErrPhoneRequired
	}
	if in.PaymentMethod != nil && !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	productIDs := make([]uuid.UUID, 0, len(in.Items))
	seen := make(map[uuid.UUID]struct{}, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, ErrQuantityInvalid
		}
		if _, dup := seen[it.ProductID]; dup {
			return nil, ErrDuplicateProduct
		}
		seen[it.ProductID] = struct{}{}
		productIDs = append(productIDs, it.ProductID)
	}

	ctx, cancel := context.WithTimeout(ctx, placementTimeout)
	defer cancel()

	// Unit prices come from the catalog row, never from the request body, and
	// are snapshotted into the line items at placement.
	products, err := s.repo.Products.BatchGetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, it := range in.Items {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: it.ProductID}
		}
		if !p.IsActive {
			return nil, &ProductUnavailableError{ProductID: p.ID, ProductName: p.Name}
		}
	}

	// Advisory pre-check: fail fast with a descriptive error before any
	// write. The conditional decrement inside the transaction remains the
	// source of truth.
	stocks, err := s.repo.Products.GetStocks(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	for _, it := range in.Items {
		row, ok := stocks[it.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: it.ProductID}
		}
		if row.Stock < it.Quantity {
			return nil, &InsufficientStockError{
				ProductID:   it.ProductID,
				ProductName: row.Name,
				Requested:   it.Quantity,
				Available:   row.Stock,
			}
		}
	}

	now := s.now()
	var total int64
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		p := byID[it.ProductID]
		line := p.PriceCfa * int64(it.Quantity)
		total += line
		items = append(items, models.OrderItem{
			VendorID:     p.VendorID,
			ProductID:    p.ID,
			ProductName:  p.Name,
			Quantity:     it.Quantity,
			UnitPriceCfa: p.PriceCfa,
			LineTotalCfa: line,
			VendorStatus: models.ItemStatusPending,
			CreatedAt:    now,
		})
	}

	order := &models.Order{
		Number:          s.number(now),
		ClientID:        clientID,
		Status:          models.OrderStatusPending,
		AmountCfa:       total,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		ContactPhone:    strings.TrimSpace(in.ContactPhone),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var payment *models.Payment
	if in.PaymentMethod != nil {
		status := models.PaymentStatusPending
		if in.PaymentMethod.ImmediateSettlement() {
			status = models.PaymentStatusValid
		}
		payment = &models.Payment{
			AmountCfa: total,
			Method:    *in.PaymentMethod,
			Status:    status,
			Reference: in.PaymentReference,
			CreatedAt: now,
		}
	}

	// All-or-nothing: order graph insert plus one conditional decrement per
	// line item, in request order. Any failed decrement aborts everything;
	// the transaction boundary rolls back decrements already applied.
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.OrderItems.BulkCreate(ctx, items); err != nil {
			return err
		}
		if payment != nil {
			payment.OrderID = order.ID
			if err := tx.Payments.Create(ctx, payment); err != nil {
				return err
			}
		}

		for _, it := range items {
			ok, err := tx.Products.DecrementStock(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// A concurrent order consumed the remaining stock between the
				// pre-check and this write.
				current, rerr := tx.Products.GetStocks(ctx, []uuid.UUID{it.ProductID})
				available := 0
				if rerr == nil {
					if row, found := current[it.ProductID]; found {
						available = row.Stock
					}
				}
				return &InsufficientStockError{
					ProductID:   it.ProductID,
					ProductName: it.ProductName,
					Requested:   it.Quantity,
					Available:   available,
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Items = items
	order.Payment = payment

	if s.events != nil {
		if err := s.events.PublishOrderPlaced(ctx, OrderPlacedEvent{
			OrderID:   order.ID,
			Number:    order.Number,
			ClientID:  order.ClientID,
			AmountCfa: order.AmountCfa,
			PlacedAt:  order.CreatedAt,
		}); err != nil {
			s.log.Warn("publish order placed event failed",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	actorID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var ord *models.Order
	if role == RoleAdmin || role == RoleCourier {
		ord, err = s.repo.Orders.GetByID(ctx, id)
	} else {
		ord, err = s.repo.Orders.GetByIDForClient(ctx, id, actorID)
	}
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	actorID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, 0, err
	}
	if role != RoleAdmin {
		f.ClientID = &actorID
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	listPtr, total, err := s.repo.Orders.List(ctx, repository.OrderListFilter{
		ClientID: f.ClientID,
		Status:   f.Status,
		Limit:    f.Limit,
		Offset:   f.Offset,
	})
	if err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, len(listPtr))
	for i, o := range listPtr {
		orders[i] = *o
	}
	return orders, total, nil
}
