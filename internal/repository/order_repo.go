package repository

import (
	"context"
	"errors"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderListFilter struct {
	ClientID *uuid.UUID
	Status   *models.OrderStatus
	Limit    int
	Offset   int
}

// BestSeller is one row of the vendor best-sellers ranking.
type BestSeller struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	TotalSold   int64     `json:"total_sold"`
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForClient(ctx context.Context, id, clientID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, reason *string) error
	List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Vendor-scoped aggregates, all derived at read time.
	CountTouchingVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)
	RecognizedRevenueForVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)
	BestSellersForVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]BestSeller, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items", "Payment").Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("Payment").First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByIDForClient(ctx context.Context, id, clientID uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("Payment").
		First(&ord, "id = ? AND client_id = ?", id, clientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, reason *string) error {
	upd := map[string]any{"status": status}
	if reason != nil {
		upd["cancel_reason"] = reason
	}
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(upd).Error
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []*models.Order
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).
		Preload("Items").Preload("Payment").Find(&list).Error
	return list, total, err
}

func (r *orderRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}

func (r *orderRepo) CountTouchingVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id IN (?)", r.db.Model(&models.OrderItem{}).Select("order_id").Where("vendor_id = ?", vendorID)).
		Count(&cnt).Error
	return cnt, err
}

// RecognizedRevenueForVendor sums the FULL amount of every VALID-paid order
// containing at least one of the vendor's line items. For multi-vendor
// orders this counts the whole order per touching vendor; kept as the
// established reporting behavior.
func (r *orderRepo) RecognizedRevenueForVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).Raw(`
SELECT SUM(o.amount_cfa)
FROM orders o
JOIN payments p ON p.order_id = o.id AND p.status = 'VALID'
WHERE o.id IN (SELECT order_id FROM order_items WHERE vendor_id = @vid)
`, map[string]any{"vid": vendorID}).Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *orderRepo) BestSellersForVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]BestSeller, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []BestSeller
	err := r.db.WithContext(ctx).Raw(`
SELECT oi.product_id AS product_id,
       oi.product_name AS product_name,
       SUM(oi.quantity) AS total_sold
FROM order_items oi
WHERE oi.vendor_id = @vid
  AND oi.vendor_status <> 'CANCELLED'
GROUP BY oi.product_id, oi.product_name
ORDER BY total_sold DESC
LIMIT @lim
`, map[string]any{"vid": vendorID, "lim": limit}).Scan(&rows).Error
	return rows, err
}
