package repository

import (
	"context"
	"errors"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemWithVendorContact joins a line item with the owning vendor's
// notification destination, for the fan-out notifier.
type ItemWithVendorContact struct {
	models.OrderItem
	VendorName  string
	VendorEmail string
	VendorPhone string
}

type OrderItemRepo interface {
	BulkCreate(ctx context.Context, items []models.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	ListByOrderWithVendor(ctx context.Context, orderID uuid.UUID) ([]ItemWithVendorContact, error)

	// CountByStatusForVendor breaks the vendor's line items down by
	// fulfilment status (readiness progress, derived at read time).
	CountByStatusForVendor(ctx context.Context, vendorID uuid.UUID) (map[models.ItemStatus]int64, error)

	// UpdateStatusForVendor transitions one line item, filtered on both the
	// owning vendor and the allowed prior statuses. Zero rows affected means
	// the item does not exist, belongs to another vendor, or is not in a
	// transitionable state; callers treat all three as not found.
	UpdateStatusForVendor(ctx context.Context, itemID, vendorID uuid.UUID, from []models.ItemStatus, to models.ItemStatus, reason *string) (bool, error)
}

type orderItemRepo struct{ db *gorm.DB }

func NewOrderItemRepo(db *gorm.DB) OrderItemRepo { return &orderItemRepo{db: db} }

func (r *orderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *orderItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *orderItemRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var list []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *orderItemRepo) ListByOrderWithVendor(ctx context.Context, orderID uuid.UUID) ([]ItemWithVendorContact, error) {
	var rows []ItemWithVendorContact
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("order_items.*, v.name AS vendor_name, v.contact_email AS vendor_email, v.contact_phone AS vendor_phone").
		Joins("JOIN vendors v ON v.id = order_items.vendor_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *orderItemRepo) CountByStatusForVendor(ctx context.Context, vendorID uuid.UUID) (map[models.ItemStatus]int64, error) {
	var rows []struct {
		VendorStatus models.ItemStatus
		Cnt          int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("vendor_status, COUNT(*) AS cnt").
		Where("vendor_id = ?", vendorID).
		Group("vendor_status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[models.ItemStatus]int64, len(rows))
	for _, row := range rows {
		out[row.VendorStatus] = row.Cnt
	}
	return out, nil
}

func (r *orderItemRepo) UpdateStatusForVendor(ctx context.Context, itemID, vendorID uuid.UUID, from []models.ItemStatus, to models.ItemStatus, reason *string) (bool, error) {
	upd := map[string]any{"vendor_status": to}
	if reason != nil {
		upd["cancel_reason"] = reason
	}
	tx := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ? AND vendor_id = ? AND vendor_status IN ?", itemID, vendorID, from).
		Updates(upd)
	return tx.RowsAffected > 0, tx.Error
}
