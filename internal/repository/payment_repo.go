package repository

import (
	"context"
	"errors"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepo interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)

	// RefundValidByOrder flips a VALID payment to REFUNDED. Returns false if
	// the order has no payment or the payment was never VALID.
	RefundValidByOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
	MarkValid(ctx context.Context, orderID uuid.UUID, reference string) (bool, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepo(db *gorm.DB) PaymentRepo { return &paymentRepo{db: db} }

func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) GetByOrder(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).First(&p, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *paymentRepo) RefundValidByOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", orderID, models.PaymentStatusValid).
		Updates(map[string]any{"status": models.PaymentStatusRefunded, "updated_at": gorm.Expr("now()")})
	return tx.RowsAffected > 0, tx.Error
}

func (r *paymentRepo) MarkValid(ctx context.Context, orderID uuid.UUID, reference string) (bool, error) {
	upd := map[string]any{"status": models.PaymentStatusValid, "updated_at": gorm.Expr("now()")}
	if reference != "" {
		upd["reference"] = reference
	}
	tx := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", orderID, models.PaymentStatusPending).
		Updates(upd)
	return tx.RowsAffected > 0, tx.Error
}
