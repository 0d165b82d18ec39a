package repository

import (
	"context"
	"errors"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorRepo interface {
	Create(ctx context.Context, v *models.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Vendor, error)
}

type vendorRepo struct{ db *gorm.DB }

func NewVendorRepo(db *gorm.DB) VendorRepo { return &vendorRepo{db: db} }

func (r *vendorRepo) Create(ctx context.Context, v *models.Vendor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vendorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var v models.Vendor
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *vendorRepo) BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Vendor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Vendor
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}
