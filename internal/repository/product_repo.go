package repository

import (
	"context"
	"errors"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductListFilter struct {
	VendorID   *uuid.UUID
	Query      string
	OnlyActive *bool
	Limit      int
	Offset     int
}

// StockRow is the advisory pre-check projection: enough to build a
// descriptive rejection, never the source of truth for the decrement.
type StockRow struct {
	ID    uuid.UUID
	Name  string
	Stock int
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// GetStocks reads current stock for the requested products (fail-fast
	// pre-check before the placement transaction writes anything).
	GetStocks(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]StockRow, error)

	// DecrementStock applies stock = stock - qty only where stock >= qty
	// still holds at write time. Zero rows affected means someone else
	// consumed the remaining stock since the pre-check.
	DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error)

	// AdjustStock moves stock by delta (vendor restock or correction),
	// guarded so the result never goes below zero.
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (bool, error)
	SetStock(ctx context.Context, productID uuid.UUID, stock int) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if f.VendorID != nil {
		q = q.Where("vendor_id = ?", *f.VendorID)
	}
	if f.Query != "" {
		q = q.Where("name ILIKE ?", "%"+f.Query+"%")
	}
	if f.OnlyActive != nil {
		q = q.Where("is_active = ?", *f.OnlyActive)
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

	var list []models.Product
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	return list, total, err
}

func (r *productRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) GetStocks(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]StockRow, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]StockRow{}, nil
	}
	var rows []StockRow
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id", "name", "stock").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]StockRow, len(rows))
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func (r *productRepo) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock = stock - @q,
    updated_at = now()
WHERE id = @pid
  AND stock >= @q
`, map[string]any{
		"pid": productID,
		"q":   qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock = stock + @delta,
    updated_at = now()
WHERE id = @pid
  AND stock + @delta >= 0
`, map[string]any{
		"pid":   productID,
		"delta": delta,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) SetStock(ctx context.Context, productID uuid.UUID, stock int) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", productID).Update("stock", stock).Error
}
