package service

import (
	"context"
	"strings"
	"time"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/repository"

	"github.com/google/uuid"
)

type ProductInput struct {
	VendorID    uuid.UUID
	Name        string
	Description string
	PriceCfa    int64
	Stock       int
	IsActive    bool
}

type ProductPatch struct {
	Name        *string
	Description *string
	PriceCfa    *int64
	IsActive    *bool
}

type ProductListFilter struct {
	VendorID   *uuid.UUID
	Query      string
	OnlyActive *bool
	Limit      int
	Offset     int
}

type CatalogService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, patch ProductPatch) (*models.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	// AdjustStock restocks (positive delta) or corrects (negative delta),
	// never below zero. Order placement is the only other stock writer and
	// only ever decrements.
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (*models.Product, error)
}

type catalogService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewCatalogService(repo *repository.Repository) CatalogService {
	return &catalogService{repo: repo, now: time.Now}
}

// ownedProduct loads a product and checks the actor may manage it: admins
// manage everything, vendors only their own rows.
func (s *catalogService) ownedProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	actorID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ProductNotFoundError{ProductID: productID}
	}
	if role != RoleAdmin && !(role == RoleVendor && p.VendorID == actorID) {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	actorID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if role != RoleVendor && role != RoleAdmin {
		return nil, ErrForbidden
	}
	if in.VendorID == uuid.Nil {
		in.VendorID = actorID
	}
	if role == RoleVendor && in.VendorID != actorID {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if in.PriceCfa <= 0 {
		return nil, ErrPriceInvalid
	}
	if in.Stock < 0 {
		return nil, ErrQuantityInvalid
	}

	v, err := s.repo.Vendors.GetByID(ctx, in.VendorID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVendorNotFound
	}

	now := s.now()
	p := &models.Product{
		VendorID:    in.VendorID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		PriceCfa:    in.PriceCfa,
		Stock:       in.Stock,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, productID uuid.UUID, patch ProductPatch) (*models.Product, error) {
	p, err := s.ownedProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		fields["name"] = name
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.PriceCfa != nil {
		if *patch.PriceCfa <= 0 {
			return nil, ErrPriceInvalid
		}
		fields["price_cfa"] = *patch.PriceCfa
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if len(fields) == 0 {
		return p, nil
	}
	fields["updated_at"] = s.now()

	if err := s.repo.Products.UpdateFields(ctx, productID, fields); err != nil {
		return nil, err
	}
	return s.repo.Products.GetByID(ctx, productID)
}

func (s *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ProductNotFoundError{ProductID: productID}
	}
	return p, nil
}

func (s *catalogService) ListProducts(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.Products.List(ctx, repository.ProductListFilter{
		VendorID:   f.VendorID,
		Query:      f.Query,
		OnlyActive: f.OnlyActive,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
}

func (s *catalogService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.ownedProduct(ctx, productID); err != nil {
		return err
	}
	ok, err := s.repo.Products.Delete(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return &ProductNotFoundError{ProductID: productID}
	}
	return nil
}

func (s *catalogService) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (*models.Product, error) {
	p, err := s.ownedProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.Products.AdjustStock(ctx, productID, delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &InsufficientStockError{
			ProductID:   productID,
			ProductName: p.Name,
			Requested:   -delta,
			Available:   p.Stock,
		}
	}
	return s.repo.Products.GetByID(ctx, productID)
}
