package service_test

import (
	"context"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/repository"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/service"

	"github.com/google/uuid"
)

// Func-field mocks for every repository dependency.

type MockVendorRepo struct {
	CreateFunc        func(ctx context.Context, v *models.Vendor) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	BatchGetByIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]models.Vendor, error)
}

func (m *MockVendorRepo) Create(ctx context.Context, v *models.Vendor) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return nil
}

func (m *MockVendorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockVendorRepo) BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Vendor, error) {
	if m.BatchGetByIDsFunc != nil {
		return m.BatchGetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

type MockProductRepo struct {
	CreateFunc         func(ctx context.Context, p *models.Product) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	BatchGetByIDsFunc  func(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	ListFunc           func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
	UpdateFieldsFunc   func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) (bool, error)
	GetStocksFunc      func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]repository.StockRow, error)
	DecrementStockFunc func(ctx context.Context, productID uuid.UUID, qty int) (bool, error)
	AdjustStockFunc    func(ctx context.Context, productID uuid.UUID, delta int) (bool, error)
	SetStockFunc       func(ctx context.Context, productID uuid.UUID, stock int) error
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if m.BatchGetByIDsFunc != nil {
		return m.BatchGetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockProductRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockProductRepo) GetStocks(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]repository.StockRow, error) {
	if m.GetStocksFunc != nil {
		return m.GetStocksFunc(ctx, ids)
	}
	return map[uuid.UUID]repository.StockRow{}, nil
}

func (m *MockProductRepo) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, productID, qty)
	}
	return false, nil
}

func (m *MockProductRepo) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (bool, error) {
	if m.AdjustStockFunc != nil {
		return m.AdjustStockFunc(ctx, productID, delta)
	}
	return false, nil
}

func (m *MockProductRepo) SetStock(ctx context.Context, productID uuid.UUID, stock int) error {
	if m.SetStockFunc != nil {
		return m.SetStockFunc(ctx, productID, stock)
	}
	return nil
}

type MockOrderRepo struct {
	CreateFunc                     func(ctx context.Context, o *models.Order) error
	GetByIDFunc                    func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForClientFunc           func(ctx context.Context, id, clientID uuid.UUID) (*models.Order, error)
	UpdateStatusFunc               func(ctx context.Context, id uuid.UUID, status models.OrderStatus, reason *string) error
	ListFunc                       func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error)
	ExistsFunc                     func(ctx context.Context, id uuid.UUID) (bool, error)
	CountTouchingVendorFunc        func(ctx context.Context, vendorID uuid.UUID) (int64, error)
	RecognizedRevenueForVendorFunc func(ctx context.Context, vendorID uuid.UUID) (int64, error)
	BestSellersForVendorFunc       func(ctx context.Context, vendorID uuid.UUID, limit int) ([]repository.BestSeller, error)
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByIDForClient(ctx context.Context, id, clientID uuid.UUID) (*models.Order, error) {
	if m.GetByIDForClientFunc != nil {
		return m.GetByIDForClientFunc(ctx, id, clientID)
	}
	return nil, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, reason *string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, reason)
	}
	return nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockOrderRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockOrderRepo) CountTouchingVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	if m.CountTouchingVendorFunc != nil {
		return m.CountTouchingVendorFunc(ctx, vendorID)
	}
	return 0, nil
}

func (m *MockOrderRepo) RecognizedRevenueForVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	if m.RecognizedRevenueForVendorFunc != nil {
		return m.RecognizedRevenueForVendorFunc(ctx, vendorID)
	}
	return 0, nil
}

func (m *MockOrderRepo) BestSellersForVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]repository.BestSeller, error) {
	if m.BestSellersForVendorFunc != nil {
		return m.BestSellersForVendorFunc(ctx, vendorID, limit)
	}
	return nil, nil
}

type MockOrderItemRepo struct {
	BulkCreateFunc             func(ctx context.Context, items []models.OrderItem) error
	GetByIDFunc                func(ctx context.Context, id uuid.UUID) (*models.OrderItem, error)
	ListByOrderFunc            func(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	ListByOrderWithVendorFunc  func(ctx context.Context, orderID uuid.UUID) ([]repository.ItemWithVendorContact, error)
	CountByStatusForVendorFunc func(ctx context.Context, vendorID uuid.UUID) (map[models.ItemStatus]int64, error)
	UpdateStatusForVendorFunc  func(ctx context.Context, itemID, vendorID uuid.UUID, from []models.ItemStatus, to models.ItemStatus, reason *string) (bool, error)
}

func (m *MockOrderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, items)
	}
	return nil
}

func (m *MockOrderItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderItemRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	if m.ListByOrderFunc != nil {
		return m.ListByOrderFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockOrderItemRepo) ListByOrderWithVendor(ctx context.Context, orderID uuid.UUID) ([]repository.ItemWithVendorContact, error) {
	if m.ListByOrderWithVendorFunc != nil {
		return m.ListByOrderWithVendorFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockOrderItemRepo) CountByStatusForVendor(ctx context.Context, vendorID uuid.UUID) (map[models.ItemStatus]int64, error) {
	if m.CountByStatusForVendorFunc != nil {
		return m.CountByStatusForVendorFunc(ctx, vendorID)
	}
	return map[models.ItemStatus]int64{}, nil
}

func (m *MockOrderItemRepo) UpdateStatusForVendor(ctx context.Context, itemID, vendorID uuid.UUID, from []models.ItemStatus, to models.ItemStatus, reason *string) (bool, error) {
	if m.UpdateStatusForVendorFunc != nil {
		return m.UpdateStatusForVendorFunc(ctx, itemID, vendorID, from, to, reason)
	}
	return false, nil
}

type MockPaymentRepo struct {
	CreateFunc             func(ctx context.Context, p *models.Payment) error
	GetByOrderFunc         func(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)
	RefundValidByOrderFunc func(ctx context.Context, orderID uuid.UUID) (bool, error)
	MarkValidFunc          func(ctx context.Context, orderID uuid.UUID, reference string) (bool, error)
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockPaymentRepo) GetByOrder(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	if m.GetByOrderFunc != nil {
		return m.GetByOrderFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockPaymentRepo) RefundValidByOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	if m.RefundValidByOrderFunc != nil {
		return m.RefundValidByOrderFunc(ctx, orderID)
	}
	return false, nil
}

func (m *MockPaymentRepo) MarkValid(ctx context.Context, orderID uuid.UUID, reference string) (bool, error) {
	if m.MarkValidFunc != nil {
		return m.MarkValidFunc(ctx, orderID, reference)
	}
	return false, nil
}

// MockEventBus records published events.
type MockEventBus struct {
	Placed         []service.OrderPlacedEvent
	Ready          []service.ItemReadyEvent
	ItemCancelled  []service.ItemCancelledEvent
	OrderCancelled []service.OrderCancelledEvent
	Err            error
}

func (m *MockEventBus) PublishOrderPlaced(ctx context.Context, e service.OrderPlacedEvent) error {
	m.Placed = append(m.Placed, e)
	return m.Err
}

func (m *MockEventBus) PublishItemReady(ctx context.Context, e service.ItemReadyEvent) error {
	m.Ready = append(m.Ready, e)
	return m.Err
}

func (m *MockEventBus) PublishItemCancelled(ctx context.Context, e service.ItemCancelledEvent) error {
	m.ItemCancelled = append(m.ItemCancelled, e)
	return m.Err
}

func (m *MockEventBus) PublishOrderCancelled(ctx context.Context, e service.OrderCancelledEvent) error {
	m.OrderCancelled = append(m.OrderCancelled, e)
	return m.Err
}

func mockRepo() *repository.Repository {
	return &repository.Repository{
		Vendors:    &MockVendorRepo{},
		Products:   &MockProductRepo{},
		Orders:     &MockOrderRepo{},
		OrderItems: &MockOrderItemRepo{},
		Payments:   &MockPaymentRepo{},
	}
}

func authedCtx(id uuid.UUID, role service.Role) context.Context {
	ctx := service.WithActorID(context.Background(), id)
	return service.WithRole(ctx, role)
}
