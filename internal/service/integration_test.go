package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/migrate"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/repository"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/service"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRepo(t *testing.T) *repository.Repository {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	require.NoError(t, migrate.MigrateMarketplaceDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()))
	return repository.New(db)
}

func mustVendor(t *testing.T, repo *repository.Repository, name string) *models.Vendor {
	t.Helper()
	v := &models.Vendor{Name: name, ContactEmail: name + "@gie.sn"}
	require.NoError(t, repo.Vendors.Create(context.Background(), v))
	return v
}

func mustProduct(t *testing.T, repo *repository.Repository, vendorID uuid.UUID, name string, price int64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{VendorID: vendorID, Name: name, PriceCfa: price, Stock: stock, IsActive: true}
	require.NoError(t, repo.Products.Create(context.Background(), p))
	return p
}

func TestPlaceOrder_FullFlow(t *testing.T) {
	repo := setupRepo(t)
	bus := &MockEventBus{}
	svc := service.NewOrderService(repo, bus, zap.NewNop())

	gieA := mustVendor(t, repo, "gie-ndem")
	gieB := mustVendor(t, repo, "gie-takku")
	pA := mustProduct(t, repo, gieA.ID, "Bissap 1L", 1500, 10)
	pB := mustProduct(t, repo, gieB.ID, "Miel 500g", 3000, 4)

	clientID := uuid.New()
	ctx := authedCtx(clientID, service.RoleClient)

	method := models.PaymentMethodWave
	ord, err := svc.PlaceOrder(ctx, service.PlaceOrderInput{
		Items: []service.LineItemInput{
			{ProductID: pA.ID, Quantity: 2},
			{ProductID: pB.ID, Quantity: 1},
		},
		DeliveryAddress:  "Rue 10, Médina, Dakar",
		ContactPhone:     "+221770001122",
		PaymentMethod:    &method,
		PaymentReference: "WAVE-TX-42",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, ord.ID)
	require.Contains(t, ord.Number, "CMD-")
	require.EqualValues(t, 2*1500+3000, ord.AmountCfa)
	require.Len(t, ord.Items, 2)

	// catalog prices were snapshotted per line
	for _, it := range ord.Items {
		switch it.ProductID {
		case pA.ID:
			require.EqualValues(t, 1500, it.UnitPriceCfa)
			require.Equal(t, gieA.ID, it.VendorID)
		case pB.ID:
			require.EqualValues(t, 3000, it.UnitPriceCfa)
			require.Equal(t, gieB.ID, it.VendorID)
		}
		require.Equal(t, models.ItemStatusPending, it.VendorStatus)
	}

	// immediate settlement method starts VALID
	pay, err := repo.Payments.GetByOrder(context.Background(), ord.ID)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusValid, pay.Status)
	require.EqualValues(t, ord.AmountCfa, pay.AmountCfa)

	// stock was decremented exactly once per line
	gotA, _ := repo.Products.GetByID(context.Background(), pA.ID)
	gotB, _ := repo.Products.GetByID(context.Background(), pB.ID)
	require.Equal(t, 8, gotA.Stock)
	require.Equal(t, 3, gotB.Stock)

	require.Len(t, bus.Placed, 1)
	require.Equal(t, ord.ID, bus.Placed[0].OrderID)
}

func TestPlaceOrder_InsufficientStockRollsBackEverything(t *testing.T) {
	repo := setupRepo(t)
	svc := service.NewOrderService(repo, nil, zap.NewNop())

	gie := mustVendor(t, repo, "gie-sope")
	ok := mustProduct(t, repo, gie.ID, "Savon", 500, 10)
	short := mustProduct(t, repo, gie.ID, "Karité", 2500, 10)

	ctx := authedCtx(uuid.New(), service.RoleClient)

	_, err := svc.PlaceOrder(ctx, service.PlaceOrderInput{
		Items: []service.LineItemInput{
			{ProductID: ok.ID, Quantity: 2},
			{ProductID: short.ID, Quantity: 11},
		},
		DeliveryAddress: "Pikine, Dakar",
		ContactPhone:    "+221780000000",
	})
	var ise *service.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	require.Equal(t, short.ID, ise.ProductID)

	// nothing was written
	gotOK, _ := repo.Products.GetByID(ctx, ok.ID)
	require.Equal(t, 10, gotOK.Stock)
	_, total, err := repo.Orders.List(ctx, repository.OrderListFilter{Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 0, total)
}

func TestPlaceOrder_ConcurrentContention(t *testing.T) {
	repo := setupRepo(t)
	svc := service.NewOrderService(repo, nil, zap.NewNop())

	gie := mustVendor(t, repo, "gie-race")
	p := mustProduct(t, repo, gie.ID, "Confiture mangue", 2000, 3)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := authedCtx(uuid.New(), service.RoleClient)
			_, errs[i] = svc.PlaceOrder(ctx, service.PlaceOrderInput{
				Items:           []service.LineItemInput{{ProductID: p.ID, Quantity: 1}},
				DeliveryAddress: "Thiès",
				ContactPhone:    "+221770000001",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var ise *service.InsufficientStockError
		require.ErrorAs(t, err, &ise, "losers must fail with the stock error")
	}
	require.Equal(t, 3, succeeded)

	got, _ := repo.Products.GetByID(context.Background(), p.ID)
	require.Equal(t, 0, got.Stock)

	_, total, err := repo.Orders.List(context.Background(), repository.OrderListFilter{Limit: 20})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
}

func TestUpdateOrderStatus_CancelRefundsValidPayment(t *testing.T) {
	repo := setupRepo(t)
	bus := &MockEventBus{}
	orders := service.NewOrderService(repo, bus, zap.NewNop())
	lifecycle := service.NewLifecycleService(repo, bus, nil, time.Minute, zap.NewNop())

	gie := mustVendor(t, repo, "gie-cancel")
	p := mustProduct(t, repo, gie.ID, "Arachide", 800, 10)

	clientID := uuid.New()
	method := models.PaymentMethodOrangeMoney
	ord, err := orders.PlaceOrder(authedCtx(clientID, service.RoleClient), service.PlaceOrderInput{
		Items:           []service.LineItemInput{{ProductID: p.ID, Quantity: 5}},
		DeliveryAddress: "Kaolack",
		ContactPhone:    "+221770002233",
		PaymentMethod:   &method,
	})
	require.NoError(t, err)

	reason := "client injoignable"
	res, err := lifecycle.UpdateOrderStatus(authedCtx(uuid.New(), service.RoleAdmin), ord.ID, models.OrderStatusCancelled, &reason)
	require.NoError(t, err)
	require.True(t, res.Refunded)
	require.EqualValues(t, ord.AmountCfa, res.RefundedCfa)
	require.Equal(t, models.OrderStatusCancelled, res.Order.Status)
	require.NotNil(t, res.Order.CancelReason)
	require.Equal(t, reason, *res.Order.CancelReason)

	pay, err := repo.Payments.GetByOrder(context.Background(), ord.ID)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusRefunded, pay.Status)

	require.Len(t, bus.OrderCancelled, 1)
	require.EqualValues(t, ord.AmountCfa, bus.OrderCancelled[0].RefundedCfa)

	// a second cancellation is refused
	_, err = lifecycle.UpdateOrderStatus(authedCtx(uuid.New(), service.RoleAdmin), ord.ID, models.OrderStatusCancelled, &reason)
	require.ErrorIs(t, err, service.ErrAlreadyCancelled)
}

func TestVendorConfirmsOrderTouchingThem(t *testing.T) {
	repo := setupRepo(t)
	orders := service.NewOrderService(repo, nil, zap.NewNop())
	lifecycle := service.NewLifecycleService(repo, nil, nil, time.Minute, zap.NewNop())

	gie := mustVendor(t, repo, "gie-confirm")
	p := mustProduct(t, repo, gie.ID, "Couscous de mil", 2500, 10)

	ord, err := orders.PlaceOrder(authedCtx(uuid.New(), service.RoleClient), service.PlaceOrderInput{
		Items:           []service.LineItemInput{{ProductID: p.ID, Quantity: 1}},
		DeliveryAddress: "Saint-Louis",
		ContactPhone:    "+221770003344",
	})
	require.NoError(t, err)

	res, err := lifecycle.UpdateOrderStatus(authedCtx(gie.ID, service.RoleVendor), ord.ID, models.OrderStatusConfirmed, nil)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusConfirmed, res.Order.Status)
	require.False(t, res.Refunded)
}
