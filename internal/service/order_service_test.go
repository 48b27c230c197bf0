package service

import (
	"context"
	"testing"

	"shopd/internal/domain"
	"shopd/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestOrderService() (OrderService, *fakeOrdersRepo, *fakeProductsRepo) {
	orders := newFakeOrdersRepo()
	products := &fakeProductsRepo{byID: map[int64]*domain.Product{
		1: {ID: 1, StoreID: 10, Name: "Smartphone Galaxy Pro", Price: domain.Money(89999)},
		2: {ID: 2, StoreID: 10, Name: "Camiseta Premium", Price: domain.Money(2999)},
		3: {ID: 3, StoreID: 20, Name: "Proteína Whey 2kg", Price: domain.Money(4599)},
	}}
	return NewOrderService(orders, products, zap.NewNop()), orders, products
}

func TestCreateOrderComputesTotalAndItems(t *testing.T) {
	svc, _, _ := newTestOrderService()

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		StoreID: 10,
		Items: []CreateOrderItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	// 899.99 + 2*29.99 = 959.97
	require.Equal(t, domain.Money(95997), order.Total)
	require.Equal(t, domain.OrderPending, order.Status)
	require.Equal(t, domain.PaymentUnpaid, order.PaymentStatus)
}

func TestCreateOrderDefaultsQuantityToOne(t *testing.T) {
	svc, _, _ := newTestOrderService()

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		StoreID: 10,
		Items:   []CreateOrderItem{{ProductID: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, order.Items[0].Quantity)
	require.Equal(t, domain.Money(2999), order.Total)
}

func TestCreateOrderEmptyItems(t *testing.T) {
	svc, _, _ := newTestOrderService()

	_, err := svc.Create(context.Background(), CreateOrderRequest{StoreID: 10})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateOrderRejectsForeignStoreProduct(t *testing.T) {
	svc, orders, _ := newTestOrderService()

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		StoreID: 10,
		Items: []CreateOrderItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 3, Quantity: 1}, // belongs to store 20
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Contains(t, err.Error(), "product 3")
	// Nothing persisted.
	require.Empty(t, orders.byID)
}

func TestCreateOrderIgnoresClientPrice(t *testing.T) {
	// The line item price is snapshotted from the live product; whatever a
	// client claims the price to be never reaches the order.
	svc, _, products := newTestOrderService()

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		StoreID: 10,
		Items:   []CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, products.byID[1].Price, order.Items[0].Price)
	require.Equal(t, products.byID[1].Price, order.Total)
}

func TestCreateOrderSnapshotSurvivesPriceChange(t *testing.T) {
	svc, orders, products := newTestOrderService()

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		StoreID: 10,
		Items:   []CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	products.byID[1].Price = domain.Money(1)

	persisted, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Money(89999), persisted.Items[0].Price)
}

func TestCreateOrderValidatesStatuses(t *testing.T) {
	svc, _, _ := newTestOrderService()

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		StoreID:       10,
		Status:        "bogus",
		PaymentStatus: "also-bogus",
		Items:         []CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
}

func TestExportOneRowPerOrder(t *testing.T) {
	svc, _, _ := newTestOrderService()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), CreateOrderRequest{
			StoreID: 10,
			Items:   []CreateOrderItem{{ProductID: 2, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	f, err := svc.Export(context.Background(), 10, repository.OrderFilters{})
	require.NoError(t, err)
	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 orders
	require.Equal(t, "Order ID", rows[0][0])
}
