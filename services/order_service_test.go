package services

import (
	"context"
	"testing"
	"time"

	"creativehands_server/database"
	"creativehands_server/structs"
	"creativehands_server/structs/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T) (*OrderService, *database.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewOrderService(newTestLogger(), newTestConfig(), db, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	return svc, db
}

func addToCart(t *testing.T, svc *OrderService, req *structs.AddToCartRequest) int64 {
	t.Helper()
	itemId, err := svc.AddToCart(context.Background(), req)
	require.NoError(t, err)
	require.Greater(t, itemId, int64(0))
	return itemId
}

func loadItem(t *testing.T, db *database.DB, itemId int64) *tables.OrderItem {
	t.Helper()
	item, err := database.Query[tables.OrderItem](db).Where("id", itemId).First(context.Background())
	require.NoError(t, err)
	require.NotNil(t, item)
	return item
}

func TestResolveUnitPrice(t *testing.T) {
	tests := []struct {
		name     string
		unit     float64
		sale     float64
		list     float64
		expected float64
	}{
		{"explicit unit price wins", 10, 0, 20, 10},
		{"sale below list applies", 0, 8, 20, 8},
		{"sale above list is ignored", 0, 25, 20, 20},
		{"list price is the fallback", 0, 0, 20, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveUnitPrice(&structs.AddToCartRequest{
				ProductUnitPrice: tt.unit,
				ProductSalePrice: tt.sale,
				ProductPrice:     tt.list,
			})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAddToCartCreatesCartAndAccumulates(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	first := addToCart(t, svc, &structs.AddToCartRequest{
		UserId:       "tok123",
		ProductId:    7,
		Quantity:     2,
		ProductPrice: 20,
	})

	second, err := svc.AddToCart(ctx, &structs.AddToCartRequest{
		UserId:       "tok123",
		ProductId:    7,
		Quantity:     3,
		ProductPrice: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, first, second, "same product must merge into the existing line")

	item := loadItem(t, db, first)
	assert.Equal(t, float64(5), item.Quantity)
	assert.Equal(t, float64(20), item.UnitPrice)

	count, err := database.Query[tables.OrderItem](db).Where("product_id", int64(7)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	cart, err := svc.GetCart(ctx, "tok123")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, tables.OrderStatusCart, cart.StatusId)
	assert.Equal(t, tables.GuestCustomerId, cart.CustomerId)
	require.Len(t, cart.OrderItems, 1)
}

func TestAddToCartStoresResolvedPrice(t *testing.T) {
	svc, db := newOrderService(t)

	itemId := addToCart(t, svc, &structs.AddToCartRequest{
		UserId:           "tok123",
		ProductId:        3,
		Quantity:         1,
		ProductPrice:     20,
		ProductSalePrice: 8,
	})

	item := loadItem(t, db, itemId)
	assert.Equal(t, float64(8), item.UnitPrice)
}

func TestAddToCartEmptyUserMatchesAnyOpenCart(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	addToCart(t, svc, &structs.AddToCartRequest{UserId: "alice", ProductId: 1, Quantity: 1, ProductPrice: 5})
	addToCart(t, svc, &structs.AddToCartRequest{UserId: "", ProductId: 2, Quantity: 1, ProductPrice: 5})

	count, err := database.Query[tables.Order](db).Where("status_id", tables.OrderStatusCart).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "an empty user id must join the existing open cart")
}

func TestAddToCartVariationLines(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	plain := addToCart(t, svc, &structs.AddToCartRequest{
		UserId: "tok", ProductId: 9, Quantity: 1, ProductPrice: 10,
	})

	// same product with a variation starts a separate line
	varLine := addToCart(t, svc, &structs.AddToCartRequest{
		UserId: "tok", ProductId: 9, ProductVariationId: ptr(int64(42)), Quantity: 1, ProductPrice: 10,
	})
	require.NotEqual(t, plain, varLine)

	// repeating the variation merges into the variation line
	again, err := svc.AddToCart(ctx, &structs.AddToCartRequest{
		UserId: "tok", ProductId: 9, ProductVariationId: ptr(int64(42)), Quantity: 2, ProductPrice: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, varLine, again)
	assert.Equal(t, float64(3), loadItem(t, db, varLine).Quantity)
	assert.Equal(t, float64(1), loadItem(t, db, plain).Quantity)
}

func TestColourSyncSetSemantics(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	itemId := addToCart(t, svc, &structs.AddToCartRequest{
		UserId: "tok", ProductId: 4, Quantity: 1, ProductPrice: 10,
		OrderItemColours: []string{"red", "blue"},
	})

	colours, err := svc.loadItemColours(ctx, itemId)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"red", "blue"}, colours)

	// replace with a different set
	_, err = svc.AddToCart(ctx, &structs.AddToCartRequest{
		UserId: "tok", ProductId: 4, Quantity: 1, ProductPrice: 10,
		OrderItemColours: []string{"blue", "green"},
	})
	require.NoError(t, err)
	colours, err = svc.loadItemColours(ctx, itemId)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"blue", "green"}, colours)

	// nil leaves colours untouched
	_, err = svc.AddToCart(ctx, &structs.AddToCartRequest{
		UserId: "tok", ProductId: 4, Quantity: 1, ProductPrice: 10,
	})
	require.NoError(t, err)
	colours, err = svc.loadItemColours(ctx, itemId)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"blue", "green"}, colours)

	// empty non-nil clears the set
	_, err = svc.AddToCart(ctx, &structs.AddToCartRequest{
		UserId: "tok", ProductId: 4, Quantity: 1, ProductPrice: 10,
		OrderItemColours: []string{},
	})
	require.NoError(t, err)
	colours, err = svc.loadItemColours(ctx, itemId)
	require.NoError(t, err)
	assert.Empty(t, colours)

	// no duplicate rows after repeated syncs
	count, err := database.Query[tables.OrderItemColour](db).Where("order_item_id", itemId).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestEmptyCartPlaceholder(t *testing.T) {
	svc, _ := newOrderService(t)

	cart := svc.EmptyCart("tok")
	assert.Equal(t, int64(0), cart.Id)
	assert.Equal(t, tables.OrderStatusCart, cart.StatusId)
	require.NotNil(t, cart.UserId)
	assert.Equal(t, "tok", *cart.UserId)
	require.NotNil(t, cart.Address)
	assert.Equal(t, "", *cart.Address)
	assert.Empty(t, cart.OrderItems)
}

func TestChangeOrderStatus(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	missing, err := svc.ChangeOrderStatus(ctx, &structs.ChangeOrderStatusRequest{Id: 999, StatusId: tables.OrderStatusSent})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), missing)

	addToCart(t, svc, &structs.AddToCartRequest{UserId: "tok", ProductId: 1, Quantity: 1, ProductPrice: 5})
	order, err := database.Query[tables.Order](db).Where("status_id", tables.OrderStatusCart).First(ctx)
	require.NoError(t, err)
	require.NotNil(t, order)

	updated, err := svc.ChangeOrderStatus(ctx, &structs.ChangeOrderStatusRequest{Id: order.Id, StatusId: tables.OrderStatusPaid})
	require.NoError(t, err)
	assert.Equal(t, order.Id, updated)

	order, err = database.Query[tables.Order](db).Where("id", order.Id).First(ctx)
	require.NoError(t, err)
	assert.Equal(t, tables.OrderStatusPaid, order.StatusId)
}

func TestSendOrder(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	sent, err := svc.SendOrder(ctx, &structs.SendOrderRequest{OrderId: 12345, UserId: "nobody"})
	require.NoError(t, err)
	assert.False(t, sent, "no cart means nothing to send")

	addToCart(t, svc, &structs.AddToCartRequest{UserId: "tok", ProductId: 1, Quantity: 2, ProductPrice: 5})

	sent, err = svc.SendOrder(ctx, &structs.SendOrderRequest{
		UserId:       "tok",
		CustomerName: "Ana",
		CustomerTel:  "070123456",
		Address:      "Main Street 1",
		Notes:        ptr("ring the bell"),
	})
	require.NoError(t, err)
	assert.True(t, sent)

	order, err := database.Query[tables.Order](db).
		Where("status_id", tables.OrderStatusAccepted).
		First(ctx)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Nil(t, order.UserId, "session token is cleared on send")
	require.NotNil(t, order.Notes)
	assert.Equal(t, "ring the bell", *order.Notes)
	assert.NotEqual(t, tables.GuestCustomerId, order.CustomerId)

	customer, err := database.Query[tables.Customer](db).Where("id", order.CustomerId).First(ctx)
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "Ana", customer.Name)
	assert.Equal(t, "070123456", customer.Tel1)

	// the cart is gone
	cart, err := svc.GetCart(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestSaveOrderInsertAndReconcile(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	orderId, err := svc.SaveOrder(ctx, &structs.Order{
		StatusId: tables.OrderStatusAccepted,
		OrderItems: []structs.OrderItem{
			{ProductId: 1, Quantity: 2, UnitPrice: 10, Colours: []string{"red"}},
			{ProductId: 2, Quantity: 1, UnitPrice: 5},
		},
	})
	require.NoError(t, err)
	require.Greater(t, orderId, int64(0))

	items, err := database.Query[tables.OrderItem](db).Where("order_id", orderId).OrderBy("id", database.ASC).All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// update: change first item, drop second via quantity zero, add a third
	updatedId, err := svc.SaveOrder(ctx, &structs.Order{
		Id:       orderId,
		StatusId: tables.OrderStatusPrepared,
		OrderItems: []structs.OrderItem{
			{Id: items[0].Id, ProductId: 1, Quantity: 7, UnitPrice: 12},
			{Id: items[1].Id, ProductId: 2, Quantity: 0, UnitPrice: 5},
			{ProductId: 3, Quantity: 4, UnitPrice: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, orderId, updatedId)

	items, err = database.Query[tables.OrderItem](db).Where("order_id", orderId).OrderBy("id", database.ASC).All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, float64(7), items[0].Quantity)
	assert.Equal(t, float64(12), items[0].UnitPrice)
	assert.Equal(t, int64(3), items[1].ProductId)

	order, err := database.Query[tables.Order](db).Where("id", orderId).First(ctx)
	require.NoError(t, err)
	assert.Equal(t, tables.OrderStatusPrepared, order.StatusId)
}

func TestSaveOrderPrunesOmittedItems(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	orderId, err := svc.SaveOrder(ctx, &structs.Order{
		StatusId: tables.OrderStatusAccepted,
		OrderItems: []structs.OrderItem{
			{ProductId: 1, Quantity: 1, UnitPrice: 1},
			{ProductId: 2, Quantity: 1, UnitPrice: 1, Colours: []string{"red"}},
		},
	})
	require.NoError(t, err)

	items, err := database.Query[tables.OrderItem](db).Where("order_id", orderId).OrderBy("id", database.ASC).All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	pruned := items[1]

	// resubmit with only the first item: the second is pruned with its colours
	_, err = svc.SaveOrder(ctx, &structs.Order{
		Id:       orderId,
		StatusId: tables.OrderStatusAccepted,
		OrderItems: []structs.OrderItem{
			{Id: items[0].Id, ProductId: 1, Quantity: 1, UnitPrice: 1},
		},
	})
	require.NoError(t, err)

	remaining, err := database.Query[tables.OrderItem](db).Where("order_id", orderId).All(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, items[0].Id, remaining[0].Id)

	colourCount, err := database.Query[tables.OrderItemColour](db).Where("order_item_id", pruned.Id).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, colourCount)
}

func TestSaveOrderItem(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	// explicit id that does not resolve
	missing, err := svc.SaveOrderItem(ctx, &structs.SaveOrderItemRequest{Id: 999, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), missing)

	orderId, err := svc.SaveOrder(ctx, &structs.Order{
		StatusId:   tables.OrderStatusAccepted,
		OrderItems: []structs.OrderItem{{ProductId: 5, Quantity: 2, UnitPrice: 3}},
	})
	require.NoError(t, err)

	// merge by (order, product) accumulates quantity and overwrites price
	items, err := database.Query[tables.OrderItem](db).Where("order_id", orderId).All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	mergedId, err := svc.SaveOrderItem(ctx, &structs.SaveOrderItemRequest{
		OrderId: orderId, ProductId: 5, Quantity: 3, UnitPrice: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, items[0].Id, mergedId)
	merged := loadItem(t, db, mergedId)
	assert.Equal(t, float64(5), merged.Quantity)
	assert.Equal(t, float64(4), merged.UnitPrice)

	// unknown product inserts a fresh line
	insertedId, err := svc.SaveOrderItem(ctx, &structs.SaveOrderItemRequest{
		OrderId: orderId, ProductId: 6, Quantity: 1, UnitPrice: 9,
	})
	require.NoError(t, err)
	assert.NotEqual(t, mergedId, insertedId)
}

func TestGetOrders(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	// no criteria matches nothing
	orders, err := svc.GetOrders(ctx, &structs.GetOrdersRequest{})
	require.NoError(t, err)
	assert.Nil(t, orders)

	customer := &tables.Customer{Name: "Ana", Tel1: "070123456"}
	customer, err = database.Query[tables.Customer](db).Insert(ctx, customer)
	require.NoError(t, err)

	firstId, err := svc.SaveOrder(ctx, &structs.Order{
		CustomerId: customer.Id,
		StatusId:   tables.OrderStatusAccepted,
		OrderItems: []structs.OrderItem{{ProductId: 1, Quantity: 1, UnitPrice: 1}},
	})
	require.NoError(t, err)
	secondId, err := svc.SaveOrder(ctx, &structs.Order{
		CustomerId: customer.Id,
		StatusId:   tables.OrderStatusSent,
		OrderItems: []structs.OrderItem{{ProductId: 2, Quantity: 1, UnitPrice: 1}},
	})
	require.NoError(t, err)

	// by status
	orders, err = svc.GetOrders(ctx, &structs.GetOrdersRequest{StatusId: ptr(tables.OrderStatusSent)})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, secondId, orders[0].Id)

	// by customer name probe, newest first
	orders, err = svc.GetOrders(ctx, &structs.GetOrdersRequest{CustomerName: ptr("Ana")})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, secondId, orders[0].Id)
	assert.Equal(t, firstId, orders[1].Id)

	// by order id
	orders, err = svc.GetOrders(ctx, &structs.GetOrdersRequest{OrderId: ptr(firstId)})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, firstId, orders[0].Id)

	// unmatched criterion
	orders, err = svc.GetOrders(ctx, &structs.GetOrdersRequest{CustomerName: ptr("Nobody")})
	require.NoError(t, err)
	assert.Nil(t, orders)
}

func TestMigrateAnonymousCart(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	missing, err := svc.MigrateAnonymousCart(ctx, &structs.MigrateCartRequest{CartToken: "ghost", UserId: "userA"})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), missing)

	addToCart(t, svc, &structs.AddToCartRequest{UserId: "tok123", ProductId: 1, Quantity: 1, ProductPrice: 5})

	orderId, err := svc.MigrateAnonymousCart(ctx, &structs.MigrateCartRequest{CartToken: "tok123", UserId: "userA"})
	require.NoError(t, err)
	require.Greater(t, orderId, int64(0))

	order, err := database.Query[tables.Order](db).Where("id", orderId).First(ctx)
	require.NoError(t, err)
	require.NotNil(t, order.UserId)
	assert.Equal(t, "userA", *order.UserId)

	// the cart now answers to the user id
	cart, err := svc.GetCart(ctx, "userA")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, orderId, cart.Id)
}

func TestDeleteOrderItem(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	deleted, err := svc.DeleteOrderItem(ctx, 999)
	require.NoError(t, err)
	assert.False(t, deleted)

	itemId := addToCart(t, svc, &structs.AddToCartRequest{
		UserId: "tok", ProductId: 1, Quantity: 1, ProductPrice: 5,
		OrderItemColours: []string{"red"},
	})

	deleted, err = svc.DeleteOrderItem(ctx, itemId)
	require.NoError(t, err)
	assert.True(t, deleted)

	count, err := database.Query[tables.OrderItem](db).Where("id", itemId).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	colourCount, err := database.Query[tables.OrderItemColour](db).Where("order_item_id", itemId).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, colourCount)
}

func TestGetOrderByIdAbsent(t *testing.T) {
	svc, _ := newOrderService(t)

	order, err := svc.GetOrderById(context.Background(), 424242)
	require.NoError(t, err)
	assert.Nil(t, order)
}
