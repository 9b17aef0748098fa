package store_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/store"
	"github.com/spec-kit/catalog-service/pkg/util"
)

func newOrderStore() *store.OrderStore {
	return store.NewOrderStore(store.Deps{})
}

func TestCreateOrder(t *testing.T) {
	orders := newOrderStore()

	order, err := orders.CreateOrder(store.OrderCreateInput{
		OrderNumber:     "ORD-001",
		CustomerID:      7,
		ShippingAddress: "1 Main St",
		BillingAddress:  "2 Billing Ave",
	})
	require.NoError(t, err)

	assert.EqualValues(t, 1, order.ID)
	assert.Equal(t, "ORD-001", order.OrderNumber)
	assert.EqualValues(t, 7, order.CustomerID)
	assert.True(t, order.IsPending())
	assert.Equal(t, "1 Main St", order.ShippingAddress)

	found, ok := orders.FindByOrderNumber("ord-001")
	require.True(t, ok)
	assert.Same(t, order, found)
}

func TestCreateOrderGeneratesNumberWhenEmpty(t *testing.T) {
	orders := newOrderStore()

	order, err := orders.CreateOrder(store.OrderCreateInput{CustomerID: 7})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	found, ok := orders.FindByOrderNumber(order.OrderNumber)
	require.True(t, ok)
	assert.Same(t, order, found)
}

func TestCreateOrderRejectsDuplicateNumberCaseInsensitively(t *testing.T) {
	orders := newOrderStore()
	_, err := orders.CreateOrder(store.OrderCreateInput{OrderNumber: "ORD-001", CustomerID: 7})
	require.NoError(t, err)

	_, err = orders.CreateOrder(store.OrderCreateInput{OrderNumber: "ord-001", CustomerID: 8})
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeDuplicateKey))
	assert.Equal(t, 1, orders.Count())
}

func TestAddAndRemoveItems(t *testing.T) {
	orders := newOrderStore()
	order, err := orders.CreateOrder(store.OrderCreateInput{OrderNumber: "ORD-002", CustomerID: 7})
	require.NoError(t, err)

	keyboard := domain.NewOrderLine(1, "Keyboard", "KB-001", decimal.RequireFromString("89.90"), 2)
	mouse := domain.NewOrderLine(2, "Mouse", "MS-001", decimal.RequireFromString("24.95"), 1)

	updated, err := orders.AddItem(order.ID, &keyboard)
	require.NoError(t, err)
	_, err = orders.AddItem(order.ID, &mouse)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.ItemCount())
	assert.True(t, updated.Subtotal().Equal(decimal.RequireFromString("204.75")))

	_, err = orders.RemoveItem(order.ID, mouse)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ItemCount())
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("179.80")))

	_, err = orders.AddItem(999, &keyboard)
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeNotFound))
}

func TestSetCharges(t *testing.T) {
	orders := newOrderStore()
	order, err := orders.CreateOrder(store.OrderCreateInput{OrderNumber: "ORD-003", CustomerID: 7})
	require.NoError(t, err)

	line := domain.NewOrderLine(1, "Keyboard", "KB-001", decimal.RequireFromString("100.00"), 1)
	_, err = orders.AddItem(order.ID, &line)
	require.NoError(t, err)

	updated, err := orders.SetCharges(order.ID,
		decimal.RequireFromString("8.00"), decimal.RequireFromString("4.99"))
	require.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("112.99")))

	_, err = orders.SetCharges(order.ID, decimal.RequireFromString("-1"), decimal.Zero)
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeInvalidField))
	assert.True(t, updated.TaxAmount.Equal(decimal.RequireFromString("8.00")),
		"failed charge writes must not mutate the order")
}

func TestStatusOperations(t *testing.T) {
	orders := newOrderStore()
	order, err := orders.CreateOrder(store.OrderCreateInput{OrderNumber: "ORD-004", CustomerID: 7})
	require.NoError(t, err)

	updated, err := orders.Confirm(order.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsConfirmed())

	updated, err = orders.Ship(order.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsShipped())
	require.NotNil(t, updated.ShippedDate)

	updated, err = orders.Deliver(order.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsDelivered())
	require.NotNil(t, updated.DeliveredDate)

	_, err = orders.Confirm(999)
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeNotFound))
}

func TestListingsByStatusAndCustomer(t *testing.T) {
	orders := newOrderStore()

	first, err := orders.CreateOrder(store.OrderCreateInput{OrderNumber: "ORD-005", CustomerID: 7})
	require.NoError(t, err)
	_, err = orders.CreateOrder(store.OrderCreateInput{OrderNumber: "ORD-006", CustomerID: 7})
	require.NoError(t, err)
	third, err := orders.CreateOrder(store.OrderCreateInput{OrderNumber: "ORD-007", CustomerID: 8})
	require.NoError(t, err)

	_, err = orders.Confirm(first.ID)
	require.NoError(t, err)

	confirmed := orders.OrdersByStatus(domain.OrderStatusConfirmed)
	require.Len(t, confirmed, 1)
	assert.Same(t, first, confirmed[0])

	assert.Len(t, orders.OrdersByStatus(domain.OrderStatusPending), 2)
	assert.Len(t, orders.OrdersByCustomer(7), 2)

	byCustomer := orders.OrdersByCustomer(8)
	require.Len(t, byCustomer, 1)
	assert.Same(t, third, byCustomer[0])
	assert.Equal(t, 3, orders.Count())
}
