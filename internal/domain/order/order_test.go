package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submittedItems(t *testing.T) []cart.CartItem {
	t.Helper()
	c, err := cart.NewCart(uuid.New())
	require.NoError(t, err)

	p1 := mustMoney(t, "15.00")
	p2 := mustMoney(t, "25.00")
	require.NoError(t, c.AddItem(uuid.New(), "Widget", p1, 2, c.UserID))
	require.NoError(t, c.AddItem(uuid.New(), "Gadget", p2, 3, c.UserID))

	items, err := c.Submit(c.UserID)
	require.NoError(t, err)
	return items
}

func mustMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyUSDFromString(s)
	require.NoError(t, err)
	return m
}

func testAddress(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress("1 Main St", "Springfield", "IL", "62701")
	require.NoError(t, err)
	return addr
}

func TestNewOrderFromCartItems(t *testing.T) {
	userID := uuid.New()

	t.Run("snapshots items with fresh identities embedding the order ID", func(t *testing.T) {
		items := submittedItems(t)

		o, err := NewOrderFromCartItems(userID, items, testAddress(t), userID)
		require.NoError(t, err)

		require.Len(t, o.Items, 2)
		for i, line := range o.Items {
			assert.NotEqual(t, items[i].ID, line.ID)
			assert.Equal(t, o.ID, line.OrderID)
			assert.Equal(t, items[i].ProductID, line.ProductID)
			assert.Equal(t, items[i].ProductName, line.ProductName)
			assert.Equal(t, items[i].Quantity, line.Quantity)
			assert.True(t, line.UnitPrice.Equal(items[i].UnitPrice))
		}
	})

	t.Run("computes exact total", func(t *testing.T) {
		items := submittedItems(t)

		o, err := NewOrderFromCartItems(userID, items, testAddress(t), userID)
		require.NoError(t, err)

		// 2 x 15.00 + 3 x 25.00
		assert.Equal(t, "105.00", o.TotalMoney().StringFixed(2))
	})

	t.Run("emits OrderCreated", func(t *testing.T) {
		items := submittedItems(t)

		o, err := NewOrderFromCartItems(userID, items, testAddress(t), userID)
		require.NoError(t, err)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*OrderCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, o.ID, event.OrderID)
		assert.Equal(t, AggregateTypeOrder, event.AggregateType())
		assert.Equal(t, 2, event.ItemCount)
	})

	t.Run("fails with no items", func(t *testing.T) {
		_, err := NewOrderFromCartItems(userID, nil, testAddress(t), userID)
		require.Error(t, err)
	})

	t.Run("fails with empty shipping address", func(t *testing.T) {
		items := submittedItems(t)
		_, err := NewOrderFromCartItems(userID, items, valueobject.EmptyAddress(), userID)
		require.Error(t, err)
	})
}
