package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyUSDFromString(s)
	require.NoError(t, err)
	return m
}

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	c, err := NewCart(uuid.New())
	require.NoError(t, err)
	return c
}

func TestNewCart(t *testing.T) {
	t.Run("creates empty cart for user", func(t *testing.T) {
		userID := uuid.New()
		c, err := NewCart(userID)
		require.NoError(t, err)

		assert.Equal(t, userID, c.UserID)
		assert.True(t, c.IsEmpty())
		assert.NotEmpty(t, c.ID)
	})

	t.Run("fails with nil user", func(t *testing.T) {
		_, err := NewCart(uuid.Nil)
		require.Error(t, err)
	})
}

func TestCart_AddItem(t *testing.T) {
	actorID := uuid.New()

	t.Run("appends a new line item with fresh identity", func(t *testing.T) {
		c := newTestCart(t)
		productID := uuid.New()

		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "10.00"), 3, actorID))

		require.Len(t, c.Items, 1)
		item := c.Items[0]
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, c.ID, item.CartID)
		assert.Equal(t, productID, item.ProductID)
		assert.Equal(t, "Widget", item.ProductName)
		assert.Equal(t, int64(3), item.Quantity)
		assert.True(t, item.UnitPriceMoney().Equals(mustMoney(t, "10.00")))
	})

	t.Run("merges duplicate additions by summing quantity", func(t *testing.T) {
		c := newTestCart(t)
		productID := uuid.New()

		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "10.00"), 3, actorID))
		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "10.00"), 4, actorID))

		require.Len(t, c.Items, 1)
		assert.Equal(t, int64(7), c.Items[0].Quantity)
	})

	t.Run("emits CartItemAdded with the added quantity, not the merged total", func(t *testing.T) {
		c := newTestCart(t)
		productID := uuid.New()

		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "10.00"), 3, actorID))
		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "10.00"), 4, actorID))

		events := c.GetDomainEvents()
		require.Len(t, events, 2)

		second, ok := events[1].(*CartItemAddedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(4), second.QuantityAdded)
		assert.Equal(t, c.ID, second.AggregateID())
		assert.Equal(t, AggregateTypeCart, second.AggregateType())
	})

	t.Run("keeps the original price snapshot on merge", func(t *testing.T) {
		c := newTestCart(t)
		productID := uuid.New()

		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "10.00"), 1, actorID))
		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "12.00"), 1, actorID))

		assert.True(t, c.Items[0].UnitPriceMoney().Equals(mustMoney(t, "10.00")))
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		c := newTestCart(t)

		err := c.AddItem(uuid.New(), "Widget", mustMoney(t, "10.00"), 0, actorID)
		require.Error(t, err)

		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "quantity", verr.Field)
		assert.Empty(t, c.Items)
	})
}

func TestCart_UpdateItemQuantity(t *testing.T) {
	actorID := uuid.New()

	t.Run("returns positive delta when increasing", func(t *testing.T) {
		c := newTestCart(t)
		productID := uuid.New()
		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "10.00"), 5, actorID))

		delta, err := c.UpdateItemQuantity(productID, 8, actorID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), delta)
		assert.Equal(t, int64(8), c.Items[0].Quantity)
	})

	t.Run("returns negative delta when decreasing", func(t *testing.T) {
		c := newTestCart(t)
		productID := uuid.New()
		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "10.00"), 25, actorID))

		delta, err := c.UpdateItemQuantity(productID, 15, actorID)
		require.NoError(t, err)
		assert.Equal(t, int64(-10), delta)
	})

	t.Run("returns zero delta when unchanged", func(t *testing.T) {
		c := newTestCart(t)
		productID := uuid.New()
		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "10.00"), 5, actorID))

		delta, err := c.UpdateItemQuantity(productID, 5, actorID)
		require.NoError(t, err)
		assert.Zero(t, delta)
	})

	t.Run("emits CartItemQuantityUpdated with old and new quantities", func(t *testing.T) {
		c := newTestCart(t)
		productID := uuid.New()
		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "10.00"), 5, actorID))
		c.ClearDomainEvents()

		_, err := c.UpdateItemQuantity(productID, 8, actorID)
		require.NoError(t, err)

		events := c.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*CartItemQuantityUpdatedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(5), event.OldQuantity)
		assert.Equal(t, int64(8), event.NewQuantity)
	})

	t.Run("fails for missing item", func(t *testing.T) {
		c := newTestCart(t)

		_, err := c.UpdateItemQuantity(uuid.New(), 5, actorID)
		require.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("rejects zero quantity instead of removing", func(t *testing.T) {
		c := newTestCart(t)
		productID := uuid.New()
		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "10.00"), 5, actorID))

		_, err := c.UpdateItemQuantity(productID, 0, actorID)
		require.Error(t, err)
		assert.Equal(t, int64(5), c.Items[0].Quantity)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	actorID := uuid.New()

	t.Run("removes the line and returns it", func(t *testing.T) {
		c := newTestCart(t)
		productID := uuid.New()
		require.NoError(t, c.AddItem(productID, "Widget", mustMoney(t, "10.00"), 5, actorID))
		c.ClearDomainEvents()

		removed, err := c.RemoveItem(productID, actorID)
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, int64(5), removed.Quantity)
		assert.Empty(t, c.Items)

		events := c.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*CartItemRemovedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(5), event.QuantityRemoved)
	})

	t.Run("fails for missing item", func(t *testing.T) {
		c := newTestCart(t)

		_, err := c.RemoveItem(uuid.New(), actorID)
		require.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("leaves other lines untouched", func(t *testing.T) {
		c := newTestCart(t)
		p1 := uuid.New()
		p2 := uuid.New()
		require.NoError(t, c.AddItem(p1, "Widget", mustMoney(t, "10.00"), 2, actorID))
		require.NoError(t, c.AddItem(p2, "Gadget", mustMoney(t, "20.00"), 3, actorID))

		_, err := c.RemoveItem(p1, actorID)
		require.NoError(t, err)

		require.Len(t, c.Items, 1)
		assert.Equal(t, p2, c.Items[0].ProductID)
	})
}

func TestCart_Submit(t *testing.T) {
	actorID := uuid.New()

	t.Run("fails on empty cart", func(t *testing.T) {
		c := newTestCart(t)

		_, err := c.Submit(actorID)
		require.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("returns item snapshot and clears the cart", func(t *testing.T) {
		c := newTestCart(t)
		p1 := uuid.New()
		p2 := uuid.New()
		require.NoError(t, c.AddItem(p1, "Widget", mustMoney(t, "15.00"), 2, actorID))
		require.NoError(t, c.AddItem(p2, "Gadget", mustMoney(t, "25.00"), 3, actorID))
		c.ClearDomainEvents()

		items, err := c.Submit(actorID)
		require.NoError(t, err)

		require.Len(t, items, 2)
		assert.True(t, c.IsEmpty())

		events := c.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*CartSubmittedEvent)
		require.True(t, ok)
		assert.Equal(t, 2, event.ItemCount)
		assert.True(t, event.Total.Equals(mustMoney(t, "105.00")))
	})

	t.Run("second submit fails EmptyCart", func(t *testing.T) {
		c := newTestCart(t)
		require.NoError(t, c.AddItem(uuid.New(), "Widget", mustMoney(t, "10.00"), 1, actorID))

		_, err := c.Submit(actorID)
		require.NoError(t, err)

		_, err = c.Submit(actorID)
		require.ErrorIs(t, err, ErrEmptyCart)
	})
}

func TestCart_Total(t *testing.T) {
	actorID := uuid.New()

	t.Run("sums exact fixed-point subtotals", func(t *testing.T) {
		c := newTestCart(t)
		require.NoError(t, c.AddItem(uuid.New(), "Widget", mustMoney(t, "0.10"), 3, actorID))
		require.NoError(t, c.AddItem(uuid.New(), "Gadget", mustMoney(t, "0.20"), 3, actorID))

		// 0.30 + 0.60 with no float drift
		assert.Equal(t, "0.90", c.Total().StringFixed(2))
	})

	t.Run("empty cart totals zero", func(t *testing.T) {
		c := newTestCart(t)
		assert.True(t, c.Total().IsZero())
	})
}
