package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shared/valueobject"
)

// Domain errors for cart operations
var (
	ErrItemNotFound = shared.NewDomainError("CART_ITEM_NOT_FOUND", "Item not found in cart")
	ErrEmptyCart    = shared.NewDomainError("EMPTY_CART", "Cart has no items")
)

// Cart is the aggregate root for a user's shopping cart. It holds at most
// one line item per distinct product; duplicate additions merge by summing
// quantities. The cart never touches stock itself: the orchestration layer
// reserves or releases the matching quantity on the product under the same
// transaction and row lock.
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates a new empty cart for a user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user_id", "user ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
	}, nil
}

// AddItem adds quantity units of a product to the cart. If a line item for
// the product already exists, the quantities merge. The emitted
// CartItemAdded event carries the added quantity, not the merged total,
// because that is the delta the caller reserved from stock.
func (c *Cart) AddItem(productID uuid.UUID, productName string, unitPrice valueobject.Money, quantity int64, actorID uuid.UUID) error {
	if quantity <= 0 {
		return shared.NewValidationError("quantity", "quantity must be positive")
	}

	idx := c.findItem(productID)
	if idx >= 0 {
		c.Items[idx].Quantity += quantity
		c.Items[idx].UpdatedAt = time.Now().UTC()
	} else {
		item, err := NewCartItem(c.ID, productID, productName, unitPrice, quantity)
		if err != nil {
			return err
		}
		c.Items = append(c.Items, *item)
	}

	c.UpdatedAt = time.Now().UTC()
	c.IncrementVersion()

	c.AddDomainEvent(NewCartItemAddedEvent(c, productID, productName, quantity, actorID))

	return nil
}

// UpdateItemQuantity sets the line item for productID to newQuantity and
// returns the signed delta (newQuantity - oldQuantity) so the caller can
// adjust stock by the same amount: positive means reserve more, negative
// means release the difference.
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, newQuantity int64, actorID uuid.UUID) (int64, error) {
	if newQuantity <= 0 {
		return 0, shared.NewValidationError("quantity", "quantity must be positive")
	}

	idx := c.findItem(productID)
	if idx < 0 {
		return 0, ErrItemNotFound
	}

	oldQuantity := c.Items[idx].Quantity
	delta := newQuantity - oldQuantity

	c.Items[idx].Quantity = newQuantity
	c.Items[idx].UpdatedAt = time.Now().UTC()
	c.UpdatedAt = time.Now().UTC()
	c.IncrementVersion()

	c.AddDomainEvent(NewCartItemQuantityUpdatedEvent(c, productID, oldQuantity, newQuantity, actorID))

	return delta, nil
}

// RemoveItem removes the line item for productID and returns it. The
// returned item's quantity is what the caller must release back to stock.
func (c *Cart) RemoveItem(productID uuid.UUID, actorID uuid.UUID) (*CartItem, error) {
	idx := c.findItem(productID)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	removed := c.Items[idx]
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.UpdatedAt = time.Now().UTC()
	c.IncrementVersion()

	c.AddDomainEvent(NewCartItemRemovedEvent(c, &removed, actorID))

	return &removed, nil
}

// Submit snapshots all line items, clears the cart, and returns the
// snapshot. Stock is not touched: it was already decremented when items
// were added, and submission transfers ownership of the reserved stock to
// the order built from the returned items.
func (c *Cart) Submit(actorID uuid.UUID) ([]CartItem, error) {
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	snapshot := make([]CartItem, len(c.Items))
	copy(snapshot, c.Items)

	total := c.Total()
	itemCount := len(c.Items)

	c.Items = c.Items[:0]
	c.UpdatedAt = time.Now().UTC()
	c.IncrementVersion()

	c.AddDomainEvent(NewCartSubmittedEvent(c, total, itemCount, actorID))

	return snapshot, nil
}

// Total returns the exact fixed-point sum of all line subtotals
func (c *Cart) Total() valueobject.Money {
	total := valueobject.ZeroUSD()
	for i := range c.Items {
		total = total.MustAdd(c.Items[i].Subtotal())
	}
	return total
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem returns the line item for productID, or nil if absent
func (c *Cart) FindItem(productID uuid.UUID) *CartItem {
	idx := c.findItem(productID)
	if idx < 0 {
		return nil
	}
	return &c.Items[idx]
}

func (c *Cart) findItem(productID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
