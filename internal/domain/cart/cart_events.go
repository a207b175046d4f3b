package cart

import (
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeCart = "Cart"

// Event type constants
const (
	EventTypeCartItemAdded           = "CartItemAdded"
	EventTypeCartItemQuantityUpdated = "CartItemQuantityUpdated"
	EventTypeCartItemRemoved         = "CartItemRemoved"
	EventTypeCartSubmitted           = "CartSubmitted"
)

// CartItemAddedEvent is published when a product is added to a cart.
// QuantityAdded is the added delta, not the merged line total.
type CartItemAddedEvent struct {
	shared.BaseDomainEvent
	CartID        uuid.UUID `json:"cart_id"`
	UserID        uuid.UUID `json:"user_id"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	QuantityAdded int64     `json:"quantity_added"`
}

// NewCartItemAddedEvent creates a new CartItemAddedEvent
func NewCartItemAddedEvent(c *Cart, productID uuid.UUID, productName string, quantityAdded int64, actorID uuid.UUID) *CartItemAddedEvent {
	return &CartItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemAdded, AggregateTypeCart, c.ID, actorID),
		CartID:          c.ID,
		UserID:          c.UserID,
		ProductID:       productID,
		ProductName:     productName,
		QuantityAdded:   quantityAdded,
	}
}

// CartItemQuantityUpdatedEvent is published when a line item's quantity changes
type CartItemQuantityUpdatedEvent struct {
	shared.BaseDomainEvent
	CartID      uuid.UUID `json:"cart_id"`
	UserID      uuid.UUID `json:"user_id"`
	ProductID   uuid.UUID `json:"product_id"`
	OldQuantity int64     `json:"old_quantity"`
	NewQuantity int64     `json:"new_quantity"`
}

// NewCartItemQuantityUpdatedEvent creates a new CartItemQuantityUpdatedEvent
func NewCartItemQuantityUpdatedEvent(c *Cart, productID uuid.UUID, oldQuantity, newQuantity int64, actorID uuid.UUID) *CartItemQuantityUpdatedEvent {
	return &CartItemQuantityUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemQuantityUpdated, AggregateTypeCart, c.ID, actorID),
		CartID:          c.ID,
		UserID:          c.UserID,
		ProductID:       productID,
		OldQuantity:     oldQuantity,
		NewQuantity:     newQuantity,
	}
}

// CartItemRemovedEvent is published when a line item is removed
type CartItemRemovedEvent struct {
	shared.BaseDomainEvent
	CartID          uuid.UUID `json:"cart_id"`
	UserID          uuid.UUID `json:"user_id"`
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	QuantityRemoved int64     `json:"quantity_removed"`
}

// NewCartItemRemovedEvent creates a new CartItemRemovedEvent
func NewCartItemRemovedEvent(c *Cart, removed *CartItem, actorID uuid.UUID) *CartItemRemovedEvent {
	return &CartItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemRemoved, AggregateTypeCart, c.ID, actorID),
		CartID:          c.ID,
		UserID:          c.UserID,
		ProductID:       removed.ProductID,
		ProductName:     removed.ProductName,
		QuantityRemoved: removed.Quantity,
	}
}

// CartSubmittedEvent is published when a cart is submitted into an order
type CartSubmittedEvent struct {
	shared.BaseDomainEvent
	CartID    uuid.UUID         `json:"cart_id"`
	UserID    uuid.UUID         `json:"user_id"`
	Total     valueobject.Money `json:"total"`
	ItemCount int               `json:"item_count"`
}

// NewCartSubmittedEvent creates a new CartSubmittedEvent
func NewCartSubmittedEvent(c *Cart, total valueobject.Money, itemCount int, actorID uuid.UUID) *CartSubmittedEvent {
	return &CartSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartSubmitted, AggregateTypeCart, c.ID, actorID),
		CartID:          c.ID,
		UserID:          c.UserID,
		Total:           total,
		ItemCount:       itemCount,
	}
}
