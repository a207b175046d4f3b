package catalog

import (
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated  = "ProductCreated"
	EventTypeProductUpdated  = "ProductUpdated"
	EventTypeProductDeleted  = "ProductDeleted"
	EventTypeProductRestored = "ProductRestored"
	EventTypeStockReserved   = "StockReserved"
	EventTypeStockReleased   = "StockReleased"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID     uuid.UUID       `json:"product_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product, actorID uuid.UUID) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID, actorID),
		ProductID:       product.ID,
		Name:            product.Name,
		Price:           product.Price,
		StockQuantity:   product.StockQuantity,
	}
}

// ProductUpdatedEvent is published when a product's details change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product, actorID uuid.UUID) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID, actorID),
		ProductID:       product.ID,
		Name:            product.Name,
		Price:           product.Price,
	}
}

// ProductDeletedEvent is published when a product is soft-deleted
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(product *Product, actorID uuid.UUID) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, product.ID, actorID),
		ProductID:       product.ID,
		Name:            product.Name,
	}
}

// ProductRestoredEvent is published when a soft-deleted product is restored
type ProductRestoredEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
}

// NewProductRestoredEvent creates a new ProductRestoredEvent
func NewProductRestoredEvent(product *Product, actorID uuid.UUID) *ProductRestoredEvent {
	return &ProductRestoredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductRestored, AggregateTypeProduct, product.ID, actorID),
		ProductID:       product.ID,
		Name:            product.Name,
	}
}

// StockReservedEvent is published when stock is reserved for a cart
type StockReservedEvent struct {
	shared.BaseDomainEvent
	ProductID        uuid.UUID `json:"product_id"`
	QuantityReserved int64     `json:"quantity_reserved"`
	RemainingStock   int64     `json:"remaining_stock"`
}

// NewStockReservedEvent creates a new StockReservedEvent.
// RemainingStock carries the stock counter after the decrement.
func NewStockReservedEvent(product *Product, quantity int64, actorID uuid.UUID) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeStockReserved, AggregateTypeProduct, product.ID, actorID),
		ProductID:        product.ID,
		QuantityReserved: quantity,
		RemainingStock:   product.StockQuantity,
	}
}

// StockReleasedEvent is published when previously reserved stock is returned
type StockReleasedEvent struct {
	shared.BaseDomainEvent
	ProductID        uuid.UUID `json:"product_id"`
	QuantityReleased int64     `json:"quantity_released"`
	RemainingStock   int64     `json:"remaining_stock"`
}

// NewStockReleasedEvent creates a new StockReleasedEvent
func NewStockReleasedEvent(product *Product, quantity int64, actorID uuid.UUID) *StockReleasedEvent {
	return &StockReleasedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeStockReleased, AggregateTypeProduct, product.ID, actorID),
		ProductID:        product.ID,
		QuantityReleased: quantity,
		RemainingStock:   product.StockQuantity,
	}
}
