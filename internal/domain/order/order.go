package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ErrOrderNotFound is returned when a referenced order does not exist
var ErrOrderNotFound = shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")

// Order is an immutable snapshot of a submitted cart. It is created once
// from the cart's submit operation and never mutated afterward. Stock is
// not touched at order time: the reserved stock's ownership transfers from
// the cart lines to the order.
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress valueobject.Address `gorm:"type:jsonb"`
	Total           decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Currency        string              `gorm:"type:varchar(3);not null;default:'USD'"`
	SubmittedAt     time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a snapshot copy of a cart line at submission time, with a
// fresh identity embedding the parent order's ID.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Quantity    int64           `gorm:"not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns UnitPrice * Quantity as exact fixed-point Money
func (i *OrderItem) Subtotal() valueobject.Money {
	m, _ := valueobject.NewMoney(i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity)), valueobject.Currency(i.Currency))
	return m
}

// NewOrderFromCartItems builds an Order from the line items returned by a
// cart's submit. The order ID is generated before item construction so
// each item can embed its parent's ID.
func NewOrderFromCartItems(userID uuid.UUID, items []cart.CartItem, shippingAddress valueobject.Address, actorID uuid.UUID) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user_id", "user ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("items", "order must have at least one item")
	}
	if shippingAddress.IsEmpty() {
		return nil, shared.NewValidationError("shipping_address", "shipping address cannot be empty")
	}

	root := shared.NewBaseAggregateRoot()
	now := time.Now().UTC()

	orderItems := make([]OrderItem, 0, len(items))
	total := decimal.Zero
	currency := string(valueobject.DefaultCurrency)
	for i := range items {
		line := items[i]
		orderItems = append(orderItems, OrderItem{
			ID:          uuid.New(),
			OrderID:     root.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Currency:    line.Currency,
			Quantity:    line.Quantity,
			CreatedAt:   now,
		})
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
		currency = line.Currency
	}

	o := &Order{
		BaseAggregateRoot: root,
		UserID:            userID,
		Items:             orderItems,
		ShippingAddress:   shippingAddress,
		Total:             total,
		Currency:          currency,
		SubmittedAt:       now,
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o, actorID))

	return o, nil
}

// TotalMoney returns the order total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(o.Total, valueobject.Currency(o.Currency))
	return m
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}
