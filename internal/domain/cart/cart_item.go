package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CartItem is a line item owned by a Cart. Product name and unit price are
// snapshots captured at add time and stay fixed even if the product later
// changes. Quantity is always positive: zero or negative quantity is a
// validation error, removal is an explicit operation on the cart.
type CartItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Quantity    int64           `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a new cart line item with a fresh identity
func NewCartItem(cartID, productID uuid.UUID, productName string, unitPrice valueobject.Money, quantity int64) (*CartItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product_id", "product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewValidationError("product_name", "product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("quantity", "quantity must be positive")
	}

	now := time.Now().UTC()
	return &CartItem{
		ID:          uuid.New(),
		CartID:      cartID,
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice.Amount(),
		Currency:    string(unitPrice.Currency()),
		Quantity:    quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Subtotal returns UnitPrice * Quantity as exact fixed-point Money
func (i *CartItem) Subtotal() valueobject.Money {
	m, _ := valueobject.NewMoney(i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity)), valueobject.Currency(i.Currency))
	return m
}

// UnitPriceMoney returns the snapshot unit price as Money
func (i *CartItem) UnitPriceMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(i.UnitPrice, valueobject.Currency(i.Currency))
	return m
}
