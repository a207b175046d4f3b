package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned when a referenced product does not exist
var ErrProductNotFound = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")

// DuplicateProductError is returned when a product name collides with an
// existing product. The application layer raises it from a fast-path
// existence check; the database unique index is the authoritative backstop.
type DuplicateProductError struct {
	Name string
}

// Error implements the error interface
func (e *DuplicateProductError) Error() string {
	return "product with name " + e.Name + " already exists"
}

// Product is the aggregate root for the catalog and owns the stock ledger:
// a single non-negative stock counter mutated only through ReserveStock and
// ReleaseStock. The non-negative invariant is enforced here and never
// bypassed; callers serialize mutations with a row-level lock.
type Product struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'USD'"`
	StockQuantity int64           `gorm:"not null;default:0"`
	DeletedAt     *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with an initial stock quantity
func NewProduct(name, description string, price valueobject.Money, stockQuantity int64, actorID uuid.UUID) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if stockQuantity < 0 {
		return nil, shared.NewValidationError("stock_quantity", "stock quantity cannot be negative")
	}
	if _, err := valueobject.NewPrice(price.Amount(), price.Currency()); err != nil {
		return nil, shared.NewValidationError("price", err.Error())
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Price:             price.Amount(),
		Currency:          string(price.Currency()),
		StockQuantity:     stockQuantity,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product, actorID))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string, price valueobject.Money, actorID uuid.UUID) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if _, err := valueobject.NewPrice(price.Amount(), price.Currency()); err != nil {
		return shared.NewValidationError("price", err.Error())
	}

	p.Name = name
	p.Description = description
	p.Price = price.Amount()
	p.Currency = string(price.Currency())
	p.UpdatedAt = time.Now().UTC()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p, actorID))

	return nil
}

// HasSufficientStock reports whether quantity units can be reserved.
// Pure check, no side effect.
func (p *Product) HasSufficientStock(quantity int64) bool {
	return quantity <= p.StockQuantity
}

// ReserveStock decrements available stock by quantity, all-or-nothing.
// The caller must hold the product's row lock so the check and the
// decrement observe the same committed value.
func (p *Product) ReserveStock(quantity int64, actorID uuid.UUID) error {
	if quantity <= 0 {
		return shared.NewValidationError("quantity", "quantity must be positive")
	}
	if !p.HasSufficientStock(quantity) {
		return shared.NewInsufficientStockError(p.StockQuantity, quantity)
	}

	p.StockQuantity -= quantity
	p.UpdatedAt = time.Now().UTC()
	p.IncrementVersion()

	p.AddDomainEvent(NewStockReservedEvent(p, quantity, actorID))

	return nil
}

// ReleaseStock increments available stock by quantity. It reverses a prior
// successful reservation and never fails under normal use; callers are
// responsible for only releasing quantities that were previously reserved.
func (p *Product) ReleaseStock(quantity int64, actorID uuid.UUID) error {
	if quantity <= 0 {
		return shared.NewValidationError("quantity", "quantity must be positive")
	}

	p.StockQuantity += quantity
	p.UpdatedAt = time.Now().UTC()
	p.IncrementVersion()

	p.AddDomainEvent(NewStockReleasedEvent(p, quantity, actorID))

	return nil
}

// SoftDelete marks the product as deleted
func (p *Product) SoftDelete(actorID uuid.UUID) error {
	if p.IsDeleted() {
		return shared.ErrAlreadyDeleted
	}

	now := time.Now().UTC()
	p.DeletedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProductDeletedEvent(p, actorID))

	return nil
}

// Restore clears the soft-delete marker
func (p *Product) Restore(actorID uuid.UUID) error {
	if !p.IsDeleted() {
		return shared.ErrNotDeleted
	}

	p.DeletedAt = nil
	p.UpdatedAt = time.Now().UTC()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductRestoredEvent(p, actorID))

	return nil
}

// IsDeleted returns true if the product is soft-deleted
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// GetPriceMoney returns the price as a Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(p.Price, valueobject.Currency(p.Currency))
	return m
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "product name cannot exceed 200 characters")
	}
	return nil
}
