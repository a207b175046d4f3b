package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// ProductRepository defines the persistence port for the Product aggregate
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForUpdate finds a product by ID while acquiring an exclusive
	// row-level lock scoped to the enclosing transaction. Blocks until a
	// prior lock holder commits or rolls back; the returned product
	// reflects the then-current committed state. Every stock-mutating read
	// goes through this method.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByName finds a non-deleted product by exact name
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindAll returns products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, int64, error)

	// Save persists the product aggregate
	Save(ctx context.Context, product *Product) error
}
