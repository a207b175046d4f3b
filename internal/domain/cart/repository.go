package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the persistence port for the Cart aggregate.
// Carts are loaded and saved with their line items as one unit.
type CartRepository interface {
	// FindByUserID finds the cart for a user, or shared.ErrNotFound
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// FindOrCreateByUserID finds the cart for a user, creating an empty
	// one if none exists yet
	FindOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save persists the cart and its line items, removing line items that
	// are no longer part of the aggregate
	Save(ctx context.Context, c *Cart) error
}
