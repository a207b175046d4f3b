package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// OrderRepository defines the persistence port for the Order aggregate
type OrderRepository interface {
	// FindByID finds an order by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUserID returns a user's orders, newest first
	FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, int64, error)

	// Save persists the order and its items. Orders are insert-only.
	Save(ctx context.Context, o *Order) error
}
