package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	appcart "github.com/shop/backend/internal/application/cart"
	"github.com/shop/backend/internal/domain/identity"
	orderdomain "github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
)

// OrderService handles order queries. Orders are immutable once created,
// so the service is read-only; creation happens through the cart
// submission flow.
type OrderService struct {
	repo orderdomain.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(repo orderdomain.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// GetByID returns one order. Customers see only their own orders; admins
// see all.
func (s *OrderService) GetByID(ctx context.Context, user identity.UserContext, orderID string) (*appcart.OrderResponse, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, orderdomain.ErrOrderNotFound
	}

	o, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, orderdomain.ErrOrderNotFound
		}
		return nil, err
	}

	if o.UserID != user.UserID && !user.IsAdmin() {
		return nil, orderdomain.ErrOrderNotFound
	}

	response := appcart.ToOrderResponse(o)
	return &response, nil
}

// ListForUser returns the requesting user's orders, newest first
func (s *OrderService) ListForUser(ctx context.Context, user identity.UserContext, filter shared.Filter) (*shared.Paginated[appcart.OrderResponse], error) {
	orders, total, err := s.repo.FindByUserID(ctx, user.UserID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]appcart.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, appcart.ToOrderResponse(&orders[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}
