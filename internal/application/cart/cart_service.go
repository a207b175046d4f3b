package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	cartdomain "github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/identity"
	orderdomain "github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// CartService coordinates the Cart and Product aggregates. Every mutating
// cart operation runs inside one transaction that holds an exclusive row
// lock on the affected product before reading its stock, so the stock
// check is never stale by the time the delta is applied. Events from all
// touched aggregates are collected in encounter order and dispatched only
// after the transaction has committed.
//
// All collaborators are injected at construction; the service holds no
// package-level state.
type CartService struct {
	scope     TransactionScope
	publisher shared.EventPublisher
	verifier  AddressVerifier
	logger    *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(scope TransactionScope, publisher shared.EventPublisher, verifier AddressVerifier, logger *zap.Logger) *CartService {
	return &CartService{
		scope:     scope,
		publisher: publisher,
		verifier:  verifier,
		logger:    logger,
	}
}

// GetCart returns the user's cart, an empty one if none exists yet
func (s *CartService) GetCart(ctx context.Context, user identity.UserContext) (*CartResponse, error) {
	var response CartResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := repos.CartRepo().FindByUserID(ctx, user.UserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				empty, cerr := cartdomain.NewCart(user.UserID)
				if cerr != nil {
					return cerr
				}
				response = ToCartResponse(empty)
				return nil
			}
			return err
		}
		response = ToCartResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// AddItem adds quantity units of a product to the user's cart, reserving
// the same quantity from the product's stock under the product row lock.
func (s *CartService) AddItem(ctx context.Context, user identity.UserContext, productID string, quantity int64) (*CartResponse, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, catalog.ErrProductNotFound
	}

	var (
		response CartResponse
		touched  []shared.AggregateRoot
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := s.lockProduct(ctx, repos, pid)
		if err != nil {
			return err
		}

		if !product.HasSufficientStock(quantity) {
			return shared.NewInsufficientStockError(product.StockQuantity, quantity)
		}

		c, err := repos.CartRepo().FindOrCreateByUserID(ctx, user.UserID)
		if err != nil {
			return err
		}

		if err := c.AddItem(pid, product.Name, product.GetPriceMoney(), quantity, user.UserID); err != nil {
			return err
		}
		if err := product.ReserveStock(quantity, user.UserID); err != nil {
			return err
		}

		if err := repos.CartRepo().Save(ctx, c); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}

		response = ToCartResponse(c)
		touched = []shared.AggregateRoot{c, product}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchEvents(ctx, touched)
	return &response, nil
}

// UpdateItemQuantity sets the cart line for a product to a new quantity and
// adjusts stock by the signed difference: a positive delta reserves more
// (re-checking sufficiency under the lock), a negative delta releases.
func (s *CartService) UpdateItemQuantity(ctx context.Context, user identity.UserContext, productID string, newQuantity int64) (*CartResponse, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, catalog.ErrProductNotFound
	}

	var (
		response CartResponse
		touched  []shared.AggregateRoot
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Cheap fail-fast before taking the product lock.
		c, err := repos.CartRepo().FindByUserID(ctx, user.UserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return cartdomain.ErrItemNotFound
			}
			return err
		}
		if c.FindItem(pid) == nil {
			return cartdomain.ErrItemNotFound
		}

		product, err := s.lockProduct(ctx, repos, pid)
		if err != nil {
			return err
		}

		delta, err := c.UpdateItemQuantity(pid, newQuantity, user.UserID)
		if err != nil {
			return err
		}

		switch {
		case delta > 0:
			if !product.HasSufficientStock(delta) {
				return shared.NewInsufficientStockError(product.StockQuantity, delta)
			}
			if err := product.ReserveStock(delta, user.UserID); err != nil {
				return err
			}
		case delta < 0:
			if err := product.ReleaseStock(-delta, user.UserID); err != nil {
				return err
			}
		}

		if err := repos.CartRepo().Save(ctx, c); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}

		response = ToCartResponse(c)
		touched = []shared.AggregateRoot{c, product}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchEvents(ctx, touched)
	return &response, nil
}

// RemoveItem removes a cart line and releases its quantity back to stock.
// The product lock is acquired before the cart mutation, the same ordering
// as the other mutating paths. A product that no longer exists is
// tolerated: the line still leaves the cart, only the stock release and
// product events are skipped.
func (s *CartService) RemoveItem(ctx context.Context, user identity.UserContext, productID string) (*CartResponse, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, catalog.ErrProductNotFound
	}

	var (
		response CartResponse
		touched  []shared.AggregateRoot
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, pid)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		c, err := repos.CartRepo().FindByUserID(ctx, user.UserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return cartdomain.ErrItemNotFound
			}
			return err
		}

		removed, err := c.RemoveItem(pid, user.UserID)
		if err != nil {
			return err
		}

		touched = []shared.AggregateRoot{c}
		if product != nil {
			if err := product.ReleaseStock(removed.Quantity, user.UserID); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
			touched = append(touched, product)
		} else {
			s.logger.Warn("removing cart item for missing product, stock not released",
				zap.String("product_id", pid.String()),
				zap.String("user_id", user.UserID.String()),
			)
		}

		if err := repos.CartRepo().Save(ctx, c); err != nil {
			return err
		}

		response = ToCartResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchEvents(ctx, touched)
	return &response, nil
}

// SubmitCart verifies the shipping address, submits the cart, and creates
// an order from the snapshot. Verification happens before any mutation so
// a rejected address commits no side effects. Stock is not touched:
// submission transfers ownership of the already-reserved stock to the
// order.
func (s *CartService) SubmitCart(ctx context.Context, user identity.UserContext, shippingAddress valueobject.Address) (*OrderResponse, error) {
	verified, err := s.verifyAddress(ctx, shippingAddress)
	if err != nil {
		return nil, err
	}

	var (
		response OrderResponse
		touched  []shared.AggregateRoot
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := repos.CartRepo().FindByUserID(ctx, user.UserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return cartdomain.ErrEmptyCart
			}
			return err
		}

		items, err := c.Submit(user.UserID)
		if err != nil {
			return err
		}

		o, err := orderdomain.NewOrderFromCartItems(user.UserID, items, verified, user.UserID)
		if err != nil {
			return err
		}

		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}
		if err := repos.CartRepo().Save(ctx, c); err != nil {
			return err
		}

		response = ToOrderResponse(o)
		touched = []shared.AggregateRoot{c, o}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchEvents(ctx, touched)
	return &response, nil
}

// lockProduct acquires the product row lock and rejects missing or
// soft-deleted products
func (s *CartService) lockProduct(ctx context.Context, repos TransactionalRepositories, pid uuid.UUID) (*catalog.Product, error) {
	product, err := repos.ProductRepo().FindByIDForUpdate(ctx, pid)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	if product.IsDeleted() {
		return nil, catalog.ErrProductNotFound
	}
	return product, nil
}

// verifyAddress calls the verification collaborator and maps its statuses
func (s *CartService) verifyAddress(ctx context.Context, address valueobject.Address) (valueobject.Address, error) {
	result, err := s.verifier.Verify(ctx, address)
	if err != nil {
		return valueobject.Address{}, &AddressVerificationError{
			Status:  VerificationStatusServiceUnavailable,
			Message: err.Error(),
		}
	}

	switch result.Status {
	case VerificationStatusVerified:
		return address, nil
	case VerificationStatusCorrected:
		if result.StandardizedAddress != nil {
			return *result.StandardizedAddress, nil
		}
		return address, nil
	case VerificationStatusUndeliverable, VerificationStatusInvalid:
		field := ""
		for f := range result.FieldErrors {
			field = f
			break
		}
		return valueobject.Address{}, &AddressVerificationError{
			Status:  result.Status,
			Field:   field,
			Message: result.ErrorMessage,
		}
	default:
		return valueobject.Address{}, &AddressVerificationError{
			Status:  VerificationStatusServiceUnavailable,
			Message: result.ErrorMessage,
		}
	}
}

// dispatchEvents drains the touched aggregates' buffers in encounter order
// and publishes after the transaction has committed. Dispatch failures are
// logged by the bus and never propagate: the business transaction is
// already durable.
func (s *CartService) dispatchEvents(ctx context.Context, aggregates []shared.AggregateRoot) {
	if s.publisher == nil || len(aggregates) == 0 {
		return
	}

	events := make([]shared.DomainEvent, 0)
	for _, agg := range aggregates {
		events = append(events, agg.GetDomainEvents()...)
	}
	if len(events) == 0 {
		return
	}

	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}

	for _, agg := range aggregates {
		agg.ClearDomainEvents()
	}
}
