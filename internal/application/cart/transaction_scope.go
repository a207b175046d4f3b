package cart

import (
	"context"

	cartdomain "github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	orderdomain "github.com/shop/backend/internal/domain/order"
)

// TransactionScope is the unit-of-work boundary for cart orchestration.
// Execute runs the given function inside one database transaction: every
// repository operation in fn shares it, and the product row lock taken via
// FindByIDForUpdate is held until the transaction commits or rolls back.
type TransactionScope interface {
	// Execute runs fn within a transaction. A returned error rolls the
	// transaction back; nil commits it.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories that participate in
// one cart transaction. All of them share the same underlying transaction.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the transaction
	ProductRepo() catalog.ProductRepository
	// CartRepo returns the cart repository scoped to the transaction
	CartRepo() cartdomain.CartRepository
	// OrderRepo returns the order repository scoped to the transaction
	OrderRepo() orderdomain.OrderRepository
}

// NoOpTransactionScope runs functions without a real transaction. Used in
// unit tests where repositories are in-memory fakes.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	cartRepo    cartdomain.CartRepository
	orderRepo   orderdomain.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	cartRepo cartdomain.CartRepository,
	orderRepo orderdomain.OrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo: productRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
	}
}

// Execute runs fn without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// CartRepo returns the cart repository
func (s *NoOpTransactionScope) CartRepo() cartdomain.CartRepository {
	return s.cartRepo
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() orderdomain.OrderRepository {
	return s.orderRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
